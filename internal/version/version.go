package version

// Version is the docdoc release, set at build time:
// go build -ldflags "-X git.home.luguber.info/inful/docdoc/internal/version.Version=v0.3.0".
var Version = "unknown"

// Build metadata injected the same way.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the version line printed by --version.
func String() string {
	s := "docdoc " + Version
	if GitCommit != "unknown" {
		s += " (" + GitCommit + ")"
	}
	if BuildTime != "unknown" {
		s += " built " + BuildTime
	}
	return s
}
