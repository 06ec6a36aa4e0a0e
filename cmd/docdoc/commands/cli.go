package commands

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/docdoc/internal/config"
	"git.home.luguber.info/inful/docdoc/internal/markdown"
	"git.home.luguber.info/inful/docdoc/internal/version"
)

// Global is passed to every command's Run.
type Global struct {
	Logger *slog.Logger
	Out    io.Writer
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: docdoc.yaml if present)" placeholder:"PATH"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Convert ConvertCmd `cmd:"" default:"withargs" help:"Convert a Markdown document into a themed HTML page"`
	Watch   WatchCmd   `cmd:"" help:"Convert a document and reconvert it whenever it or the theme changes"`
	Inspect InspectCmd `cmd:"" help:"Show metadata, destination and links of a document without writing"`
	Init    InitCmd    `cmd:"" help:"Write a configuration file with the built-in defaults"`

	cfg    *config.Config
	cfgErr error
	logOut io.Writer
}

// NewParser builds the kong parser for cli.
func NewParser(cli *CLI, options ...kong.Option) (*kong.Kong, error) {
	opts := []kong.Option{
		kong.Name("docdoc"),
		kong.Description("Convert Markdown documents into themed HTML pages."),
		kong.Vars{
			"version":  version.String(),
			"dialects": strings.Join(markdown.Dialects(), "|"),
		},
		kong.UsageOnError(),
	}
	return kong.New(cli, append(opts, options...)...)
}

// AfterApply runs after flag parsing; loads the configuration and sets up
// logging once. A configuration error is reported by the commands that need
// the configuration, so init still works next to a broken file.
// nolint:unparam // AfterApply currently never returns an error.
func (c *CLI) AfterApply() error {
	path, required := c.Config, true
	if path == "" {
		path, required = config.DefaultConfigFile, false
	}
	c.cfg, c.cfgErr = config.Load(path, required)
	if c.cfgErr != nil {
		c.cfg = config.Default()
	}

	out := c.logOut
	if out == nil {
		out = os.Stderr
	}
	slog.SetDefault(c.cfg.Logging.NewLogger(out, c.Verbose))
	return nil
}

// Settings returns the loaded configuration, or the defaults before AfterApply.
func (c *CLI) Settings() (*config.Config, error) {
	if c.cfgErr != nil {
		return nil, c.cfgErr
	}
	if c.cfg == nil {
		return config.Default(), nil
	}
	return c.cfg, nil
}

// ConfigPath is the file init writes to.
func (c *CLI) ConfigPath() string {
	if c.Config == "" {
		return config.DefaultConfigFile
	}
	return c.Config
}
