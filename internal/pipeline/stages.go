package pipeline

import (
	"context"
	"time"

	"git.home.luguber.info/inful/docdoc/internal/document"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
	"git.home.luguber.info/inful/docdoc/internal/theme"
)

// StageName is a strongly-typed identifier for a conversion stage.
type StageName string

// Canonical stage names, in execution order.
const (
	StageLoad        StageName = "load"
	StageOverrides   StageName = "overrides"
	StageMarkdown    StageName = "markdown"
	StageMerge       StageName = "merge"
	StageTemplate    StageName = "template"
	StageDestination StageName = "destination"
	StageWrite       StageName = "write"
	StageAssets      StageName = "assets"
)

// Stage is a discrete unit of work in a conversion.
type Stage func(ctx context.Context, st *State) error

// StageDef pairs a stage with its name.
type StageDef struct {
	Name StageName
	Fn   Stage
}

// State is owned by one conversion and passed through every stage.
type State struct {
	Options Options
	Theme   *theme.Theme

	Document    *document.Document
	Fingerprint string
	Merged      *metadata.Map
	Assets      []string

	StageDurations map[StageName]time.Duration
}

func newState(opts Options, th *theme.Theme) *State {
	return &State{
		Options:        opts,
		Theme:          th,
		StageDurations: map[StageName]time.Duration{},
	}
}

// RenderContext returns the data handed to the page template.
func (st *State) RenderContext() map[string]any {
	return map[string]any{
		"document": map[string]any{
			"path":        st.Document.Source(),
			"metadata":    st.Merged.ToMap(),
			"body":        st.Document.Body,
			"fingerprint": st.Fingerprint,
		},
	}
}
