package commands

import (
	"git.home.luguber.info/inful/docdoc/internal/config"
	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/markdown"
	"git.home.luguber.info/inful/docdoc/internal/metadata"
	"git.home.luguber.info/inful/docdoc/internal/pipeline"
)

// DocumentFlags are shared by the commands that work on one document.
type DocumentFlags struct {
	File      string `arg:"" help:"Markdown document to convert" placeholder:"FILE"`
	OutputDir string `arg:"" optional:"" help:"Output directory (default: dist)" placeholder:"OUTPUT-DIR"`

	Theme         string   `help:"Theme directory" env:"DOCDOC_THEME" placeholder:"DIR"`
	Template      string   `help:"Template name inside the theme's templates directory" env:"DOCDOC_TEMPLATE"`
	Dialect       string   `help:"Markdown dialect (${dialects})" env:"DOCDOC_DIALECT"`
	GFM           bool     `name:"gfm" help:"Shortcut for --dialect gfm"`
	ExtraMetadata []string `short:"e" name:"extra-metadata" sep:"none" help:"Metadata override as inline YAML or @file (repeatable)" placeholder:"YAML"`
	// PreserveFirstComponent keeps the first directory of FILE in the output path.
	PreserveFirstComponent bool   `short:"p" name:"preserve-first-component" help:"Keep the first path component of FILE in the output path"`
	MetricsFile            string `name:"metrics-file" help:"Write Prometheus metrics to this file after converting" placeholder:"PATH"`
}

// settings is the outcome of merging flags, environment and configuration.
type settings struct {
	ThemeDir    string
	MetricsFile string
	Options     pipeline.Options
}

func (f *DocumentFlags) resolve(cfg *config.Config) (*settings, error) {
	rawDialect := firstNonEmpty(f.Dialect, cfg.Dialect)
	if f.GFM {
		rawDialect = string(markdown.GitHubFlavored)
	}
	dialect, err := markdown.ParseDialect(rawDialect)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryConfig, "invalid dialect").
			WithContext("dialect", rawDialect).
			Build()
	}

	fragments := make([]string, 0, len(cfg.ExtraMetadata)+len(f.ExtraMetadata))
	fragments = append(fragments, cfg.ExtraMetadata...)
	fragments = append(fragments, f.ExtraMetadata...)
	overrides := make([]*metadata.Map, 0, len(fragments))
	for _, spec := range fragments {
		m, err := metadata.ParseOverride(spec)
		if err != nil {
			return nil, err
		}
		overrides = append(overrides, m)
	}

	return &settings{
		ThemeDir:    firstNonEmpty(f.Theme, cfg.Theme, config.DefaultTheme),
		MetricsFile: firstNonEmpty(f.MetricsFile, cfg.Metrics.Textfile),
		Options: pipeline.Options{
			Source:           f.File,
			OutputRoot:       firstNonEmpty(f.OutputDir, cfg.Output.Directory, config.DefaultOutputDir),
			SkipFirstSegment: !f.PreserveFirstComponent && cfg.SkipFirstSegment(),
			Template:         firstNonEmpty(f.Template, cfg.Template, config.DefaultTemplate),
			Dialect:          dialect,
			Overrides:        overrides,
		},
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
