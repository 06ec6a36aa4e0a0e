package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/logfields"
	"git.home.luguber.info/inful/docdoc/internal/metrics"
	"git.home.luguber.info/inful/docdoc/internal/pipeline"
	"git.home.luguber.info/inful/docdoc/internal/theme"
)

// ConvertCmd implements the default 'convert' command.
type ConvertCmd struct {
	Document DocumentFlags `embed:""`
}

func (c *ConvertCmd) Run(g *Global, root *CLI) error {
	s, err := prepare(&c.Document, root)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	res, err := newSession(s, logger(g)).convert(ctx)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(output(g), res.Destination)
	return nil
}

func prepare(f *DocumentFlags, root *CLI) (*settings, error) {
	cfg, err := root.Settings()
	if err != nil {
		return nil, err
	}
	return f.resolve(cfg)
}

// session converts one document repeatedly, reloading the theme each time so
// theme edits are picked up.
type session struct {
	settings *settings
	logger   *slog.Logger
	prom     *metrics.PrometheusRecorder
}

func newSession(s *settings, log *slog.Logger) *session {
	sess := &session{settings: s, logger: log}
	if s.MetricsFile != "" {
		sess.prom = metrics.NewPrometheusRecorder(nil)
	}
	return sess
}

func (s *session) recorder() metrics.Recorder {
	if s.prom == nil {
		return metrics.NoopRecorder{}
	}
	return s.prom
}

func (s *session) converter() (*pipeline.Converter, error) {
	th, err := theme.Load(s.settings.ThemeDir)
	if err != nil {
		return nil, err
	}
	return pipeline.New(th, pipeline.WithRecorder(s.recorder()), pipeline.WithLogger(s.logger))
}

// convert runs one full conversion and dumps metrics whether or not it
// succeeded.
func (s *session) convert(ctx context.Context) (*pipeline.Result, error) {
	res, err := s.run(ctx)
	if werr := s.writeMetrics(); werr != nil {
		if err != nil {
			s.logger.Warn("Failed to write metrics", logfields.Error(werr))
			return nil, err
		}
		return nil, werr
	}
	return res, err
}

func (s *session) run(ctx context.Context) (*pipeline.Result, error) {
	conv, err := s.converter()
	if err != nil {
		return nil, err
	}
	return conv.Convert(ctx, s.settings.Options)
}

func (s *session) writeMetrics() error {
	if s.prom == nil {
		return nil
	}
	if err := metrics.WriteTextfile(s.settings.MetricsFile, s.prom.Registry()); err != nil {
		return errors.WrapError(err, errors.CategoryFileSystem, "failed to write metrics file").
			WithContext("path", s.settings.MetricsFile).
			Build()
	}
	return nil
}

func logger(g *Global) *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

func output(g *Global) io.Writer {
	if g == nil || g.Out == nil {
		return os.Stdout
	}
	return g.Out
}
