package commands

import (
	"context"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"git.home.luguber.info/inful/docdoc/internal/logfields"
	"git.home.luguber.info/inful/docdoc/internal/pathmap"
	"git.home.luguber.info/inful/docdoc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Document DocumentFlags `embed:""`
	Debounce time.Duration `default:"200ms" help:"Quiet period after the last change before reconverting"`
}

func (w *WatchCmd) Run(g *Global, root *CLI) error {
	s, err := prepare(&w.Document, root)
	if err != nil {
		return err
	}
	log := logger(g)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess := newSession(s, log)
	var watcher *watch.Watcher
	build := func(ctx context.Context) error {
		res, err := sess.convert(ctx)
		if err != nil {
			return err
		}
		return watcher.Ignore(append([]string{res.Destination}, res.Assets...)...)
	}

	ignore := []string{
		s.Options.OutputRoot,
		pathmap.MapDestination(s.Options.Source, s.Options.OutputRoot, s.Options.SkipFirstSegment),
		s.MetricsFile,
	}
	watcher, err = watch.New(watch.Options{
		Roots:    []string{filepath.Dir(s.Options.Source), s.ThemeDir},
		Ignore:   ignore,
		Debounce: w.Debounce,
		Logger:   log,
	}, build)
	if err != nil {
		return err
	}

	if err := build(ctx); err != nil {
		log.Warn("Initial conversion failed", logfields.Path(s.Options.Source), logfields.Error(err))
	}

	log.Info("Watching for changes", logfields.Path(s.Options.Source), logfields.Theme(s.ThemeDir))
	return watcher.Run(ctx)
}
