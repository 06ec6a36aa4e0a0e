package pipeline

import (
	"context"
	"log/slog"
	"time"

	"git.home.luguber.info/inful/docdoc/internal/foundation/errors"
	"git.home.luguber.info/inful/docdoc/internal/logfields"
	"git.home.luguber.info/inful/docdoc/internal/metrics"
)

// RunStages executes stages in order, recording timing and stopping on the
// first error. The returned error carries the failing stage in its context.
func RunStages(ctx context.Context, st *State, stages []StageDef, rec metrics.Recorder, log *slog.Logger) error {
	for _, def := range stages {
		select {
		case <-ctx.Done():
			rec.IncStageResult(string(def.Name), metrics.ResultCanceled)
			return errors.WrapError(ctx.Err(), errors.CategoryInternal, "conversion canceled").
				WithContext("stage", string(def.Name)).
				Build()
		default:
		}

		t0 := time.Now()
		err := def.Fn(ctx, st)
		dur := time.Since(t0)

		st.StageDurations[def.Name] = dur
		rec.ObserveStageDuration(string(def.Name), dur)

		if err != nil {
			rec.IncStageResult(string(def.Name), metrics.ResultFailed)
			log.Debug("Stage failed",
				logfields.Stage(string(def.Name)),
				logfields.DurationMS(float64(dur.Microseconds())/1000),
				logfields.Error(err))
			return stageError(def.Name, err)
		}

		rec.IncStageResult(string(def.Name), metrics.ResultSuccess)
		log.Debug("Stage complete",
			logfields.Stage(string(def.Name)),
			logfields.DurationMS(float64(dur.Microseconds())/1000))
	}
	return nil
}

func stageError(name StageName, err error) error {
	if classified, ok := err.(*errors.ClassifiedError); ok {
		return classified.WithContext("stage", string(name))
	}
	return errors.WrapError(err, errors.CategoryInternal, "stage failed").
		WithContext("stage", string(name)).
		Build()
}
