package build

import (
	"context"
	stderrors "errors"
	"time"

	"git.home.luguber.info/inful/doctags/internal/docs"
	"git.home.luguber.info/inful/doctags/internal/logfields"
	"git.home.luguber.info/inful/doctags/internal/metrics"
)

// Status represents the outcome of a build.
type Status string

const (
	StatusSuccess  Status = "success"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Result contains the outcome of Run.
type Result struct {
	BuildID   string
	Status    Status
	Documents int         // Markdown documents scanned
	Generated []docs.File // Pages registered into the collection
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}

// Run scans files and generates the tag pages. The context is checked
// between documents and between categories.
func (b *Builder) Run(ctx context.Context, files *docs.Files) (*Result, error) {
	result := &Result{BuildID: b.buildID, StartTime: time.Now()}
	b.logger.Info("Starting tag build", logfields.Count(len(b.settings.Names)))

	err := b.stage(StageScan, func() error { return b.scan(ctx, files) })
	result.Documents = len(b.records)
	if err == nil {
		err = b.stage(StageGenerate, func() error {
			var genErr error
			result.Generated, genErr = b.generate(ctx, files)
			return genErr
		})
	}

	result.EndTime = time.Now()
	result.Duration = result.EndTime.Sub(result.StartTime)
	b.recorder.ObserveBuildDuration(result.Duration)

	switch {
	case err == nil:
		result.Status = StatusSuccess
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeSuccess)
		b.logger.Info("Tag build completed",
			logfields.Count(len(result.Generated)),
			logfields.DurationMS(float64(result.Duration.Milliseconds())))
	case isCanceled(err):
		result.Status = StatusCanceled
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeCanceled)
		b.logger.Warn("Tag build canceled", logfields.Error(err))
	default:
		result.Status = StatusFailed
		b.recorder.IncBuildOutcome(metrics.BuildOutcomeFailed)
		b.logger.Error("Tag build failed", logfields.Error(err))
	}
	b.manifest.Finish(string(result.Status), result.Duration)
	return result, err
}

func (b *Builder) stage(name string, fn func() error) error {
	start := time.Now()
	b.logger.Debug("Stage started", logfields.Stage(name))
	err := fn()
	d := time.Since(start)
	b.recorder.ObserveStageDuration(name, d)

	res := metrics.ResultSuccess
	switch {
	case err == nil:
	case isCanceled(err):
		res = metrics.ResultCanceled
	default:
		res = metrics.ResultFatal
	}
	b.recorder.IncStageResult(name, res)
	b.logger.Debug("Stage finished", logfields.Stage(name), logfields.DurationMS(float64(d.Milliseconds())))
	return err
}

func isCanceled(err error) bool {
	return stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded)
}
