package app

import (
	"context"

	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
	"github.com/cloudjanitor/vpc-reaper/internal/core/service"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// Application wires the sequencer to the reporter for a single teardown run.
type Application struct {
	Sequencer *service.Sequencer
	Reporter  ports.Reporter
	Logger    ports.Logger
}

func NewApplication(sequencer *service.Sequencer, reporter ports.Reporter, logger ports.Logger) *Application {
	return &Application{
		Sequencer: sequencer,
		Reporter:  reporter,
		Logger:    logger,
	}
}

// Run executes the teardown and renders the report. A non-nil error means
// either a fatal condition or an incomplete teardown; callers should exit
// non-zero in both cases.
func (a *Application) Run(ctx context.Context) error {
	report, err := a.Sequencer.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Teardown aborted")
		return err
	}

	if rerr := a.Reporter.Report(ctx, report); rerr != nil {
		a.Logger.Errorf(ctx, rerr, "Failed to render teardown report")
		return apperrors.Wrap(rerr, apperrors.CodeInternal, "failed to render teardown report")
	}

	if !report.Succeeded() {
		return apperrors.New(apperrors.CodeTeardownIncomplete, "teardown did not complete")
	}
	return nil
}
