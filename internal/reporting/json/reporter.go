package json

import (
	"context"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

const ReporterTypeJSON = "json"

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type Reporter struct {
	writer io.Writer
	logger ports.Logger
}

func NewReporter(logger ports.Logger) (*Reporter, error) {
	return &Reporter{
		writer: os.Stdout,
		logger: logger,
	}, nil
}

func NewReporterWithWriter(logger ports.Logger, w io.Writer) *Reporter {
	return &Reporter{writer: w, logger: logger}
}

type jsonReport struct {
	ScopeID      string                                   `json:"vpc_id"`
	DryRun       bool                                     `json:"dry_run"`
	ScopeDeleted bool                                     `json:"vpc_deleted"`
	Deleted      map[domain.ResourceKind][]string         `json:"deleted"`
	Failures     map[domain.ResourceKind][]domain.Failure `json:"failures,omitempty"`
	Summary      jsonSummary                              `json:"summary"`
}

type jsonSummary struct {
	DeletedCount int `json:"deleted_count"`
	FailureCount int `json:"failure_count"`
}

func (r *Reporter) Report(ctx context.Context, report *domain.Report) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}

	out := jsonReport{
		ScopeID:      report.ScopeID,
		DryRun:       report.DryRun,
		ScopeDeleted: report.ScopeDeleted,
		Deleted:      report.Deleted,
		Failures:     report.Failures,
		Summary: jsonSummary{
			DeletedCount: report.DeletedCount(),
			FailureCount: report.FailureCount(),
		},
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling teardown report: %w", err)
	}
	if _, err := r.writer.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("writing teardown report: %w", err)
	}
	return nil
}
