package ports

import (
	"context"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
)

// Reporter renders the final teardown summary.
type Reporter interface {
	Report(ctx context.Context, report *domain.Report) error
}
