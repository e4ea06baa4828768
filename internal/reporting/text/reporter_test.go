package text

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudjanitor/vpc-reaper/internal/core/domain"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
)

type nopLogger struct{}

func (nopLogger) Debugf(ctx context.Context, format string, args ...any)            {}
func (nopLogger) Infof(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Warnf(ctx context.Context, format string, args ...any)             {}
func (nopLogger) Errorf(ctx context.Context, err error, format string, args ...any) {}
func (l nopLogger) WithFields(fields map[string]any) ports.Logger                   { return l }

func render(t *testing.T, report *domain.Report) string {
	t.Helper()
	color.NoColor = true

	var buf bytes.Buffer
	r := NewReporterWithWriter(Config{NoColor: true}, nopLogger{}, &buf)
	require.NoError(t, r.Report(context.Background(), report))
	return buf.String()
}

func TestReportSamplesLongIDLists(t *testing.T) {
	report := domain.NewReport("vpc-1", false)
	for _, id := range []string{"subnet-a", "subnet-b", "subnet-c", "subnet-d", "subnet-e"} {
		report.RecordDeleted(domain.KindSubnet, id)
	}
	report.RecordDeleted(domain.KindScope, "vpc-1")
	report.ScopeDeleted = true

	out := render(t, report)

	assert.Contains(t, out, "Subnet")
	assert.Contains(t, out, "subnet-a, subnet-b, subnet-c, +2 more")
	assert.NotContains(t, out, "subnet-d")
	assert.Contains(t, out, "VPC vpc-1 deleted.")
}

func TestReportShowsFailuresWithGuidance(t *testing.T) {
	report := domain.NewReport("vpc-1", false)
	report.RecordDeleted(domain.KindRouteTable, "rtb-1")
	report.RecordFailure(domain.KindSecurityGroup, "sg-1", domain.ReasonInUse,
		"A network interface or another group's rule still references this group.")

	out := render(t, report)

	assert.Contains(t, out, "FAILED SecurityGroup sg-1: still in use")
	assert.Contains(t, out, "still references this group")
	assert.Contains(t, out, "VPC vpc-1 was NOT deleted.")
}

func TestReportDryRunHeader(t *testing.T) {
	report := domain.NewReport("vpc-1", true)
	report.RecordDeleted(domain.KindSubnet, "subnet-a")
	report.RecordDeleted(domain.KindScope, "vpc-1")
	report.ScopeDeleted = true

	out := render(t, report)

	assert.Contains(t, out, "Teardown Plan for vpc-1 (dry run)")
	assert.Contains(t, out, "Would delete 2 resources")
	assert.Contains(t, out, "VPC vpc-1 would be deleted.")
}

func TestReportEmptyScope(t *testing.T) {
	report := domain.NewReport("vpc-1", false)
	report.RecordDeleted(domain.KindScope, "vpc-1")
	report.ScopeDeleted = true

	out := render(t, report)
	assert.Contains(t, out, "VPC vpc-1 deleted.")
}
