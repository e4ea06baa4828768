package json

import (
	"bytes"
	"context"
	stdjson "encoding/json"
	"testing"

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

func TestReportRoundTrips(t *testing.T) {
	report := domain.NewReport("vpc-1", false)
	report.RecordDeleted(domain.KindSubnet, "subnet-a")
	report.RecordFailure(domain.KindSecurityGroup, "sg-1", domain.ReasonInUse, "guidance here")

	var buf bytes.Buffer
	r := NewReporterWithWriter(nopLogger{}, &buf)
	require.NoError(t, r.Report(context.Background(), report))

	var decoded struct {
		ScopeID      string              `json:"vpc_id"`
		ScopeDeleted bool                `json:"vpc_deleted"`
		Deleted      map[string][]string `json:"deleted"`
		Failures     map[string][]struct {
			ID       string `json:"id"`
			Reason   string `json:"reason"`
			Guidance string `json:"guidance"`
		} `json:"failures"`
		Summary struct {
			DeletedCount int `json:"deleted_count"`
			FailureCount int `json:"failure_count"`
		} `json:"summary"`
	}
	require.NoError(t, stdjson.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "vpc-1", decoded.ScopeID)
	assert.False(t, decoded.ScopeDeleted)
	assert.Equal(t, []string{"subnet-a"}, decoded.Deleted["Subnet"])
	require.Len(t, decoded.Failures["SecurityGroup"], 1)
	assert.Equal(t, "sg-1", decoded.Failures["SecurityGroup"][0].ID)
	assert.Equal(t, "still in use", decoded.Failures["SecurityGroup"][0].Reason)
	assert.Equal(t, 1, decoded.Summary.DeletedCount)
	assert.Equal(t, 1, decoded.Summary.FailureCount)
}
