package awserrors

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"

	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

func apiErr(code string) error {
	return &smithy.GenericAPIError{Code: code, Message: "boom"}
}

func TestClassify(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name string
		err  error
		want apperrors.Code
	}{
		{"nil passes through", nil, ""},
		{"dependency violation is in use", apiErr("DependencyViolation"), apperrors.CodeResourceInUse},
		{"interface in use", apiErr("InvalidNetworkInterface.InUse"), apperrors.CodeResourceInUse},
		{"rds in use", apiErr("InvalidDBSubnetGroupStateFault"), apperrors.CodeResourceInUse},
		{"ec2 not found suffix", apiErr("InvalidVpcEndpointId.NotFound"), apperrors.CodeResourceNotFound},
		{"vpc not found", apiErr("InvalidVpcID.NotFound"), apperrors.CodeResourceNotFound},
		{"lambda not found", apiErr("ResourceNotFoundException"), apperrors.CodeResourceNotFound},
		{"rds not found", apiErr("DBSubnetGroupNotFoundFault"), apperrors.CodeResourceNotFound},
		{"elb not found", apiErr("LoadBalancerNotFound"), apperrors.CodeResourceNotFound},
		{"unauthorized", apiErr("UnauthorizedOperation"), apperrors.CodePlatformAuthError},
		{"access denied", apiErr("AccessDeniedException"), apperrors.CodePlatformAuthError},
		{"anything else is an API error", apiErr("InternalError"), apperrors.CodePlatformAPIError},
		{"plain error is an API error", errors.New("connection reset"), apperrors.CodePlatformAPIError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(ctx, tc.err, "thing", "thing-1")
			if tc.err == nil {
				assert.NoError(t, got)
				return
			}
			assert.Equal(t, tc.want, apperrors.GetCode(got))
			assert.ErrorIs(t, got, tc.err)
		})
	}
}

func TestClassifyCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got := Classify(ctx, context.Canceled, "thing", "thing-1")
	assert.Equal(t, apperrors.CodeTimeout, apperrors.GetCode(got))
}
