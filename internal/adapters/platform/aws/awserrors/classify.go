package awserrors

import (
	"context"
	stderrs "errors"
	"fmt"
	"strings"

	"github.com/aws/smithy-go"

	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// Classify maps a raw AWS SDK error onto an application error code so the
// core can decide between retry, remediation, and giving up without looking
// at provider-specific codes.
func Classify(ctx context.Context, err error, resourceType, resourceID string) error {
	if err == nil {
		return nil
	}

	if ctx.Err() != nil || stderrs.Is(err, context.Canceled) || stderrs.Is(err, context.DeadlineExceeded) {
		return apperrors.Wrap(err, apperrors.CodeTimeout,
			fmt.Sprintf("context canceled during AWS %s API call", resourceType))
	}

	code := ""
	var apiErr smithy.APIError
	if stderrs.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}

	switch {
	case isAuthCode(code) || containsAny(err.Error(), "AuthFailure", "UnauthorizedOperation", "AccessDenied"):
		return apperrors.Wrap(err, apperrors.CodePlatformAuthError,
			fmt.Sprintf("not authorized for %s '%s'", resourceType, resourceID))
	case isInUseCode(code):
		return apperrors.Wrap(err, apperrors.CodeResourceInUse,
			fmt.Sprintf("%s '%s' is still in use", resourceType, resourceID))
	case isNotFoundCode(code) || containsAny(err.Error(), "NotFound", "not found", "does not exist"):
		return apperrors.Wrap(err, apperrors.CodeResourceNotFound,
			fmt.Sprintf("%s '%s' not found", resourceType, resourceID))
	}

	return apperrors.Wrap(err, apperrors.CodePlatformAPIError,
		fmt.Sprintf("AWS API call failed for %s '%s'", resourceType, resourceID))
}

func isInUseCode(code string) bool {
	switch code {
	case "DependencyViolation",
		"ResourceInUse",
		"ResourceInUseException",
		"InvalidNetworkInterface.InUse",
		"InvalidParameterValue.AddressInUse",
		"InvalidDBSubnetGroupStateFault",
		"InvalidState":
		return true
	}
	return false
}

func isNotFoundCode(code string) bool {
	if strings.HasSuffix(code, ".NotFound") || strings.HasSuffix(code, "NotFoundException") {
		return true
	}
	switch code {
	case "ResourceNotFoundException",
		"DBSubnetGroupNotFoundFault",
		"LoadBalancerNotFound",
		"ListenerNotFound",
		"TargetGroupNotFound",
		"InvalidGroup.NotFound",
		"InvalidAllocationID.NotFound",
		"InvalidAssociationID.NotFound",
		"InvalidRoute.NotFound":
		return true
	}
	return false
}

func isAuthCode(code string) bool {
	switch code {
	case "UnauthorizedOperation",
		"AccessDenied",
		"AccessDeniedException",
		"AuthFailure",
		"UnauthorizedAccess":
		return true
	}
	return false
}

func containsAny(msg string, needles ...string) bool {
	for _, n := range needles {
		if strings.Contains(msg, n) {
			return true
		}
	}
	return false
}
