package aws

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancing"
	"github.com/aws/aws-sdk-go-v2/service/elasticloadbalancingv2"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/rds"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/limiter"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
	apperrors "github.com/cloudjanitor/vpc-reaper/internal/errors"
)

// Clients bundles the AWS service clients the teardown needs, built from a
// single resolved config so they share region and credentials.
type Clients struct {
	Config  aws.Config
	EC2     *ec2.Client
	ELB     *elasticloadbalancing.Client
	ELBv2   *elasticloadbalancingv2.Client
	Lambda  *lambda.Client
	RDS     *rds.Client
	Limiter *limiter.Limiter

	AccountID string
}

// NewClients resolves the default credential chain, verifies that a region
// and working credentials are present, and constructs the service clients.
// Both checks are fatal: without them every subsequent call would fail the
// same way.
func NewClients(ctx context.Context, logger ports.Logger, rps int) (*Clients, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for AWS clients")
	}

	cfg, err := config.LoadDefaultConfig(ctx)
	if err != nil {
		return nil, apperrors.WrapUserFacing(err, apperrors.CodeConfigValidation,
			"Could not load AWS configuration.",
			"Check your AWS credentials and profile settings.")
	}

	if cfg.Region == "" {
		return nil, apperrors.NewUserFacing(apperrors.CodeConfigValidation,
			"No AWS region is configured.",
			"Set AWS_REGION or AWS_DEFAULT_REGION, or configure a region in your AWS profile.")
	}

	stsClient := sts.NewFromConfig(cfg)
	identity, err := stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, apperrors.WrapUserFacing(err, apperrors.CodePlatformAuthError,
			"AWS credentials are missing or invalid.",
			"Set AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY, or configure a profile with valid credentials.")
	}

	c := &Clients{
		Config:  cfg,
		EC2:     ec2.NewFromConfig(cfg),
		ELB:     elasticloadbalancing.NewFromConfig(cfg),
		ELBv2:   elasticloadbalancingv2.NewFromConfig(cfg),
		Lambda:  lambda.NewFromConfig(cfg),
		RDS:     rds.NewFromConfig(cfg),
		Limiter: limiter.New(rps, logger),
	}
	if identity.Account != nil {
		c.AccountID = *identity.Account
	}

	logger.Debugf(ctx, "AWS clients ready (region %s, account %s)", cfg.Region, c.AccountID)
	return c, nil
}
