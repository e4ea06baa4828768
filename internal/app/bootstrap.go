package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/ec2inv"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/elbinv"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/lambdainv"
	"github.com/cloudjanitor/vpc-reaper/internal/adapters/platform/aws/rdsinv"
	"github.com/cloudjanitor/vpc-reaper/internal/config"
	"github.com/cloudjanitor/vpc-reaper/internal/core/ports"
	"github.com/cloudjanitor/vpc-reaper/internal/core/service"
	"github.com/cloudjanitor/vpc-reaper/internal/errors"
	"github.com/cloudjanitor/vpc-reaper/internal/log"
	jsonreport "github.com/cloudjanitor/vpc-reaper/internal/reporting/json"
	"github.com/cloudjanitor/vpc-reaper/internal/reporting/text"
)

// Options carries the per-invocation inputs that come from CLI arguments
// rather than configuration.
type Options struct {
	ScopeID string
	DryRun  bool
}

// BuildApplicationFromViper resolves configuration, validates it, and wires
// the logger, AWS clients, inventories, reporter, and sequencer together.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper, opts Options) (*Application, error) {
	cfg := config.DefaultConfig()

	decodeHook := viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
	if err := v.Unmarshal(cfg, decodeHook); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to parse configuration")
	}

	logger, err := log.NewLogger(log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat})
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize logger")
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var details strings.Builder
		details.WriteString("Configuration validation failed:")
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range validationErrors {
				details.WriteString(fmt.Sprintf("\n - Field '%s': failed '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
			}
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, details.String(),
			"Check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}

	if !strings.HasPrefix(opts.ScopeID, "vpc-") {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("'%s' does not look like a VPC ID.", opts.ScopeID),
			"Pass a VPC ID of the form vpc-0123456789abcdef0.")
	}

	clients, err := aws.NewClients(ctx, logger.WithFields(map[string]any{"component": "aws"}), cfg.AWS.APIRateLimit)
	if err != nil {
		return nil, err
	}

	network := ec2inv.New(clients.EC2, clients.Limiter, logger.WithFields(map[string]any{"component": "ec2"}))
	balancers := elbinv.New(clients.ELBv2, clients.ELB, clients.Limiter, logger.WithFields(map[string]any{"component": "elb"}))
	databases := rdsinv.New(clients.RDS, clients.Limiter, logger.WithFields(map[string]any{"component": "rds"}))
	functions := lambdainv.New(clients.Lambda, clients.Limiter, logger.WithFields(map[string]any{"component": "lambda"}))

	var reporter ports.Reporter
	switch cfg.Settings.Output {
	case text.ReporterTypeText:
		textCfg := cfg.Settings.Reporter.Text
		if textCfg == nil {
			textCfg = config.DefaultConfig().Settings.Reporter.Text
		}
		reporter, err = text.NewReporter(*textCfg, logger.WithFields(map[string]any{"component": "reporter"}))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize text reporter")
		}
	case jsonreport.ReporterTypeJSON:
		reporter, err = jsonreport.NewReporter(logger.WithFields(map[string]any{"component": "reporter"}))
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize JSON reporter")
		}
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported output format: %s", cfg.Settings.Output),
			"Supported formats: text, json.")
	}

	sequencer := service.NewSequencer(service.SequencerParams{
		ScopeID:       opts.ScopeID,
		DryRun:        opts.DryRun,
		Network:       network,
		LoadBalancers: balancers,
		Databases:     databases,
		Functions:     functions,
		Logger:        logger.WithFields(map[string]any{"component": "sequencer", "vpc_id": opts.ScopeID}),
		Policy:        cfg.Policy,
	})

	logger.Debugf(ctx, "Application bootstrap complete")
	return NewApplication(sequencer, reporter, logger), nil
}
