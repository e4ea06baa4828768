package service

import (
	"context"
	"time"
)

// RetryPolicy bounds repeated delete attempts for resources that report
// themselves as in use.
type RetryPolicy struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1,max=10"`
	Interval    time.Duration `mapstructure:"interval" validate:"min=0"`
}

// PollPolicy bounds the wait for a provider-side state transition.
type PollPolicy struct {
	MaxAttempts int           `mapstructure:"max_attempts" validate:"min=1,max=120"`
	Interval    time.Duration `mapstructure:"interval" validate:"min=0"`
}

type Policy struct {
	Delete         RetryPolicy `mapstructure:"delete"`
	InstanceWait   PollPolicy  `mapstructure:"instance_wait"`
	NATGatewayWait PollPolicy  `mapstructure:"nat_gateway_wait"`
	InterfaceDrain PollPolicy  `mapstructure:"interface_drain"`
}

func DefaultPolicy() Policy {
	return Policy{
		Delete:         RetryPolicy{MaxAttempts: 3, Interval: 5 * time.Second},
		InstanceWait:   PollPolicy{MaxAttempts: 40, Interval: 15 * time.Second},
		NATGatewayWait: PollPolicy{MaxAttempts: 30, Interval: 10 * time.Second},
		InterfaceDrain: PollPolicy{MaxAttempts: 6, Interval: 30 * time.Second},
	}
}

// SleepFunc is injectable so tests run the retry and poll loops without
// real delays.
type SleepFunc func(ctx context.Context, d time.Duration) error

func DefaultSleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
