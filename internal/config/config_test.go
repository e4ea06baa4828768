package config

import (
	"context"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(context.Background(), DefaultConfig())
	assert.NoError(t, err)
}

func TestInvalidOutputFailsValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Settings.Output = "yaml"

	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Output")
}

func TestOutOfRangeRateLimitFailsValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AWS.APIRateLimit = 500

	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOutOfRangeRetryBudgetFailsValidation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Policy.Delete.MaxAttempts = 50

	validate := validator.New(validator.WithRequiredStructEnabled())
	err := validate.StructCtx(context.Background(), cfg)
	assert.Error(t, err)
}
