package main

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudjanitor/vpc-reaper/internal/config"
)

// A bare invocation has only the bound flag defaults in viper; unmarshalling
// them over the built-in config must still produce a valid configuration.
// An empty bound default would clobber the configured output format and fail
// validation before anything runs.
func TestBoundFlagDefaultsProduceValidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	require.NoError(t, viper.Unmarshal(cfg))

	validate := validator.New(validator.WithRequiredStructEnabled())
	assert.NoError(t, validate.Struct(cfg))
	assert.Equal(t, "text", cfg.Settings.Output)
}
