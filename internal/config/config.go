// Package config reads stubba's settings from the environment.
package config

import (
	"fmt"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment variable stubba reads.
const EnvPrefix = "STUBBA"

// Settings are the knobs a test run can turn.
type Settings struct {
	// LogLevel is the minimum level logged to the test output (STUBBA_LOG_LEVEL).
	LogLevel zapcore.Level
	// VerifyRestoration compares method tables before stubbing and after
	// unstubbing (STUBBA_VERIFY_RESTORATION).
	VerifyRestoration bool
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		LogLevel:          zapcore.WarnLevel,
		VerifyRestoration: true,
	}
}

// Load reads the settings from the environment.
func Load() (Settings, error) {
	defaults := Default()

	v := viper.New()
	v.SetDefault(keyLogLevel, defaults.LogLevel.String())
	v.SetDefault(keyVerifyRestoration, defaults.VerifyRestoration)
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	level, err := zapcore.ParseLevel(v.GetString(keyLogLevel))
	if err != nil {
		return defaults, fmt.Errorf("%s_LOG_LEVEL: %w", EnvPrefix, err)
	}

	return Settings{
		LogLevel:          level,
		VerifyRestoration: v.GetBool(keyVerifyRestoration),
	}, nil
}

// unexported constants.
const (
	keyLogLevel          = "log_level"
	keyVerifyRestoration = "verify_restoration"
)
