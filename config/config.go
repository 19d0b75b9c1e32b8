// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"errors"
	"strings"
	"time"

	"github.com/mediaspawn/mediaspawn/constant"
	"github.com/mediaspawn/mediaspawn/filesystem"
	"github.com/mediaspawn/mediaspawn/key"
	"github.com/mediaspawn/mediaspawn/where"
	"github.com/spf13/viper"
)

// EnvKeyReplacer is a strings.Replacer used to normalize configuration keys into environment variable naming conventions.
var EnvKeyReplacer = strings.NewReplacer(".", "_")

// Setup initializes defaults, environment bindings and the config file lookup.
func Setup() error {
	viper.SetConfigName(constant.Mediaspawn)
	viper.SetConfigType("toml")
	viper.SetFs(filesystem.API())
	viper.AddConfigPath(where.Config())

	viper.SetEnvPrefix(constant.Mediaspawn)
	viper.SetEnvKeyReplacer(EnvKeyReplacer)
	for _, env := range EnvExposed {
		viper.MustBindEnv(env)
	}

	viper.SetTypeByDefaultValue(true)
	for name, field := range Default {
		viper.SetDefault(name, field.Value)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return err
	}

	return nil
}

// PollInterval returns the configured readiness poll delay.
func PollInterval() time.Duration {
	ms := viper.GetInt(key.SpawnerPollInterval)
	if ms <= 0 {
		return constant.PollInterval
	}
	return time.Duration(ms) * time.Millisecond
}

// LoadTimeout returns the configured dependency load timeout, zero meaning unbounded.
func LoadTimeout() time.Duration {
	s := viper.GetInt(key.SpawnerLoadTimeout)
	if s < 0 {
		return 0
	}
	return time.Duration(s) * time.Second
}

// Tick returns the timeline clock resolution.
func Tick() time.Duration {
	ms := viper.GetInt(key.TimelineTick)
	if ms <= 0 {
		return 100 * time.Millisecond
	}
	return time.Duration(ms) * time.Millisecond
}
