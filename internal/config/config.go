// Package config provides Viper-based configuration loading for the game.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// LoggingConfig holds structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	Level string `mapstructure:"level"`
	// Format is the log output format: "json" or "console".
	Format string `mapstructure:"format"`
}

// GameConfig holds the settings of a single fight.
type GameConfig struct {
	// ResultPath is the file that receives the one-line outcome.
	ResultPath string `mapstructure:"result_path"`
	// ContentDir overrides the embedded class and monster definitions when non-empty.
	ContentDir string `mapstructure:"content_dir"`
	// Roster lists monster template IDs in encounter order.
	Roster []string `mapstructure:"roster"`
	// Color enables ANSI colored narration.
	Color bool `mapstructure:"color"`
	// SweepAfterDefeat keeps attacking the remaining monsters after the player
	// falls mid-sweep.
	SweepAfterDefeat bool `mapstructure:"sweep_after_defeat"`
	// DistinctForfeitResult records a forfeit as "Forfeit: <name>" instead of
	// "The monsters won!".
	DistinctForfeitResult bool `mapstructure:"distinct_forfeit_result"`
	// Seed fixes the damage RNG seed; zero seeds from the wall clock.
	Seed uint64 `mapstructure:"seed"`
}

// Config is the top-level application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging"`
	Game    GameConfig    `mapstructure:"game"`
}

// Validate checks all configuration invariants.
//
// Postcondition: Returns nil if configuration is valid, or an error describing all violations.
func (c Config) Validate() error {
	var errs []string

	if err := validateLogging(c.Logging); err != nil {
		errs = append(errs, err.Error())
	}
	if err := validateGame(c.Game); err != nil {
		errs = append(errs, err.Error())
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func validateLogging(l LoggingConfig) error {
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[l.Level] {
		return fmt.Errorf("logging.level must be one of [debug, info, warn, error], got %q", l.Level)
	}
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[l.Format] {
		return fmt.Errorf("logging.format must be one of [json, console], got %q", l.Format)
	}
	return nil
}

func validateGame(g GameConfig) error {
	var errs []string
	if g.ResultPath == "" {
		errs = append(errs, "game.result_path must not be empty")
	}
	if len(g.Roster) == 0 {
		errs = append(errs, "game.roster must list at least one monster")
	}
	for i, id := range g.Roster {
		if strings.TrimSpace(id) == "" {
			errs = append(errs, fmt.Sprintf("game.roster[%d] must not be empty", i))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%s", strings.Join(errs, "; "))
	}
	return nil
}

// Load reads configuration from the given file path, applies environment variable
// overrides, and validates the result. An empty path uses defaults and the
// environment only.
//
// Postcondition: Returns a valid Config or a non-nil error.
func Load(path string) (Config, error) {
	v := viper.New()

	// Environment variable overrides with MONSTERGAME_ prefix
	v.SetEnvPrefix("MONSTERGAME")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	return LoadFromViper(v)
}

// LoadFromViper builds a Config from an already-configured Viper instance.
//
// Precondition: v must be non-nil and have configuration values set.
// Postcondition: Returns a valid Config or a non-nil error.
func LoadFromViper(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshalling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("game.result_path", "winner.txt")
	v.SetDefault("game.content_dir", "")
	v.SetDefault("game.roster", []string{"goblin", "orc"})
	v.SetDefault("game.color", true)
	v.SetDefault("game.sweep_after_defeat", true)
	v.SetDefault("game.distinct_forfeit_result", false)
	v.SetDefault("game.seed", 0)
}
