// Package config loads server configuration from a YAML file with
// environment-variable overrides (prefix NOVA_).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config is the root configuration for the server.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Database DatabaseConfig `mapstructure:"database"`
	Rules    RulesConfig    `mapstructure:"rules"`
}

// ServerConfig holds transport settings.
type ServerConfig struct {
	Address         string        `mapstructure:"address"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json or console
}

// DatabaseConfig holds the optional record-store connection. An empty URL
// disables persistence.
type DatabaseConfig struct {
	URL      string `mapstructure:"url"`
	MaxConns int32  `mapstructure:"max_conns"`
}

// RulesConfig carries the numeric rule constants the engine treats as
// configuration rather than hard-coded assumptions.
type RulesConfig struct {
	// HitThreshold is the base value an attack roll plus computer bonus
	// must reach against an unshielded target. Each shield point raises it.
	HitThreshold int `mapstructure:"hit_threshold"`
	// DieSides is the number of faces on the combat die.
	DieSides int `mapstructure:"die_sides"`
	// MaxCombatRounds caps cannon sub-rounds per encounter (stalemate guard).
	MaxCombatRounds int `mapstructure:"max_combat_rounds"`
	// KillVP and AncientKillVP are victory points per destroyed ship.
	KillVP        int `mapstructure:"kill_vp"`
	AncientKillVP int `mapstructure:"ancient_kill_vp"`
	// MaxGameRounds ends the game at the cleanup of this round.
	MaxGameRounds int `mapstructure:"max_game_rounds"`
	// StartingInfluenceDiscs is each player's disc supply.
	StartingInfluenceDiscs int `mapstructure:"starting_influence_discs"`
	// UpkeepPerDisc is the money maintenance charged per placed influence disc.
	UpkeepPerDisc int `mapstructure:"upkeep_per_disc"`
	// MaxShipsPerHex caps how many ships a hex can hold; BUILD into a full
	// hex is rejected.
	MaxShipsPerHex int `mapstructure:"max_ships_per_hex"`
	// InitiativePrecedence breaks initiative ties between ship classes;
	// earlier entries fire first.
	InitiativePrecedence []string `mapstructure:"initiative_precedence"`
}

// Load reads configuration from the given file path. A missing file is not
// an error; defaults and environment overrides still apply.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("database.url", "")
	v.SetDefault("database.max_conns", 4)

	v.SetDefault("rules.hit_threshold", 6)
	v.SetDefault("rules.die_sides", 6)
	v.SetDefault("rules.max_combat_rounds", 10)
	v.SetDefault("rules.kill_vp", 1)
	v.SetDefault("rules.ancient_kill_vp", 2)
	v.SetDefault("rules.max_game_rounds", 9)
	v.SetDefault("rules.starting_influence_discs", 11)
	v.SetDefault("rules.upkeep_per_disc", 1)
	v.SetDefault("rules.max_ships_per_hex", 8)
	v.SetDefault("rules.initiative_precedence", []string{"starbase", "interceptor", "cruiser", "dreadnought"})

	v.SetEnvPrefix("NOVA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) && !os.IsNotExist(err) {
				return nil, fmt.Errorf("reading config %s: %w", path, err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DefaultRules returns the rule constants with their defaults, for embedding
// the engine without a config file.
func DefaultRules() RulesConfig {
	cfg, err := Load("")
	if err != nil {
		panic(err)
	}
	return cfg.Rules
}

func (c *Config) validate() error {
	if c.Rules.DieSides < 2 {
		return fmt.Errorf("rules.die_sides must be at least 2, got %d", c.Rules.DieSides)
	}
	if c.Rules.MaxCombatRounds < 1 {
		return fmt.Errorf("rules.max_combat_rounds must be positive, got %d", c.Rules.MaxCombatRounds)
	}
	if c.Rules.MaxGameRounds < 1 {
		return fmt.Errorf("rules.max_game_rounds must be positive, got %d", c.Rules.MaxGameRounds)
	}
	if c.Rules.MaxShipsPerHex < 1 {
		return fmt.Errorf("rules.max_ships_per_hex must be positive, got %d", c.Rules.MaxShipsPerHex)
	}
	if c.Rules.StartingInfluenceDiscs < 1 {
		return fmt.Errorf("rules.starting_influence_discs must be positive, got %d", c.Rules.StartingInfluenceDiscs)
	}
	return nil
}
