// Package config reads how to set up a game: from a YAML file, a .env file
// and MONOPOLY_* environment variables, in rising order of precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/undeconstructed/gomonopoly/game"
)

const EnvPrefix = "MONOPOLY"

type Policy string

const (
	PolicyBuy     Policy = "buy"
	PolicyReserve Policy = "reserve"
	PolicyLua     Policy = "lua"
)

type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
	BackendRedis  Backend = "redis"
)

type Player struct {
	Name    string `mapstructure:"name"`
	AI      bool   `mapstructure:"ai"`
	Policy  Policy `mapstructure:"policy"`
	Reserve int    `mapstructure:"reserve"`
	Script  string `mapstructure:"script"`
}

type Save struct {
	Backend    Backend `mapstructure:"backend"`
	Dir        string  `mapstructure:"dir"`
	SQLitePath string  `mapstructure:"sqlite_path"`
	RedisAddr  string  `mapstructure:"redis_addr"`
	Slot       string  `mapstructure:"slot"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type Web struct {
	Enabled bool   `mapstructure:"enabled"`
	Address string `mapstructure:"address"`
	// TCPAddress serves the same stream as /ws as JSON lines; off if empty
	TCPAddress string `mapstructure:"tcp_address"`
}

type Config struct {
	Board         string   `mapstructure:"board"`
	StartingMoney int      `mapstructure:"starting_money"`
	Seed          int64    `mapstructure:"seed"`
	AutoTurnLimit int      `mapstructure:"auto_turn_limit"`
	Players       []Player `mapstructure:"players"`
	Save          Save     `mapstructure:"save"`
	Logging       Logging  `mapstructure:"logging"`
	Web           Web      `mapstructure:"web"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("board", "classic")
	v.SetDefault("starting_money", game.DefaultStartingMoney)
	v.SetDefault("seed", 0)
	v.SetDefault("auto_turn_limit", game.DefaultAutoTurnLimit)
	v.SetDefault("players", []map[string]interface{}{
		{"name": "you", "ai": false},
		{"name": "computer", "ai": true, "policy": string(PolicyBuy)},
	})
	v.SetDefault("save.backend", string(BackendFile))
	v.SetDefault("save.dir", "saves")
	v.SetDefault("save.sqlite_path", "monopoly.db")
	v.SetDefault("save.redis_addr", "localhost:6379")
	v.SetDefault("save.slot", "")
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("web.enabled", false)
	v.SetDefault("web.address", "localhost:8080")
	v.SetDefault("web.tcp_address", "")
}

// Load builds the config. path may be empty, in which case only defaults,
// .env and the environment count.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks everything that can be checked without starting a game.
func (c *Config) Validate() error {
	if !stringIn(game.Variants(), c.Board) {
		return fmt.Errorf("board %q: %w", c.Board, game.ErrUnknownBoard)
	}
	if c.StartingMoney <= 0 {
		return fmt.Errorf("starting_money must be positive, not %d", c.StartingMoney)
	}
	if c.AutoTurnLimit <= 0 {
		return fmt.Errorf("auto_turn_limit must be positive, not %d", c.AutoTurnLimit)
	}
	if len(c.Players) < 2 {
		return fmt.Errorf("%d players configured: %w", len(c.Players), game.ErrNotEnoughPlayers)
	}

	var names []string
	for i := range c.Players {
		p := &c.Players[i]
		if p.Name == "" {
			return fmt.Errorf("player %d has no name", i)
		}
		if stringIn(names, p.Name) {
			return fmt.Errorf("player %s: %w", p.Name, game.ErrPlayerExists)
		}
		names = append(names, p.Name)

		if !p.AI {
			continue
		}
		switch p.Policy {
		case "":
			p.Policy = PolicyBuy
		case PolicyBuy:
		case PolicyReserve:
			if p.Reserve < 0 {
				return fmt.Errorf("player %s: reserve must not be negative", p.Name)
			}
		case PolicyLua:
			if p.Script == "" {
				return fmt.Errorf("player %s: lua policy needs a script", p.Name)
			}
		default:
			return fmt.Errorf("player %s: unknown policy %q", p.Name, p.Policy)
		}
	}

	switch c.Save.Backend {
	case BackendFile, BackendSQLite, BackendRedis:
	default:
		return fmt.Errorf("unknown save backend %q", c.Save.Backend)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("unknown logging format %q", c.Logging.Format)
	}

	return nil
}

func stringIn(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}
