package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/undeconstructed/gomonopoly/config"
	"github.com/undeconstructed/gomonopoly/game"
	"github.com/undeconstructed/gomonopoly/luapolicy"
	"github.com/undeconstructed/gomonopoly/save"
)

func initLogger(c config.Logging, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(c.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	if c.Format == "json" {
		return zerolog.New(out).With().Timestamp().Logger()
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: out}).With().Timestamp().Logger()
}

// policies builds every autonomous player's policy up front, so a bad
// script stops things before the game starts.
func policies(c *config.Config, log zerolog.Logger) (map[string]game.Policy, error) {
	out := map[string]game.Policy{}
	for _, p := range c.Players {
		if !p.AI {
			continue
		}
		switch p.Policy {
		case config.PolicyReserve:
			out[p.Name] = game.KeepReserve{Reserve: p.Reserve}
		case config.PolicyLua:
			lp, err := luapolicy.Load(p.Script, log)
			if err != nil {
				return nil, fmt.Errorf("player %s: %w", p.Name, err)
			}
			out[p.Name] = lp
		default:
			out[p.Name] = game.BuyIfAffordable{}
		}
	}
	return out, nil
}

// gameOptions is everything a new or loaded game needs from the config.
func gameOptions(c *config.Config, decider game.Decider, log zerolog.Logger) (game.Options, error) {
	ps, err := policies(c, log)
	if err != nil {
		return game.Options{}, err
	}

	opts := game.Options{
		Decider:       decider,
		Policy:        func(name string) game.Policy { return ps[name] },
		StartingMoney: c.StartingMoney,
		AutoTurnLimit: c.AutoTurnLimit,
		Log:           &log,
	}
	if c.Seed != 0 {
		opts.Dice = game.NewDice(c.Seed)
	}
	return opts, nil
}

// newGame sets up and starts a game with the configured players.
func newGame(c *config.Config, opts game.Options) (*game.Game, error) {
	board, err := game.NewBoard(c.Board)
	if err != nil {
		return nil, err
	}

	g := game.NewGame(board, opts)
	for _, p := range c.Players {
		if err := g.AddPlayer(p.Name, p.AI); err != nil {
			return nil, fmt.Errorf("player %s: %w", p.Name, err)
		}
	}
	if err := g.Start(); err != nil {
		return nil, err
	}
	return g, nil
}

// openStore makes the configured store. The returned func closes it.
func openStore(c config.Save) (save.Store, func() error, error) {
	nothing := func() error { return nil }

	switch c.Backend {
	case config.BackendSQLite:
		s, err := save.OpenSQLite(c.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case config.BackendRedis:
		pool := save.NewRedisPool(c.RedisAddr)
		return save.NewRedisStore(pool, ""), pool.Close, nil
	default:
		return save.NewFileStore(afero.NewOsFs(), c.Dir), nothing, nil
	}
}

func fatal(log zerolog.Logger, err error, msg string) {
	log.Error().Err(err).Msg(msg)
	os.Exit(1)
}
