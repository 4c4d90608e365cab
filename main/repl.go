package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	rl "github.com/chzyer/readline"
	"github.com/rs/zerolog"

	"github.com/undeconstructed/gomonopoly/game"
	"github.com/undeconstructed/gomonopoly/save"
	"github.com/undeconstructed/gomonopoly/server"
)

// lineReader is the part of a readline instance the REPL uses.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

func newCompleter() *rl.PrefixCompleter {
	var items []rl.PrefixCompleterInterface
	for _, c := range commands {
		items = append(items, rl.PcItem(c.name))
	}
	return rl.NewPrefixCompleter(items...)
}

type repl struct {
	in    lineReader
	out   io.Writer
	table *server.Table
	store save.Store
	// opts is used to rebuild loaded games
	opts game.Options
	// slot is where save goes without an argument; the game ID if empty
	slot string
	log  zerolog.Logger

	prompt string
}

// DecidePurchase asks whoever is at the keyboard. It runs in the middle of a
// turn.
func (r *repl) DecidePurchase(o game.Offer) bool {
	if !o.Affordable() {
		fmt.Fprintf(r.out, "%s can't afford %s ($%d)\n", o.Player, o.Space.Name, o.Space.Price)
		return false
	}

	r.in.SetPrompt(fmt.Sprintf("%s, buy %s for $%d? you have $%d [y/n] ", o.Player, o.Space.Name, o.Space.Price, o.Money))
	defer r.in.SetPrompt(r.prompt)

	for {
		line, err := r.in.Readline()
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no":
			return false
		default:
			fmt.Fprintf(r.out, "answer y or n\n")
		}
	}
}

func (r *repl) updatePrompt() {
	prompt := ""
	r.table.View(func(g *game.Game) {
		switch {
		case g.Over():
			prompt = "game over"
		case g.Current() != nil:
			prompt = g.Current().Name
		}
	})
	r.prompt = "\033[31m" + prompt + "»\033[0m "
	r.in.SetPrompt(r.prompt)
}

func (r *repl) run(ctx context.Context) error {
	r.updatePrompt()

	for {
		line, err := r.in.Readline()
		if err == rl.ErrInterrupt {
			if len(line) == 0 {
				return nil
			}
			continue
		} else if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}

		cmd, err := parseCommand(line)
		if err != nil {
			fmt.Fprintf(r.out, "%v\n", err)
			continue
		}

		switch cmd.name {
		case "":
			continue
		case "quit":
			return nil
		}

		if err := r.exec(ctx, cmd); err != nil {
			fmt.Fprintf(r.out, "error: %v\n", err)
		}
		r.updatePrompt()
	}
}

func (r *repl) exec(ctx context.Context, cmd command) error {
	switch cmd.name {
	case "roll":
		news, err := r.table.Do(func(g *game.Game) error {
			return g.PlayTurn(g.Roll())
		})
		printNews(r.out, news)
		return err
	case "info":
		var err error
		r.table.View(func(g *game.Game) {
			p := g.Current()
			if len(cmd.args) > 0 {
				var ok bool
				if p, ok = g.Player(cmd.args[0]); !ok {
					err = fmt.Errorf("%w: no player %s", game.ErrBadRequest, cmd.args[0])
					return
				}
			}
			if p != nil {
				printPlayer(r.out, g, p)
			}
			if len(cmd.args) == 0 {
				printPlayers(r.out, g)
			}
		})
		return err
	case "board":
		r.table.View(func(g *game.Game) {
			printBoard(r.out, g)
		})
		return nil
	case "save":
		var (
			slot string
			err  error
		)
		r.table.View(func(g *game.Game) {
			slot = r.slot
			if len(cmd.args) > 0 {
				slot = cmd.args[0]
			}
			if slot == "" {
				slot = g.ID()
			}
			err = save.Save(ctx, r.store, slot, g)
		})
		if err != nil {
			return err
		}
		r.log.Info().Str("slot", slot).Msg("saved")
		fmt.Fprintf(r.out, "saved as %s\n", slot)
		return nil
	case "load":
		return r.load(ctx, cmd.args[0])
	case "saves":
		slots, err := r.store.List(ctx)
		if err != nil {
			return err
		}
		if len(slots) == 0 {
			fmt.Fprintf(r.out, "no saves\n")
		}
		for _, s := range slots {
			fmt.Fprintf(r.out, "%s\n", s)
		}
		return nil
	case "draw":
		var err error
		r.table.View(func(g *game.Game) {
			err = drawBoard(g, cmd.args[0])
		})
		if err != nil {
			return err
		}
		fmt.Fprintf(r.out, "drew %s\n", cmd.args[0])
		return nil
	case "help":
		printHelp(r.out)
		return nil
	}
	return errNotRecognized
}

// load swaps the loaded game in, and lets any autonomous players who are up
// take their turns.
func (r *repl) load(ctx context.Context, slot string) error {
	g, err := save.Load(ctx, r.store, slot, r.opts)
	if err != nil {
		return err
	}
	r.table.Replace(g)
	r.log.Info().Str("slot", slot).Str("game", g.ID()).Msg("loaded")
	fmt.Fprintf(r.out, "loaded %s\n", slot)

	news, err := r.table.Do(func(g *game.Game) error {
		if g.Over() {
			return nil
		}
		return g.Autoplay()
	})
	printNews(r.out, news)
	return err
}
