package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	rl "github.com/chzyer/readline"
	"golang.org/x/sync/errgroup"

	"github.com/undeconstructed/gomonopoly/config"
	"github.com/undeconstructed/gomonopoly/game"
	"github.com/undeconstructed/gomonopoly/save"
	"github.com/undeconstructed/gomonopoly/server"
)

func main() {
	configPath := flag.String("config", "", "YAML config file")
	loadSlot := flag.String("load", "", "start from a saved game")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := initLogger(cfg.Logging, os.Stderr)

	store, closeStore, err := openStore(cfg.Save)
	if err != nil {
		fatal(log, err, "cannot open save store")
	}
	defer closeStore()

	l, err := rl.NewEx(&rl.Config{
		Prompt:            "\033[31m»\033[0m ",
		HistoryFile:       "hist.txt",
		AutoComplete:      newCompleter(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
		HistorySearchFold: true,
	})
	if err != nil {
		fatal(log, err, "cannot start terminal")
	}
	defer l.Close()

	r := &repl{
		in:    l,
		out:   l.Stdout(),
		store: store,
		slot:  cfg.Save.Slot,
		log:   log,
	}

	opts, err := gameOptions(cfg, r, log)
	if err != nil {
		fatal(log, err, "cannot set up players")
	}
	r.opts = opts

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	var g *game.Game
	if *loadSlot != "" {
		g, err = save.Load(ctx, store, *loadSlot, opts)
	} else {
		g, err = newGame(cfg, opts)
	}
	if err != nil {
		fatal(log, err, "cannot start game")
	}

	r.table = server.NewTable(g, log)

	// the first players might not need anyone
	news, err := r.table.Do(func(g *game.Game) error {
		if g.Over() {
			return nil
		}
		return g.Autoplay()
	})
	printNews(r.out, news)
	if err != nil {
		fatal(log, err, "cannot start game")
	}

	eg, ctx := errgroup.WithContext(ctx)
	ctx, cancel := context.WithCancel(ctx)

	eg.Go(func() error {
		defer cancel()
		return r.run(ctx)
	})
	eg.Go(func() error {
		<-ctx.Done()
		return l.Close()
	})
	if cfg.Web.Enabled {
		eg.Go(func() error {
			return server.RunWebGateway(ctx, r.table, cfg.Web.Address, log)
		})
	}
	if cfg.Web.TCPAddress != "" {
		eg.Go(func() error {
			return server.RunTCPGateway(ctx, r.table, cfg.Web.TCPAddress, log)
		})
	}

	if err := eg.Wait(); err != nil {
		log.Error().Err(err).Msg("stopped")
	}
}
