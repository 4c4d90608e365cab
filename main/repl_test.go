package main

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gomonopoly/game"
	"github.com/undeconstructed/gomonopoly/save"
	"github.com/undeconstructed/gomonopoly/server"
)

// scripted plays back lines as if typed.
type scripted struct {
	lines   []string
	prompts []string
}

func (s *scripted) Readline() (string, error) {
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scripted) SetPrompt(p string) {
	s.prompts = append(s.prompts, p)
}

func newTestRepl(t *testing.T, lines ...string) (*repl, *bytes.Buffer) {
	t.Helper()

	out := &bytes.Buffer{}
	r := &repl{
		in:    &scripted{lines: lines},
		out:   out,
		store: save.NewFileStore(afero.NewMemMapFs(), "/saves"),
		log:   zerolog.Nop(),
	}
	r.opts = game.Options{
		Dice:    game.NewLoadedDice(game.Roll{A: 1, B: 2}),
		Decider: r,
	}

	b, err := game.NewBoard("classic")
	require.NoError(t, err)
	opts := r.opts
	opts.ID = "repl-test"
	g := game.NewGame(b, opts)
	require.NoError(t, g.AddPlayer("alice", false))
	require.NoError(t, g.AddPlayer("bot", true))
	require.NoError(t, g.Start())
	g.News()

	r.table = server.NewTable(g, zerolog.Nop())
	return r, out
}

func current(r *repl) *game.Game {
	var g *game.Game
	r.table.View(func(x *game.Game) { g = x })
	return g
}

func TestRepl_playSaveLoad(t *testing.T) {
	r, out := newTestRepl(t,
		"hello",
		"roll", "maybe", "y",
		"save first",
		"roll", "n",
		"saves",
		"load first",
		"quit",
		"roll",
	)

	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "command not recognized\n")
	assert.Contains(t, text, "answer y or n\n")
	assert.Contains(t, text, "alice buys Reading Railroad for $200\n")
	assert.Contains(t, text, "bot pays $25 rent to alice\n")
	assert.Contains(t, text, "alice passes on Connecticut Avenue\n")
	assert.Contains(t, text, "bot buys Connecticut Avenue for $120\n")
	assert.Contains(t, text, "saved as first\n")
	assert.Contains(t, text, "first\n")
	assert.Contains(t, text, "loaded first\n")

	g := current(r)
	alice, ok := g.Player("alice")
	require.True(t, ok)
	assert.Equal(t, 3, alice.Position)
	assert.Equal(t, 1325, alice.Money)
	assert.False(t, g.Board().Spaces()[6].Owned())
	assert.Equal(t, "repl-test", g.ID())

	in := r.in.(*scripted)
	assert.Equal(t, []string{"roll"}, in.lines, "nothing is read after quit")
	assert.Contains(t, in.prompts, "\033[31malice»\033[0m ")
}

func TestRepl_saveDefaultsToGameID(t *testing.T) {
	r, out := newTestRepl(t, "save")
	require.NoError(t, r.run(context.Background()))
	assert.Contains(t, out.String(), "saved as repl-test\n")

	r.slot = "configured"
	require.NoError(t, r.exec(context.Background(), command{name: "save"}))
	assert.Contains(t, out.String(), "saved as configured\n")
}

func TestRepl_errorsKeepGoing(t *testing.T) {
	r, out := newTestRepl(t,
		"load nowhere",
		"info zed",
		"load a b",
		"saves",
		"roll", "n",
	)

	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "error: no such save")
	assert.Contains(t, text, "no player zed")
	assert.Contains(t, text, "usage: load <slot>\n")
	assert.Contains(t, text, "no saves\n")

	alice, _ := current(r).Player("alice")
	assert.Equal(t, 3, alice.Position, "the turn still happened")
}

func TestRepl_display(t *testing.T) {
	r, out := newTestRepl(t, "info", "info bot", "board", "help")
	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "alice")
	assert.Contains(t, text, "bot")
	assert.Contains(t, text, "Boardwalk")
	assert.Contains(t, text, "Go To Jail")
	assert.Contains(t, text, "draw <file.png>")
}

func TestRepl_cannotAfford(t *testing.T) {
	r, out := newTestRepl(t)

	buy := r.DecidePurchase(game.Offer{
		Player: "alice",
		Money:  10,
		Space:  game.Space{Name: "Boardwalk", Kind: game.KindStandard, Price: 400},
	})
	assert.False(t, buy)
	assert.Contains(t, out.String(), "alice can't afford Boardwalk ($400)\n")
}

func TestRepl_gameOver(t *testing.T) {
	r, out := newTestRepl(t, "roll", "roll")

	g := current(r)
	bot, _ := g.Player("bot")
	bot.Money = 1
	alice, _ := g.Player("alice")
	alice.Money = 5000
	require.True(t, alice.Buy(g.Board().Spaces()[3]))

	require.NoError(t, r.run(context.Background()))

	text := out.String()
	assert.Contains(t, text, "*** alice wins the game! ***\n")
	assert.Contains(t, text, "error: game is over\n")
	assert.Contains(t, r.in.(*scripted).prompts, "\033[31mgame over»\033[0m ")
}

func TestDrawBoard(t *testing.T) {
	r, out := newTestRepl(t)
	file := filepath.Join(t.TempDir(), "board.png")

	require.NoError(t, r.exec(context.Background(), command{name: "draw", args: []string{file}}))
	assert.Contains(t, out.String(), "drew "+file)

	f, err := os.Open(file)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 9*cellSize, img.Bounds().Dx())
}

func TestCellAt(t *testing.T) {
	seen := map[[2]int]bool{}
	for pos := 0; pos < 32; pos++ {
		p := cellAt(pos, 32)
		assert.True(t, p.X == 0 || p.Y == 0 || p.X == 8*cellSize || p.Y == 8*cellSize, "position %d is on the edge", pos)
		key := [2]int{p.X, p.Y}
		assert.False(t, seen[key], "position %d has its own cell", pos)
		seen[key] = true
	}
	assert.Equal(t, 8*cellSize, cellAt(0, 32).X)
	assert.Equal(t, 8*cellSize, cellAt(0, 32).Y)
}

func TestRenderBoard_marksPlayers(t *testing.T) {
	r, _ := newTestRepl(t)
	g := current(r)

	img := renderBoard(g)
	centre := cellAt(0, 32).Add(image.Pt(cellSize/2-20, cellSize/2))
	assert.Equal(t, playerColours[0], img.NRGBAAt(centre.X, centre.Y))
}
