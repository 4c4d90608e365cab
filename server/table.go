// Package server hosts one game for more than one front end: the local
// REPL plays it, and web watchers see it.
package server

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/undeconstructed/gomonopoly/comms"
	"github.com/undeconstructed/gomonopoly/game"
)

// Update is broadcast to watchers whenever something happened.
type Update struct {
	News    []game.Event         `json:"news"`
	Current string               `json:"current,omitempty"`
	Winner  string               `json:"winner,omitempty"`
	Players []game.PlayerSummary `json:"players"`
}

// Table is where the game is. Every use of the game goes through it, one at a
// time.
type Table struct {
	mu   sync.Mutex
	game *game.Game

	subs    map[int]chan comms.Message
	nextSub int

	log zerolog.Logger
}

func NewTable(g *game.Game, log zerolog.Logger) *Table {
	return &Table{
		game: g,
		subs: map[int]chan comms.Message{},
		log:  log.With().Str("game", g.ID()).Logger(),
	}
}

// Do runs f with the game, then sends out whatever it caused. The news is
// also returned, for the caller to show.
func (t *Table) Do(f func(g *game.Game) error) ([]game.Event, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	err := f(t.game)
	news := t.game.News()
	if len(news) > 0 {
		t.broadcast("update", t.update(news))
	}
	return news, err
}

// View runs f with the game, for reading only.
func (t *Table) View(f func(g *game.Game)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	f(t.game)
}

// Replace swaps in another game, as after a load. Watchers are told.
func (t *Table) Replace(g *game.Game) {
	t.mu.Lock()
	defer t.mu.Unlock()

	g.News()
	t.game = g
	t.log = t.log.With().Str("game", g.ID()).Logger()
	t.log.Info().Msg("game replaced")
	t.broadcast("loaded", t.update(nil))
}

// Subscribe gets a channel of everything broadcast from now on. Call the
// returned func to stop.
func (t *Table) Subscribe() (<-chan comms.Message, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	id := t.nextSub
	t.nextSub++
	ch := make(chan comms.Message, 100)
	t.subs[id] = ch

	return ch, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if _, ok := t.subs[id]; ok {
			delete(t.subs, id)
			close(ch)
		}
	}
}

func (t *Table) update(news []game.Event) Update {
	snap := t.game.Snapshot()
	u := Update{
		News:    news,
		Winner:  snap.Winner,
		Players: snap.Players,
	}
	if p := t.game.Current(); p != nil {
		u.Current = p.Name
	}
	return u
}

func (t *Table) broadcast(head string, data interface{}) {
	msg, err := comms.Encode(head, data)
	if err != nil {
		t.log.Error().Err(err).Msg("failed to encode update")
		panic("encode update error")
	}

	for id, ch := range t.subs {
		select {
		case ch <- msg:
		default:
			// client lagging
			t.log.Info().Int("watcher", id).Msg("watcher lagging")
		}
	}
}
