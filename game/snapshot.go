package game

import (
	"fmt"
)

// ErrBadSnapshot is for saved state that doesn't hang together.
var ErrBadSnapshot = &GameError{"BADSNAPSHOT", "inconsistent saved game"}

// Snapshot is everything about a game that changes, flattened.
type Snapshot struct {
	ID      string          `json:"id"`
	Board   string          `json:"board"`
	Turn    int             `json:"turn"`
	Winner  string          `json:"winner,omitempty"`
	Spaces  []Space         `json:"spaces"`
	Players []PlayerSummary `json:"players"`
}

// PlayerSummary is a player as saved. Properties are by name.
type PlayerSummary struct {
	Name       string   `json:"name"`
	Money      int      `json:"money"`
	Position   int      `json:"position"`
	Jailed     bool     `json:"jailed"`
	Autonomous bool     `json:"ai"`
	Properties []string `json:"properties"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		ID:     g.id,
		Board:  g.board.Variant(),
		Turn:   g.turn,
		Winner: g.winner,
	}
	for _, s := range g.board.Spaces() {
		snap.Spaces = append(snap.Spaces, *s)
	}
	for _, p := range g.players {
		snap.Players = append(snap.Players, PlayerSummary{
			Name:       p.Name,
			Money:      p.Money,
			Position:   p.Position,
			Jailed:     p.Jailed,
			Autonomous: p.Autonomous,
			Properties: p.PropertyNames(g.board),
		})
	}
	return snap
}

func badSnapshot(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrBadSnapshot, fmt.Sprintf(format, a...))
}

// Restore rebuilds a started game from a snapshot. Owners are linked back up
// from each player's property names, and have to agree with what the spaces
// say. Either the whole thing checks out, or there is no game.
func Restore(snap Snapshot, opts Options) (*Game, error) {
	board, err := NewBoard(snap.Board)
	if err != nil {
		return nil, err
	}

	if len(snap.Spaces) != board.Size() {
		return nil, badSnapshot("%d spaces for a %s board of %d", len(snap.Spaces), snap.Board, board.Size())
	}
	for i, saved := range snap.Spaces {
		s := board.at(i)
		if saved.Position != i || saved.Kind != s.Kind || saved.Name != s.Name || saved.Price != s.Price {
			return nil, badSnapshot("space %d is %s %q, board has %s %q", i, saved.Kind, saved.Name, s.Kind, s.Name)
		}
		if saved.Owner != "" && !s.Purchasable() {
			return nil, badSnapshot("%s cannot be owned", s.Name)
		}
		s.Rent = saved.Rent
	}

	if len(snap.Players) == 0 {
		return nil, badSnapshot("no players")
	}
	if snap.Turn < 0 || snap.Turn >= len(snap.Players) {
		return nil, badSnapshot("turn %d out of range for %d players", snap.Turn, len(snap.Players))
	}

	if opts.ID == "" {
		opts.ID = snap.ID
	}
	g := NewGame(board, opts)

	var names []string
	for _, ps := range snap.Players {
		if ps.Name == "" || stringListContains(names, ps.Name) {
			return nil, badSnapshot("bad player name %q", ps.Name)
		}
		names = append(names, ps.Name)
		if ps.Position < 0 || ps.Position >= board.Size() {
			return nil, badSnapshot("%s at position %d", ps.Name, ps.Position)
		}

		p := &Player{
			Name:       ps.Name,
			Money:      ps.Money,
			Position:   ps.Position,
			Jailed:     ps.Jailed,
			Autonomous: ps.Autonomous,
		}
		if p.Autonomous {
			p.policy = g.policyFor(p.Name)
		}

		for _, name := range ps.Properties {
			s, ok := board.ByName(name)
			if !ok {
				return nil, badSnapshot("%s owns unknown property %q", p.Name, name)
			}
			if !s.Purchasable() || s.Owned() {
				return nil, badSnapshot("%s cannot own %q", p.Name, name)
			}
			s.Owner = p.Name
			p.Properties = append(p.Properties, s.Position)
		}

		g.players = append(g.players, p)
	}

	for i, saved := range snap.Spaces {
		if got := board.at(i).Owner; got != saved.Owner {
			return nil, badSnapshot("%s owner is %q on the board, %q by the players", saved.Name, saved.Owner, got)
		}
	}

	if snap.Winner != "" && (len(g.players) != 1 || g.players[0].Name != snap.Winner) {
		return nil, badSnapshot("winner %q with %d players left", snap.Winner, len(g.players))
	}

	g.started = true
	g.turn = snap.Turn
	g.winner = snap.Winner

	if err := g.Verify(); err != nil {
		return nil, badSnapshot("%v", err)
	}

	g.log.Info().Int("players", len(g.players)).Msg("game restored")
	return g, nil
}
