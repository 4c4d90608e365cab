package save

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/undeconstructed/gomonopoly/game"
)

// Store keeps document sets by slot name. Put replaces a slot as a whole.
type Store interface {
	Put(ctx context.Context, slot string, docs Documents) error
	Get(ctx context.Context, slot string) (Documents, error)
	List(ctx context.Context) ([]string, error)
}

var slotPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ErrBadSlot is for slot names that can't be used as file or key names.
var ErrBadSlot = &game.GameError{Code: "BADSLOT", Msg: "bad save slot name"}

func CheckSlot(slot string) error {
	if !slotPattern.MatchString(slot) {
		return fmt.Errorf("%w: %q", ErrBadSlot, slot)
	}
	return nil
}

// Save writes the game's current state into a slot.
func Save(ctx context.Context, store Store, slot string, g *game.Game) error {
	if err := CheckSlot(slot); err != nil {
		return err
	}
	docs, err := Encode(g.Snapshot())
	if err != nil {
		return err
	}
	if err := store.Put(ctx, slot, docs); err != nil {
		return fmt.Errorf("save %s: %w", slot, err)
	}
	return nil
}

// Load reads a slot and rebuilds the game in it. opts supplies what isn't
// saved, like dice and deciders. Nothing is returned unless it all checks
// out.
func Load(ctx context.Context, store Store, slot string, opts game.Options) (*game.Game, error) {
	if err := CheckSlot(slot); err != nil {
		return nil, err
	}
	docs, err := store.Get(ctx, slot)
	if err != nil {
		return nil, err
	}
	snap, err := Decode(docs)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", slot, err)
	}
	g, err := game.Restore(snap, opts)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", slot, err)
	}
	return g, nil
}

func sorted(slots []string) []string {
	sort.Strings(slots)
	return slots
}
