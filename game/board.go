package game

import "fmt"

// Board is the fixed ring of spaces. The layout never changes once built,
// only ownership and rent do.
type Board struct {
	variant string
	spaces  []*Space
	byName  map[string]*Space
	jail    int
}

// NewBoard builds one of the stock layouts.
func NewBoard(variant string) (*Board, error) {
	data, ok := stockBoards[variant]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBoard, variant)
	}

	b := &Board{
		variant: variant,
		byName:  map[string]*Space{},
		jail:    -1,
	}
	for i, sd := range data {
		s := &Space{
			Position: i,
			Kind:     sd.Kind,
			Name:     sd.Name,
			Price:    sd.Price,
			Rent:     sd.Rent,
		}
		if s.Kind == KindTransit {
			s.Rent = transitRent(1)
		}
		b.spaces = append(b.spaces, s)
		b.byName[s.Name] = s
		if s.Kind == KindJail {
			b.jail = i
		}
	}

	return b, nil
}

func (b *Board) Variant() string { return b.variant }

func (b *Board) Size() int { return len(b.spaces) }

// Space gets the space at a position, which must be in [0, Size()).
func (b *Board) Space(position int) (*Space, error) {
	if position < 0 || position >= len(b.spaces) {
		return nil, fmt.Errorf("%w: %d", ErrOutOfRange, position)
	}
	return b.spaces[position], nil
}

// at is Space for positions the engine has already wrapped.
func (b *Board) at(position int) *Space {
	s, err := b.Space(position)
	if err != nil {
		panic(err)
	}
	return s
}

// Spaces is the whole ring, in order. Don't append to it.
func (b *Board) Spaces() []*Space {
	return b.spaces
}

func (b *Board) ByName(name string) (*Space, bool) {
	s, ok := b.byName[name]
	return s, ok
}

func (b *Board) JailPosition() int { return b.jail }

// Owned counts how many spaces of a kind belong to someone.
func (b *Board) Owned(owner string, kind Kind) int {
	n := 0
	for _, s := range b.spaces {
		if s.Kind == kind && s.Owner == owner && owner != "" {
			n++
		}
	}
	return n
}

// recomputeTransit resets transit rent for one owner's hubs, and for any
// hubs now without an owner.
func (b *Board) recomputeTransit(owner string) {
	count := b.Owned(owner, KindTransit)
	for _, s := range b.spaces {
		if s.Kind != KindTransit {
			continue
		}
		switch {
		case !s.Owned():
			s.Rent = transitRent(1)
		case s.Owner == owner:
			s.Rent = transitRent(count)
		}
	}
}

// recomputeUtilities sets utility rent from the roll just made.
func (b *Board) recomputeUtilities(sum int) {
	for _, s := range b.spaces {
		if s.Kind != KindUtility {
			continue
		}
		if !s.Owned() {
			s.Rent = 0
			continue
		}
		s.Rent = utilityRent(b.Owned(s.Owner, KindUtility), sum)
	}
}
