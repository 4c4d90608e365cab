package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayer_addPosition(t *testing.T) {
	tests := []struct {
		old, delta, want int
	}{
		{0, 5, 5},
		{30, 5, 3},
		{3, -5, 30},
		{0, -64, 0},
		{10, 70, 16},
		{31, 1, 0},
		{0, -1, 31},
	}

	for _, tt := range tests {
		p := &Player{Position: tt.old}
		p.AddPosition(tt.delta, 32)
		assert.Equal(t, tt.want, p.Position, "%d%+d", tt.old, tt.delta)
		assert.Equal(t, []int{tt.want}, p.History)
	}
}

func TestPlayer_addPositionAlwaysOnBoard(t *testing.T) {
	const size = 20
	for old := 0; old < size; old++ {
		for d := -100; d <= 100; d++ {
			p := &Player{Position: old}
			p.AddPosition(d, size)
			assert.GreaterOrEqual(t, p.Position, 0)
			assert.Less(t, p.Position, size)
			assert.Equal(t, (old+d+10*size)%size, p.Position)
		}
	}
}

func TestPlayer_buy(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)
	baltic := b.at(2)

	p := &Player{Name: "alice", Money: 60}
	assert.True(t, p.Buy(baltic))
	assert.Equal(t, 0, p.Money)
	assert.Equal(t, "alice", baltic.Owner)
	assert.Equal(t, []int{2}, p.Properties)
	assert.True(t, p.Owns(baltic))

	rich := &Player{Name: "bob", Money: 5000}
	assert.False(t, rich.Buy(baltic), "already owned")
	assert.False(t, rich.Buy(b.at(0)), "start is not for sale")
	assert.False(t, rich.Buy(b.at(25)), "go to jail is not for sale")
	assert.Equal(t, 5000, rich.Money)
}

func TestPlayer_buyNotAffordable(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)
	boardwalk := b.at(31)

	p := &Player{Name: "alice", Money: 399}
	assert.False(t, p.Buy(boardwalk))
	assert.Equal(t, 399, p.Money)
	assert.False(t, boardwalk.Owned())
	assert.Empty(t, p.Properties)
}

func TestPlayer_rentCanGoNegative(t *testing.T) {
	s := &Space{Kind: KindStandard, Rent: 50}
	p := &Player{Money: 20}
	p.Rent(s)
	assert.Equal(t, -30, p.Money)
}

func TestPlayer_removeProperties(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)

	p := &Player{Name: "alice", Money: 5000}
	for _, pos := range []int{1, 3, 9} {
		require.True(t, p.Buy(b.at(pos)))
	}
	assert.Equal(t, []string{"Mediterranean Avenue", "Reading Railroad", "Electric Company"}, p.PropertyNames(b))

	p.RemoveProperties(b)
	assert.Empty(t, p.Properties)
	for _, s := range b.Spaces() {
		assert.NotEqual(t, "alice", s.Owner, s.Name)
	}
}
