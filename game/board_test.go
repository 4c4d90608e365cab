package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBoard_variants(t *testing.T) {
	assert.Equal(t, []string{"classic", "compact"}, Variants())

	tests := []struct {
		variant string
		size    int
		jail    int
	}{
		{"classic", 32, 7},
		{"compact", 20, 5},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			b, err := NewBoard(tt.variant)
			require.NoError(t, err)
			assert.Equal(t, tt.variant, b.Variant())
			assert.Equal(t, tt.size, b.Size())
			assert.Equal(t, tt.jail, b.JailPosition())

			for i, s := range b.Spaces() {
				assert.Equal(t, i, s.Position)
				assert.False(t, s.Owned())
				got, ok := b.ByName(s.Name)
				assert.True(t, ok)
				assert.Same(t, s, got)
			}
		})
	}
}

func TestNewBoard_unknown(t *testing.T) {
	_, err := NewBoard("moon")
	assert.ErrorIs(t, err, ErrUnknownBoard)
}

func TestBoard_spaceIsStable(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)

	for p := 0; p < b.Size(); p++ {
		first, err := b.Space(p)
		require.NoError(t, err)
		second, err := b.Space(p)
		require.NoError(t, err)
		assert.Same(t, first, second, "position %d", p)
	}
}

func TestBoard_outOfRange(t *testing.T) {
	b, err := NewBoard("compact")
	require.NoError(t, err)

	for _, p := range []int{-1, 20, 21, 400} {
		_, err := b.Space(p)
		assert.ErrorIs(t, err, ErrOutOfRange, "position %d", p)
	}

	assert.Panics(t, func() { b.at(20) })
}

func TestBoard_specialsNeverForSale(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)

	for _, s := range b.Spaces() {
		switch s.Kind {
		case KindStart, KindFreeRest, KindGoToJail, KindJail:
			assert.False(t, s.Purchasable(), s.Name)
			assert.Zero(t, s.Rent, s.Name)
		default:
			assert.True(t, s.Purchasable(), s.Name)
			assert.Positive(t, s.Price, s.Name)
		}
	}
}

func TestBoard_transitRent(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)

	hubs := []int{3, 12, 20, 29}
	for n, pos := range hubs {
		b.at(pos).Owner = "alice"
		b.recomputeTransit("alice")
		for _, owned := range hubs[:n+1] {
			assert.Equal(t, TransitRents[n], b.at(owned).Rent)
		}
	}

	b.at(3).Owner = ""
	b.recomputeTransit("alice")
	assert.Equal(t, 25, b.at(3).Rent)
	assert.Equal(t, 100, b.at(12).Rent)
}

func TestBoard_utilityRent(t *testing.T) {
	b, err := NewBoard("classic")
	require.NoError(t, err)

	b.recomputeUtilities(7)
	assert.Zero(t, b.at(9).Rent)

	b.at(9).Owner = "alice"
	b.recomputeUtilities(5)
	assert.Equal(t, 20, b.at(9).Rent)

	b.at(23).Owner = "alice"
	b.recomputeUtilities(7)
	assert.Equal(t, 70, b.at(9).Rent)
	assert.Equal(t, 70, b.at(23).Rent)

	b.at(23).Owner = "bob"
	b.recomputeUtilities(7)
	assert.Equal(t, 28, b.at(9).Rent)
	assert.Equal(t, 28, b.at(23).Rent)
}

func TestParseKind(t *testing.T) {
	k, err := ParseKind("transit")
	require.NoError(t, err)
	assert.Equal(t, KindTransit, k)

	_, err = ParseKind("chance")
	assert.Error(t, err)
}
