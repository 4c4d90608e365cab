package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDice_faces(t *testing.T) {
	d := NewDice(42)
	for i := 0; i < 1000; i++ {
		r := d.Roll()
		assert.GreaterOrEqual(t, r.A, 1)
		assert.LessOrEqual(t, r.A, 6)
		assert.GreaterOrEqual(t, r.B, 1)
		assert.LessOrEqual(t, r.B, 6)
		assert.Equal(t, r.A == r.B, d.IsDoubles())
	}
}

func TestDice_sameSeedSameRolls(t *testing.T) {
	a, b := NewDice(7), NewDice(7)
	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Roll(), b.Roll())
	}
}

func TestRoll(t *testing.T) {
	assert.Equal(t, 7, Roll{3, 4}.Sum())
	assert.False(t, Roll{3, 4}.Doubles())
	assert.True(t, Roll{5, 5}.Doubles())
	assert.Equal(t, "3+4", Roll{3, 4}.String())
}

func TestLoadedDice(t *testing.T) {
	d := NewLoadedDice(Roll{1, 2}, Roll{6, 6})
	assert.Equal(t, Roll{1, 2}, d.Roll())
	assert.Equal(t, Roll{6, 6}, d.Roll())
	assert.Equal(t, Roll{1, 2}, d.Roll())

	empty := NewLoadedDice()
	assert.Equal(t, 3, empty.Roll().Sum())
}

func TestNewSeed(t *testing.T) {
	_, err := NewSeed()
	require.NoError(t, err)
}
