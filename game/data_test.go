package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVariants(t *testing.T) {
	assert.Equal(t, []string{"classic", "compact"}, Variants())
}

func TestCheckLayout(t *testing.T) {
	good := func() []spaceData {
		return []spaceData{
			{Kind: KindStart, Name: "Go"},
			{Kind: KindStandard, Name: "Lane", Price: 60, Rent: 2},
			{Kind: KindJail, Name: "Jail"},
			{Kind: KindUtility, Name: "Works", Price: 150},
		}
	}
	assert.NoError(t, checkLayout(good()))

	tests := []struct {
		name   string
		break_ func(s []spaceData) []spaceData
	}{
		{"empty", func(s []spaceData) []spaceData { return nil }},
		{"no start first", func(s []spaceData) []spaceData {
			s[0], s[1] = s[1], s[0]
			return s
		}},
		{"no jail", func(s []spaceData) []spaceData {
			s[2].Kind = KindFreeRest
			return s
		}},
		{"two jails", func(s []spaceData) []spaceData {
			return append(s, spaceData{Kind: KindJail, Name: "Cells"})
		}},
		{"three utilities", func(s []spaceData) []spaceData {
			return append(s, spaceData{Kind: KindUtility, Name: "Water"}, spaceData{Kind: KindUtility, Name: "Gas"})
		}},
		{"duplicate name", func(s []spaceData) []spaceData {
			s[3].Name = "Lane"
			return s
		}},
		{"unknown kind", func(s []spaceData) []spaceData {
			s[1].Kind = "hotel"
			return s
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, checkLayout(tt.break_(good())))
		})
	}
}

func TestMustLoadBoards_panics(t *testing.T) {
	assert.Panics(t, func() { mustLoadBoards([]byte(`{`)) })
	assert.Panics(t, func() { mustLoadBoards([]byte(`{"bad": [{"kind": "jail", "name": "Jail"}]}`)) })
}
