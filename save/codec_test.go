package save

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/undeconstructed/gomonopoly/game"
)

func testGame(t *testing.T) *game.Game {
	t.Helper()

	b, err := game.NewBoard("classic")
	require.NoError(t, err)
	g := game.NewGame(b, game.Options{
		ID:      "saved-game",
		Dice:    game.NewLoadedDice(game.Roll{A: 2, B: 3}),
		Decider: game.DeciderFunc(func(game.Offer) bool { return true }),
	})
	require.NoError(t, g.AddPlayer("alice", false))
	require.NoError(t, g.AddPlayer("bot", true))
	require.NoError(t, g.AddPlayer("carol", false))
	require.NoError(t, g.Start())

	// alice buys Reading Railroad, bot buys Vermont Avenue, carol
	// buys Electric Company
	require.NoError(t, g.PlayTurn(game.Roll{A: 1, B: 2}))
	require.NoError(t, g.PlayTurn(game.Roll{A: 4, B: 5}))
	return g
}

func TestEncode_documents(t *testing.T) {
	docs, err := Encode(testGame(t).Snapshot())
	require.NoError(t, err)

	board := string(docs.Board)
	assert.True(t, strings.HasPrefix(board, "<?xml"))
	assert.Contains(t, board, `<board variant="classic">`)
	assert.Contains(t, board, `<space position="3" kind="transit">`)
	assert.Contains(t, board, `<owner>alice</owner>`)

	players := string(docs.Players)
	assert.Contains(t, players, `<player ai="true">`)
	assert.Contains(t, players, `<property>Reading Railroad</property>`)

	meta := string(docs.Meta)
	assert.Contains(t, meta, `<id>saved-game</id>`)
	assert.Contains(t, meta, `<turn>0</turn>`)
	assert.Contains(t, meta, `<checksum>`+checksum(docs.Board, docs.Players)+`</checksum>`)
}

func TestDecode_roundTrip(t *testing.T) {
	g := testGame(t)
	snap := g.Snapshot()

	docs, err := Encode(snap)
	require.NoError(t, err)
	got, err := Decode(docs)
	require.NoError(t, err)
	assert.Equal(t, snap, got)

	g2, err := game.Restore(got, game.Options{})
	require.NoError(t, err)
	assert.Equal(t, snap, g2.Snapshot())
}

func TestDecode_corrupt(t *testing.T) {
	good, err := Encode(testGame(t).Snapshot())
	require.NoError(t, err)

	tests := []struct {
		name   string
		break_ func(d *Documents)
	}{
		{"board edited", func(d *Documents) {
			d.Board = bytes.Replace(d.Board, []byte("<price>60</price>"), []byte("<price>6</price>"), 1)
		}},
		{"players edited", func(d *Documents) {
			d.Players = bytes.Replace(d.Players, []byte("alice"), []byte("alicia"), 1)
		}},
		{"players from another save", func(d *Documents) {
			d.Players = []byte(`<players></players>`)
		}},
		{"meta garbage", func(d *Documents) {
			d.Meta = []byte("not xml at all <")
		}},
		{"meta missing", func(d *Documents) {
			d.Meta = nil
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Documents{
				Board:   append([]byte(nil), good.Board...),
				Players: append([]byte(nil), good.Players...),
				Meta:    append([]byte(nil), good.Meta...),
			}
			tt.break_(&d)
			_, err := Decode(d)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestDecode_unknownKind(t *testing.T) {
	snap := testGame(t).Snapshot()
	snap.Spaces[0].Kind = "chance"

	docs, err := Encode(snap)
	require.NoError(t, err)
	_, err = Decode(docs)
	assert.ErrorIs(t, err, ErrCorrupt)
}
