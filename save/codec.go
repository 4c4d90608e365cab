// Package save writes games out as three XML documents, and reads them back.
// A save is only ever used whole: the metadata carries a checksum of the
// other two, and a set that doesn't add up is refused.
package save

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"

	"github.com/undeconstructed/gomonopoly/game"
)

var (
	// ErrNotFound means there is no save in that slot
	ErrNotFound = &game.GameError{Code: "NOSAVE", Msg: "no such save"}
	// ErrCorrupt means the documents can't be read, or don't match each other
	ErrCorrupt = &game.GameError{Code: "CORRUPTSAVE", Msg: "corrupt save"}
)

// Documents is one save set.
type Documents struct {
	Board   []byte
	Players []byte
	Meta    []byte
}

const (
	BoardFile   = "board.xml"
	PlayersFile = "players.xml"
	MetaFile    = "game.xml"
)

type boardDoc struct {
	XMLName xml.Name   `xml:"board"`
	Variant string     `xml:"variant,attr"`
	Spaces  []spaceDoc `xml:"space"`
}

type spaceDoc struct {
	Position int    `xml:"position,attr"`
	Kind     string `xml:"kind,attr"`
	Name     string `xml:"name"`
	Price    int    `xml:"price"`
	Rent     int    `xml:"rent"`
	Owner    string `xml:"owner,omitempty"`
}

type playersDoc struct {
	XMLName xml.Name    `xml:"players"`
	Players []playerDoc `xml:"player"`
}

type playerDoc struct {
	AI         bool     `xml:"ai,attr"`
	Name       string   `xml:"name"`
	Money      int      `xml:"money"`
	Position   int      `xml:"position"`
	Jailed     bool     `xml:"jailed"`
	Properties []string `xml:"properties>property"`
}

type metaDoc struct {
	XMLName  xml.Name `xml:"game"`
	ID       string   `xml:"id"`
	Turn     int      `xml:"turn"`
	Board    string   `xml:"board"`
	Winner   string   `xml:"winner,omitempty"`
	Checksum string   `xml:"checksum"`
}

func checksum(board, players []byte) string {
	h := sha256.New()
	h.Write(board)
	h.Write(players)
	return hex.EncodeToString(h.Sum(nil))
}

func marshal(v interface{}) ([]byte, error) {
	out, err := xml.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), out...), nil
}

// Encode turns a snapshot into a document set.
func Encode(snap game.Snapshot) (Documents, error) {
	bd := boardDoc{Variant: snap.Board}
	for _, s := range snap.Spaces {
		bd.Spaces = append(bd.Spaces, spaceDoc{
			Position: s.Position,
			Kind:     string(s.Kind),
			Name:     s.Name,
			Price:    s.Price,
			Rent:     s.Rent,
			Owner:    s.Owner,
		})
	}

	var pd playersDoc
	for _, p := range snap.Players {
		pd.Players = append(pd.Players, playerDoc{
			AI:         p.Autonomous,
			Name:       p.Name,
			Money:      p.Money,
			Position:   p.Position,
			Jailed:     p.Jailed,
			Properties: p.Properties,
		})
	}

	var docs Documents
	var err error
	if docs.Board, err = marshal(bd); err != nil {
		return Documents{}, fmt.Errorf("encode board: %w", err)
	}
	if docs.Players, err = marshal(pd); err != nil {
		return Documents{}, fmt.Errorf("encode players: %w", err)
	}

	md := metaDoc{
		ID:       snap.ID,
		Turn:     snap.Turn,
		Board:    snap.Board,
		Winner:   snap.Winner,
		Checksum: checksum(docs.Board, docs.Players),
	}
	if docs.Meta, err = marshal(md); err != nil {
		return Documents{}, fmt.Errorf("encode game: %w", err)
	}

	return docs, nil
}

func corrupt(format string, a ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrCorrupt, fmt.Sprintf(format, a...))
}

// Decode reads a document set back into a snapshot. It checks the documents
// agree with each other, but not that they make a valid game; that is
// game.Restore's job.
func Decode(docs Documents) (game.Snapshot, error) {
	var md metaDoc
	if err := xml.Unmarshal(docs.Meta, &md); err != nil {
		return game.Snapshot{}, corrupt("%s: %v", MetaFile, err)
	}
	if sum := checksum(docs.Board, docs.Players); sum != md.Checksum {
		return game.Snapshot{}, corrupt("checksum mismatch")
	}

	var bd boardDoc
	if err := xml.Unmarshal(docs.Board, &bd); err != nil {
		return game.Snapshot{}, corrupt("%s: %v", BoardFile, err)
	}
	if bd.Variant != md.Board {
		return game.Snapshot{}, corrupt("board is %q, game says %q", bd.Variant, md.Board)
	}

	var pd playersDoc
	if err := xml.Unmarshal(docs.Players, &pd); err != nil {
		return game.Snapshot{}, corrupt("%s: %v", PlayersFile, err)
	}

	snap := game.Snapshot{
		ID:     md.ID,
		Board:  md.Board,
		Turn:   md.Turn,
		Winner: md.Winner,
	}
	for _, s := range bd.Spaces {
		kind, err := game.ParseKind(s.Kind)
		if err != nil {
			return game.Snapshot{}, corrupt("space %d: %v", s.Position, err)
		}
		snap.Spaces = append(snap.Spaces, game.Space{
			Position: s.Position,
			Kind:     kind,
			Name:     s.Name,
			Price:    s.Price,
			Rent:     s.Rent,
			Owner:    s.Owner,
		})
	}
	for _, p := range pd.Players {
		snap.Players = append(snap.Players, game.PlayerSummary{
			Name:       p.Name,
			Money:      p.Money,
			Position:   p.Position,
			Jailed:     p.Jailed,
			Autonomous: p.AI,
			Properties: p.Properties,
		})
	}

	return snap, nil
}
