package game

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
)

//go:embed boards.json
var boardsJSON []byte

// BoardData is the stock layouts, by variant.
type BoardData map[string][]spaceData

type spaceData struct {
	Kind  Kind   `json:"kind"`
	Name  string `json:"name"`
	Price int    `json:"price"`
	Rent  int    `json:"rent"`
}

var stockBoards = mustLoadBoards(boardsJSON)

func mustLoadBoards(jsdata []byte) BoardData {
	var data BoardData
	err := json.Unmarshal(jsdata, &data)
	if err != nil {
		panic("bad boards.json: " + err.Error())
	}
	for variant, spaces := range data {
		if err := checkLayout(spaces); err != nil {
			panic(fmt.Sprintf("bad board %s: %v", variant, err))
		}
	}
	return data
}

// Variants lists the stock board layouts.
func Variants() []string {
	var out []string
	for v := range stockBoards {
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func checkLayout(spaces []spaceData) error {
	names := map[string]bool{}
	jails, utilities := 0, 0
	for i, s := range spaces {
		if _, err := ParseKind(string(s.Kind)); err != nil {
			return fmt.Errorf("space %d: %w", i, err)
		}
		if names[s.Name] {
			return fmt.Errorf("space %d: duplicate name %q", i, s.Name)
		}
		names[s.Name] = true
		switch s.Kind {
		case KindJail:
			jails++
		case KindUtility:
			utilities++
		}
	}
	if len(spaces) == 0 || spaces[0].Kind != KindStart {
		return fmt.Errorf("must start with a start space")
	}
	if jails != 1 {
		return fmt.Errorf("need exactly one jail, have %d", jails)
	}
	if utilities > 2 {
		return fmt.Errorf("at most two utilities, have %d", utilities)
	}
	return nil
}
