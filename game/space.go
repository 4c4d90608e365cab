package game

import "fmt"

// Kind is what sort of space something is. The set is closed.
type Kind string

const (
	KindStandard Kind = "standard"
	KindTransit  Kind = "transit"
	KindUtility  Kind = "utility"
	KindStart    Kind = "start"
	KindFreeRest Kind = "freerest"
	KindGoToJail Kind = "gotojail"
	KindJail     Kind = "jail"
)

// TransitRents is rent for a transit hub by how many hubs the owner has.
var TransitRents = []int{25, 50, 100, 200}

const (
	utilityMultiplier     = 4
	utilityPairMultiplier = 10
)

func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindStandard, KindTransit, KindUtility, KindStart, KindFreeRest, KindGoToJail, KindJail:
		return k, nil
	}
	return "", fmt.Errorf("bad space kind %q", s)
}

// Purchasable is whether a player can ever own this kind.
func (k Kind) Purchasable() bool {
	switch k {
	case KindStandard, KindTransit, KindUtility:
		return true
	}
	return false
}

// Space is one position on the board. Owner is the owning player's name, or
// empty.
type Space struct {
	Position int    `json:"position"`
	Kind     Kind   `json:"kind"`
	Name     string `json:"name"`
	Price    int    `json:"price"`
	Rent     int    `json:"rent"`
	Owner    string `json:"owner,omitempty"`
}

func (s *Space) Purchasable() bool {
	return s.Kind.Purchasable()
}

func (s *Space) Owned() bool {
	return s.Owner != ""
}

func (s *Space) String() string {
	switch {
	case !s.Purchasable():
		return s.Name
	case s.Owned():
		return fmt.Sprintf("%s (owned by %s, rent $%d)", s.Name, s.Owner, s.Rent)
	default:
		return fmt.Sprintf("%s (for sale, $%d)", s.Name, s.Price)
	}
}

func transitRent(count int) int {
	if count < 1 {
		count = 1
	}
	if count > len(TransitRents) {
		count = len(TransitRents)
	}
	return TransitRents[count-1]
}

func utilityRent(count, sum int) int {
	if count >= 2 {
		return sum * utilityPairMultiplier
	}
	return sum * utilityMultiplier
}
