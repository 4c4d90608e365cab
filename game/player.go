package game

import "fmt"

type Player struct {
	Name       string `json:"name"`
	Money      int    `json:"money"`
	Position   int    `json:"position"`
	Jailed     bool   `json:"jailed"`
	Autonomous bool   `json:"ai"`
	// positions of owned spaces, in the order they were bought
	Properties []int `json:"properties"`
	// every position landed on, for display
	History []int `json:"history"`

	policy Policy
}

// AddPosition moves delta spaces around a ring of size spaces. Negative and
// multi-lap deltas wrap too.
func (p *Player) AddPosition(delta, size int) {
	p.Position = ((p.Position+delta)%size + size) % size
	p.History = append(p.History, p.Position)
}

func (p *Player) AddMoney(n int) {
	p.Money += n
}

func (p *Player) CanAfford(s *Space) bool {
	return p.Money >= s.Price
}

// Buy takes an unowned space if the money is there. Nothing changes if not.
func (p *Player) Buy(s *Space) bool {
	if !s.Purchasable() || s.Owned() || !p.CanAfford(s) {
		return false
	}
	p.Money -= s.Price
	s.Owner = p.Name
	p.Properties = append(p.Properties, s.Position)
	return true
}

// Rent pays out the space's current rent. This can take money below zero.
func (p *Player) Rent(s *Space) {
	p.Money -= s.Rent
}

// RemoveProperties gives everything back to the bank.
func (p *Player) RemoveProperties(b *Board) {
	for _, pos := range p.Properties {
		s := b.at(pos)
		if s.Owner == p.Name {
			s.Owner = ""
		}
	}
	p.Properties = nil
}

func (p *Player) Owns(s *Space) bool {
	return intListContains(p.Properties, s.Position)
}

// PropertyNames lists owned spaces by name, in buying order.
func (p *Player) PropertyNames(b *Board) []string {
	var out []string
	for _, pos := range p.Properties {
		out = append(out, b.at(pos).Name)
	}
	return out
}

func (p *Player) String() string {
	where := "free"
	if p.Jailed {
		where = "in jail"
	}
	return fmt.Sprintf("%s: $%d, at %d, %s", p.Name, p.Money, p.Position, where)
}
