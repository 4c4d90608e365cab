package game

// Offer is an unowned space that the current player has landed on.
type Offer struct {
	Player string `json:"player"`
	Money  int    `json:"money"`
	Owned  int    `json:"owned"`
	Space  Space  `json:"space"`
	Roll   Roll   `json:"roll"`
}

// Affordable is whether buying would succeed.
func (o Offer) Affordable() bool {
	return o.Money >= o.Space.Price
}

// Policy decides purchases for autonomous players. It must not block.
type Policy interface {
	WantsToBuy(o Offer) bool
}

// Decider asks a human about a purchase. The call is synchronous; the turn
// waits for the answer.
type Decider interface {
	DecidePurchase(o Offer) bool
}

type DeciderFunc func(o Offer) bool

func (f DeciderFunc) DecidePurchase(o Offer) bool { return f(o) }

// BuyIfAffordable buys anything it can pay for.
type BuyIfAffordable struct{}

func (BuyIfAffordable) WantsToBuy(o Offer) bool {
	return o.Affordable()
}

// KeepReserve buys only when at least Reserve is left afterwards.
type KeepReserve struct {
	Reserve int
}

func (k KeepReserve) WantsToBuy(o Offer) bool {
	return o.Money-o.Space.Price >= k.Reserve
}
