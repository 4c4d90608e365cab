package game

import (
	"fmt"
)

// Roll throws the game's own dice.
func (g *Game) Roll() Roll {
	g.last = g.dice.Roll()
	return g.last
}

func (g *Game) canPlay() error {
	if !g.started {
		return ErrNotStarted
	}
	if g.Over() {
		return ErrGameOver
	}
	return nil
}

// PlayTurn plays the current player's turn with the given roll, and then
// carries on through any autonomous players that come next.
func (g *Game) PlayTurn(r Roll) error {
	if err := g.canPlay(); err != nil {
		return err
	}

	g.playOne(r)
	g.autoplay()

	return nil
}

// Autoplay plays autonomous players until a human is up or the game ends.
func (g *Game) Autoplay() error {
	if err := g.canPlay(); err != nil {
		return err
	}
	g.autoplay()
	return nil
}

func (g *Game) autoplay() {
	for n := 0; !g.Over() && g.Current().Autonomous; n++ {
		if n >= g.autoLimit {
			g.log.Warn().Int("turns", n).Msg("autonomous turn limit reached")
			return
		}
		g.playOne(g.Roll())
	}
}

// playOne is one whole turn, the same for every kind of player.
func (g *Game) playOne(r Roll) {
	p := g.Current()
	g.last = r

	log := g.log.With().Str("player", p.Name).Str("roll", r.String()).Logger()
	log.Debug().Int("position", p.Position).Int("money", p.Money).Msg("turn")

	g.addEventf(EventRoll, p, "rolls %s", r)

	if g.checkJail(p, r) {
		p.AddPosition(r.Sum(), g.board.Size())
		g.addEventf(EventMove, p, "moves %d to %s", r.Sum(), g.board.at(p.Position).Name)

		g.board.recomputeUtilities(r.Sum())
		g.resolveLanding(p, r)
	}

	removed := g.CheckMoney()
	g.CheckWinner()
	g.advance(removed)

	if err := g.Verify(); err != nil {
		panic(err)
	}

	if next := g.Current(); next != nil && !g.Over() {
		g.news = append(g.news, Event{Kind: EventStatus, Who: next.Name, What: "is up next", Where: next.Position})
	}
}

// checkJail is the incarceration check. It says whether the player moves.
func (g *Game) checkJail(p *Player, r Roll) bool {
	if !p.Jailed {
		return true
	}
	if r.Doubles() {
		p.Jailed = false
		g.addEvent(EventReleased, p, "rolls doubles and leaves jail")
		return true
	}
	g.addEvent(EventStayed, p, "stays in jail")
	return false
}

func (g *Game) resolveLanding(p *Player, r Roll) {
	s := g.board.at(p.Position)

	switch s.Kind {
	case KindStandard, KindTransit, KindUtility:
		if g.CheckProperty() {
			g.offer(p, s, r)
		}
	case KindGoToJail:
		g.sendToJail(p)
	case KindStart, KindFreeRest, KindJail:
		// nothing happens here
	default:
		panic("unhandled space kind " + string(s.Kind))
	}
}

func (g *Game) sendToJail(p *Player) {
	p.Position = g.board.JailPosition()
	p.History = append(p.History, p.Position)
	p.Jailed = true
	g.addEvent(EventJailed, p, "goes to jail")
}

func (g *Game) offer(p *Player, s *Space, r Roll) {
	o := Offer{
		Player: p.Name,
		Money:  p.Money,
		Owned:  len(p.Properties),
		Space:  *s,
		Roll:   r,
	}

	buy := false
	switch {
	case p.Autonomous:
		buy = p.policy.WantsToBuy(o)
	case g.decider != nil:
		buy = g.decider.DecidePurchase(o)
	}

	g.BuyProperty(buy)
}

// CheckProperty deals with where the current player landed. Rent is paid
// if someone else owns it. True means it's for sale.
func (g *Game) CheckProperty() bool {
	s := g.CurrentSpace()
	if s == nil || !s.Purchasable() {
		return false
	}

	if s.Owned() {
		if s.Owner != g.Current().Name {
			g.PayRent()
		}
		return false
	}

	return true
}

// BuyProperty answers an offer. It says whether the space was bought.
func (g *Game) BuyProperty(buy bool) bool {
	p := g.Current()
	s := g.board.at(p.Position)

	if !buy {
		g.addEventf(EventDecline, p, "passes on %s", s.Name)
		return false
	}

	if !p.Buy(s) {
		g.addEventf(EventDecline, p, "cannot buy %s", s.Name)
		return false
	}

	switch s.Kind {
	case KindTransit:
		g.board.recomputeTransit(p.Name)
	case KindUtility:
		g.board.recomputeUtilities(g.last.Sum())
	}

	g.addMoneyEventf(EventBuy, p, s.Price, "buys %s for $%d", s.Name, s.Price)
	return true
}

// PayRent moves rent from the current player to the owner of where they
// stand.
func (g *Game) PayRent() {
	p := g.Current()
	s := g.board.at(p.Position)

	if !s.Owned() || s.Owner == p.Name {
		return
	}
	owner, ok := g.Player(s.Owner)
	if !ok {
		panic(fmt.Sprintf("%s is owned by missing player %s", s.Name, s.Owner))
	}

	rent := s.Rent
	owner.AddMoney(rent)
	p.Rent(s)

	g.addMoneyEventf(EventRent, p, rent, "pays $%d rent to %s", rent, owner.Name)
}

// CheckMoney removes the current player if they are broke.
func (g *Game) CheckMoney() bool {
	p := g.Current()
	if p == nil || p.Money > 0 {
		return false
	}

	g.addMoneyEventf(EventEliminated, p, p.Money, "is bankrupt")
	g.log.Info().Str("player", p.Name).Int("money", p.Money).Msg("player eliminated")

	g.RemovePlayer()
	return true
}

// RemovePlayer takes the current player out of the game, and gives all their
// spaces back.
func (g *Game) RemovePlayer() {
	p := g.Current()
	p.RemoveProperties(g.board)
	g.board.recomputeTransit(p.Name)
	g.board.recomputeUtilities(g.last.Sum())

	out := make([]*Player, 0, len(g.players)-1)
	out = append(out, g.players[:g.turn]...)
	out = append(out, g.players[g.turn+1:]...)
	g.players = out

	if len(g.players) > 0 {
		g.turn %= len(g.players)
	} else {
		g.turn = 0
	}
}

// CheckWinner ends the game if there is only one player left.
func (g *Game) CheckWinner() bool {
	if len(g.players) != 1 {
		return false
	}
	if g.winner == "" {
		p := g.players[0]
		g.winner = p.Name
		g.addEvent(EventWin, p, "wins the game!")
		g.log.Info().Str("player", p.Name).Msg("game won")
	}
	return true
}

func (g *Game) advance(removed bool) {
	if len(g.players) == 0 {
		g.turn = 0
		return
	}
	if !removed {
		g.turn = (g.turn + 1) % len(g.players)
	}
	// a removal already left the index on the next player
}

// Verify checks the things that must always be true. An error here is a bug
// in the engine.
func (g *Game) Verify() error {
	if g.started && (g.turn < 0 || g.turn >= len(g.players)) {
		return fmt.Errorf("turn index %d out of range for %d players", g.turn, len(g.players))
	}

	for _, p := range g.players {
		if p.Position < 0 || p.Position >= g.board.Size() {
			return fmt.Errorf("%s is off the board at %d", p.Name, p.Position)
		}
		for _, pos := range p.Properties {
			s, err := g.board.Space(pos)
			if err != nil {
				return fmt.Errorf("%s owns %d: %w", p.Name, pos, err)
			}
			if s.Owner != p.Name {
				return fmt.Errorf("%s owns %s, but it says %q", p.Name, s.Name, s.Owner)
			}
		}
	}

	for _, s := range g.board.Spaces() {
		if !s.Owned() {
			continue
		}
		if !s.Purchasable() {
			return fmt.Errorf("%s cannot be owned", s.Name)
		}
		p, ok := g.Player(s.Owner)
		if !ok {
			return fmt.Errorf("%s is owned by missing player %s", s.Name, s.Owner)
		}
		if !p.Owns(s) {
			return fmt.Errorf("%s says %s owns it, but they don't", s.Name, p.Name)
		}
	}

	return nil
}
