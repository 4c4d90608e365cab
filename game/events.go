package game

import "fmt"

type EventKind string

const (
	EventStart      EventKind = "start"
	EventRoll       EventKind = "roll"
	EventMove       EventKind = "move"
	EventStayed     EventKind = "stayed"
	EventReleased   EventKind = "released"
	EventJailed     EventKind = "jailed"
	EventBuy        EventKind = "buy"
	EventDecline    EventKind = "decline"
	EventRent       EventKind = "rent"
	EventEliminated EventKind = "eliminated"
	EventWin        EventKind = "win"
	EventStatus     EventKind = "status"
)

// Event is something that happened, for whoever is displaying the game.
type Event struct {
	Kind   EventKind `json:"kind"`
	Who    string    `json:"who"`
	What   string    `json:"what"`
	Where  int       `json:"where"`
	Amount int       `json:"amount,omitempty"`
}

func (e Event) String() string {
	if e.Who == "" {
		return e.What
	}
	return e.Who + " " + e.What
}

func (g *Game) addEvent(kind EventKind, p *Player, msg string) {
	g.news = append(g.news, Event{Kind: kind, Who: p.Name, What: msg, Where: p.Position})
}

func (g *Game) addEventf(kind EventKind, p *Player, format string, a ...interface{}) {
	g.addEvent(kind, p, fmt.Sprintf(format, a...))
}

func (g *Game) addMoneyEventf(kind EventKind, p *Player, amount int, format string, a ...interface{}) {
	g.news = append(g.news, Event{Kind: kind, Who: p.Name, What: fmt.Sprintf(format, a...), Where: p.Position, Amount: amount})
}

// News takes everything that happened since the last call.
func (g *Game) News() []Event {
	news := g.news
	g.news = nil
	return news
}
