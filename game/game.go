package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	DefaultStartingMoney = 1500
	DefaultAutoTurnLimit = 1000
)

// Options is everything a game needs besides its board.
type Options struct {
	// ID names the game; a new UUID if empty
	ID string
	// Dice for turns the engine rolls itself; seeded from crypto/rand if nil
	Dice Roller
	// Decider answers purchase offers for human players; nil declines
	Decider Decider
	// Policy finds the policy for an autonomous player; nil means BuyIfAffordable
	Policy func(name string) Policy
	// StartingMoney for each player added
	StartingMoney int
	// AutoTurnLimit caps how many autonomous turns one call will play
	AutoTurnLimit int
	Log           *zerolog.Logger
}

// Game is the whole state of one game, and the rules for moving it on. It is
// not safe for concurrent use.
type Game struct {
	id       string
	board    *Board
	players  []*Player
	dice     Roller
	last     Roll
	decider  Decider
	policies func(name string) Policy

	startingMoney int
	autoLimit     int

	started bool
	turn    int
	winner  string

	news []Event
	log  zerolog.Logger
}

func NewGame(board *Board, opts Options) *Game {
	g := &Game{
		id:            opts.ID,
		board:         board,
		dice:          opts.Dice,
		decider:       opts.Decider,
		policies:      opts.Policy,
		startingMoney: opts.StartingMoney,
		autoLimit:     opts.AutoTurnLimit,
	}

	if g.id == "" {
		g.id = uuid.NewString()
	}
	if g.dice == nil {
		seed, err := NewSeed()
		if err != nil {
			seed = time.Now().UnixNano()
		}
		g.dice = NewDice(seed)
	}
	if g.startingMoney == 0 {
		g.startingMoney = DefaultStartingMoney
	}
	if g.autoLimit <= 0 {
		g.autoLimit = DefaultAutoTurnLimit
	}
	if opts.Log != nil {
		g.log = opts.Log.With().Str("game", g.id).Logger()
	} else {
		g.log = zerolog.Nop()
	}

	return g
}

// AddPlayer seats a player at the end of the turn order.
func (g *Game) AddPlayer(name string, autonomous bool) error {
	if g.started {
		return ErrAlreadyStarted
	}
	if name == "" {
		return ErrBadRequest
	}
	if _, exists := g.Player(name); exists {
		return ErrPlayerExists
	}

	p := &Player{
		Name:       name,
		Money:      g.startingMoney,
		Autonomous: autonomous,
	}
	if autonomous {
		p.policy = g.policyFor(name)
	}
	g.players = append(g.players, p)

	g.log.Debug().Str("player", name).Bool("ai", autonomous).Msg("player added")
	return nil
}

func (g *Game) policyFor(name string) Policy {
	if g.policies != nil {
		if p := g.policies(name); p != nil {
			return p
		}
	}
	return BuyIfAffordable{}
}

// Start starts the game. Turn order is the order players were added in.
func (g *Game) Start() error {
	if g.started {
		return ErrAlreadyStarted
	}
	if len(g.players) < 2 {
		return ErrNotEnoughPlayers
	}

	g.started = true
	g.turn = 0
	g.news = append(g.news, Event{Kind: EventStart, What: "the game starts"})
	g.log.Info().Int("players", len(g.players)).Str("board", g.board.Variant()).Msg("game started")

	return nil
}

func (g *Game) ID() string { return g.id }

func (g *Game) Board() *Board { return g.board }

func (g *Game) Started() bool { return g.started }

func (g *Game) Over() bool { return g.winner != "" }

// Winner is empty until the game is over.
func (g *Game) Winner() string { return g.winner }

// TurnIndex is the current player's index into Players().
func (g *Game) TurnIndex() int { return g.turn }

func (g *Game) LastRoll() Roll { return g.last }

// Players is the players still in, in turn order.
func (g *Game) Players() []*Player {
	out := make([]*Player, len(g.players))
	copy(out, g.players)
	return out
}

func (g *Game) Player(name string) (*Player, bool) {
	for _, p := range g.players {
		if p.Name == name {
			return p, true
		}
	}
	return nil, false
}

// Current is whose turn it is, or nil if nobody is playing.
func (g *Game) Current() *Player {
	if len(g.players) == 0 {
		return nil
	}
	return g.players[g.turn]
}

// CurrentSpace is where the current player stands.
func (g *Game) CurrentSpace() *Space {
	p := g.Current()
	if p == nil {
		return nil
	}
	return g.board.at(p.Position)
}

// PropertyOwner is who owns the space the current player stands on.
func (g *Game) PropertyOwner() (*Player, bool) {
	s := g.CurrentSpace()
	if s == nil || !s.Owned() {
		return nil, false
	}
	return g.Player(s.Owner)
}

// Rent is the rent on the space the current player stands on.
func (g *Game) Rent() int {
	s := g.CurrentSpace()
	if s == nil {
		return 0
	}
	return s.Rent
}

// TotalMoney adds up everyone's funds.
func (g *Game) TotalMoney() int {
	total := 0
	for _, p := range g.players {
		total += p.Money
	}
	return total
}
