// Package luapolicy lets an autonomous player's buying decisions come from a
// Lua script.
//
// The script has to define a global function:
//
//	function wants_to_buy(offer)
//	  return offer.money - offer.price >= 200
//	end
//
// offer has the fields player, money, owned, space, kind, price, rent, roll
// and doubles. Anything truthy means buy.
package luapolicy

import (
	"fmt"
	"os"
	"sync"

	"github.com/Shopify/go-lua"
	"github.com/rs/zerolog"

	"github.com/undeconstructed/gomonopoly/game"
)

// Entry is the function every script must define.
const Entry = "wants_to_buy"

// Policy is a game.Policy backed by its own Lua state.
type Policy struct {
	name string
	log  zerolog.Logger

	mu    sync.Mutex
	state *lua.State
}

// New runs source once, so it can define things, and checks that the entry
// function is there.
func New(name, source string, log zerolog.Logger) (*Policy, error) {
	l := lua.NewState()
	lua.OpenLibraries(l)

	if err := lua.DoString(l, source); err != nil {
		return nil, fmt.Errorf("load %s: %w", name, err)
	}

	l.Global(Entry)
	ok := l.IsFunction(-1)
	l.Pop(1)
	if !ok {
		return nil, fmt.Errorf("%s does not define %s(offer)", name, Entry)
	}

	return &Policy{
		name:  name,
		log:   log.With().Str("script", name).Logger(),
		state: l,
	}, nil
}

// Load reads a script file and calls New with it.
func Load(path string, log zerolog.Logger) (*Policy, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return New(path, string(src), log)
}

func (p *Policy) Name() string { return p.name }

// WantsToBuy calls the script. A script that fails says no.
func (p *Policy) WantsToBuy(o game.Offer) bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	l := p.state
	top := l.Top()
	defer l.SetTop(top)

	l.Global(Entry)
	pushOffer(l, o)

	if err := l.ProtectedCall(1, 1, 0); err != nil {
		p.log.Warn().Err(err).Str("space", o.Space.Name).Msg("policy script failed, declining")
		return false
	}

	return l.ToBoolean(-1)
}

func pushOffer(l *lua.State, o game.Offer) {
	l.NewTable()

	l.PushString(o.Player)
	l.SetField(-2, "player")
	l.PushInteger(o.Money)
	l.SetField(-2, "money")
	l.PushInteger(o.Owned)
	l.SetField(-2, "owned")
	l.PushString(o.Space.Name)
	l.SetField(-2, "space")
	l.PushString(string(o.Space.Kind))
	l.SetField(-2, "kind")
	l.PushInteger(o.Space.Price)
	l.SetField(-2, "price")
	l.PushInteger(o.Space.Rent)
	l.SetField(-2, "rent")
	l.PushInteger(o.Roll.Sum())
	l.SetField(-2, "roll")
	l.PushBoolean(o.Roll.Doubles())
	l.SetField(-2, "doubles")
}
