package server

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/undeconstructed/gomonopoly/comms"
	"github.com/undeconstructed/gomonopoly/game"
)

// GameInfo is the summary served at /api/game.
type GameInfo struct {
	ID       string   `json:"id"`
	Board    string   `json:"board"`
	Started  bool     `json:"started"`
	Over     bool     `json:"over"`
	Winner   string   `json:"winner,omitempty"`
	Turn     int      `json:"turn"`
	Current  string   `json:"current,omitempty"`
	LastRoll [2]int   `json:"last_roll"`
	Players  []string `json:"players"`
}

// RunWebGateway serves the web view until ctx is done.
func RunWebGateway(ctx context.Context, table *Table, addr string, log zerolog.Logger) error {
	log = log.With().Str("gw", "web").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	log.Info().Msgf("web listening on http://%v", ln.Addr())

	s := &http.Server{
		Handler:     NewRouter(table, log),
		ReadTimeout: time.Second * 10,
	}

	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.Shutdown(sctx)
	}()

	if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// NewRouter builds the gin engine for the web view.
func NewRouter(table *Table, log zerolog.Logger) *gin.Engine {
	rh := restHandler{table: table}
	ch := commsHandler{table: table, log: log}

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(log))

	a := r.Group("/api")
	a.GET("/game", rh.getGame)
	a.GET("/board", rh.getBoard)
	a.GET("/board/:pos", rh.getSpace)
	a.GET("/players", rh.getPlayers)
	a.GET("/players/:name", rh.getPlayer)
	r.GET("/ws", ch.serveWS)

	return r
}

func requestLogger(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Debug().
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	}
}

type restHandler struct {
	table *Table
}

func (rh *restHandler) getGame(c *gin.Context) {
	var info GameInfo
	rh.table.View(func(g *game.Game) {
		last := g.LastRoll()
		info = GameInfo{
			ID:       g.ID(),
			Board:    g.Board().Variant(),
			Started:  g.Started(),
			Over:     g.Over(),
			Winner:   g.Winner(),
			Turn:     g.TurnIndex(),
			LastRoll: [2]int{last.A, last.B},
		}
		if p := g.Current(); p != nil {
			info.Current = p.Name
		}
		for _, p := range g.Players() {
			info.Players = append(info.Players, p.Name)
		}
	})
	c.JSON(http.StatusOK, info)
}

func (rh *restHandler) getBoard(c *gin.Context) {
	var spaces []game.Space
	rh.table.View(func(g *game.Game) {
		spaces = g.Snapshot().Spaces
	})
	c.JSON(http.StatusOK, spaces)
}

func (rh *restHandler) getSpace(c *gin.Context) {
	pos, err := strconv.Atoi(c.Param("pos"))
	if err != nil {
		c.JSON(http.StatusBadRequest, comms.WrapError(game.ErrBadRequest))
		return
	}

	var space game.Space
	rh.table.View(func(g *game.Game) {
		var s *game.Space
		if s, err = g.Board().Space(pos); err == nil {
			space = *s
		}
	})
	if err != nil {
		c.JSON(http.StatusNotFound, comms.WrapError(err))
		return
	}
	c.JSON(http.StatusOK, space)
}

func (rh *restHandler) getPlayers(c *gin.Context) {
	var players []game.PlayerSummary
	rh.table.View(func(g *game.Game) {
		players = g.Snapshot().Players
	})
	c.JSON(http.StatusOK, players)
}

func (rh *restHandler) getPlayer(c *gin.Context) {
	name := c.Param("name")

	var (
		found  game.PlayerSummary
		exists bool
	)
	rh.table.View(func(g *game.Game) {
		for _, p := range g.Snapshot().Players {
			if p.Name == name {
				found, exists = p, true
			}
		}
	})
	if !exists {
		c.JSON(http.StatusNotFound, nil)
		return
	}
	c.JSON(http.StatusOK, found)
}

type commsHandler struct {
	table *Table
	log   zerolog.Logger
}

// serveWS streams updates to a watcher. Nothing the watcher sends is
// acted on.
func (ch *commsHandler) serveWS(c *gin.Context) {
	log := ch.log.With().Str("client", c.Request.RemoteAddr).Logger()
	log.Info().Msg("connecting")

	socket, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		Subprotocols: []string{"comms"},
	})
	if err != nil {
		log.Info().Err(err).Msg("websocket accept error")
		return
	}
	defer socket.Close(websocket.StatusInternalError, "the sky is falling")

	if socket.Subprotocol() != "comms" {
		socket.Close(websocket.StatusPolicyViolation, "client must speak the comms subprotocol")
		return
	}

	ctx := socket.CloseRead(c.Request.Context())

	downCh, unsubscribe := ch.table.Subscribe()
	defer unsubscribe()

	var (
		hello comms.Message
		state comms.Message
	)
	ch.table.View(func(g *game.Game) {
		hello, _ = comms.Encode("connected", comms.ConnectResponse{GameID: g.ID()})
		state, _ = comms.Encode("state", ch.table.update(nil))
	})
	for _, msg := range []comms.Message{hello, state} {
		if err := sendDownWs(ctx, socket, msg); err != nil {
			log.Info().Err(err).Msg("send error")
			return
		}
	}

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("watcher gone")
			socket.Close(websocket.StatusNormalClosure, "")
			return
		case msg, ok := <-downCh:
			if !ok {
				return
			}
			if err := sendDownWs(ctx, socket, msg); err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		}
	}
}

func sendDownWs(ctx context.Context, ws *websocket.Conn, msg comms.Message) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	w, err := ws.Writer(ctx, websocket.MessageText)
	if err != nil {
		return err
	}
	defer w.Close()

	// text frames carry the whole message as JSON
	tmsg, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	if _, err = w.Write(tmsg); err != nil {
		return err
	}

	return w.Close()
}
