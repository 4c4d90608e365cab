package server

import (
	"context"
	"io"
	"net"

	"github.com/rs/zerolog"

	"github.com/undeconstructed/gomonopoly/comms"
	"github.com/undeconstructed/gomonopoly/game"
)

// ErrNotWatching is sent back to a connection that opens with anything but
// a watch message.
var ErrNotWatching = &game.GameError{Code: "NOTWATCHING", Msg: "first message must be watch"}

// RunTCPGateway streams the table as JSON lines to anyone who connects and
// says watch. It returns when ctx is done.
func RunTCPGateway(ctx context.Context, table *Table, addr string, log zerolog.Logger) error {
	log = log.With().Str("gw", "tcp").Logger()

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}

	log.Info().Msgf("comms listening on tcp:%v", ln.Addr())

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	err = ServeTCP(ctx, ln, table, log)
	if ctx.Err() != nil {
		return nil
	}
	return err
}

// ServeTCP accepts watchers from ln until it fails.
func ServeTCP(ctx context.Context, ln net.Listener, table *Table, log zerolog.Logger) error {
	m := &tcpManager{table: table, log: log}
	for {
		conn, err := ln.Accept()
		if err != nil {
			return err
		}
		go m.manageTcpConnection(ctx, conn)
	}
}

type tcpManager struct {
	table *Table
	log   zerolog.Logger
}

func (m *tcpManager) manageTcpConnection(ctx context.Context, conn net.Conn) {
	defer conn.Close()

	log := m.log.With().Str("client", conn.RemoteAddr().String()).Logger()
	log.Info().Msg("connecting")

	upStream := comms.NewDecoder(conn)
	dnStream := comms.NewEncoder(conn)

	msg1, err := upStream.Decode()
	if err != nil {
		log.Info().Err(err).Msg("first message error")
		return
	}
	if msg1.Type() != "watch" {
		log.Info().Str("head", string(msg1.Head)).Msg("bad first message head")
		dnStream.Encode("connected", comms.ConnectResponse{Err: comms.WrapError(ErrNotWatching)})
		return
	}

	downCh, unsubscribe := m.table.Subscribe()
	defer unsubscribe()

	var (
		hello comms.Message
		state comms.Message
	)
	m.table.View(func(g *game.Game) {
		hello, _ = comms.Encode("connected", comms.ConnectResponse{GameID: g.ID()})
		state, _ = comms.Encode("state", m.table.update(nil))
	})
	for _, msg := range []comms.Message{hello, state} {
		if err := dnStream.Send(msg); err != nil {
			log.Info().Err(err).Msg("send error")
			return
		}
	}

	// only this goroutine writes; the reader passes requests over
	upCh := make(chan comms.Message)
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			msg, err := upStream.Decode()
			if err != nil {
				if err != io.EOF {
					log.Info().Err(err).Msg("decode error")
				}
				return
			}
			select {
			case upCh <- msg:
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-gone:
			log.Info().Msg("watcher gone")
			return
		case up := <-upCh:
			var err error
			switch up.Type() {
			case "state":
				var msg comms.Message
				m.table.View(func(g *game.Game) {
					msg, _ = comms.Encode("state", m.table.update(nil))
				})
				err = dnStream.Send(msg)
			default:
				log.Info().Msgf("junk from client: %v", up.Head.Fields())
			}
			if err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		case msg, ok := <-downCh:
			if !ok {
				return
			}
			if err := dnStream.Send(msg); err != nil {
				log.Info().Err(err).Msg("send error")
				return
			}
		}
	}
}
