package adapter

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/tetrisai/tetrisai/internal/protocol"
)

// Server listens for AI adapter connections and dispatches decoded
// frames to a single Engine goroutine.
type Server struct {
	cfg    Config
	logger *log.Logger

	engine *Engine
	gameID string

	listener net.Listener
	frameLg  *FrameLogger
}

// NewServer builds a server bound to cfg.Host:cfg.Port. seed, if
// non-nil, pins the first episode's RNG seed; otherwise one is derived
// from the game id.
func NewServer(cfg Config, seed *uint32, logger *log.Logger) (*Server, error) {
	frameLg, err := NewFrameLogger(cfg.LogPath, cfg.LogEveryN, cfg.LogMaxLines)
	if err != nil {
		return nil, err
	}

	gameID := uuid.NewString()
	var actualSeed uint32
	if seed != nil {
		actualSeed = *seed
	} else {
		actualSeed = seedFromGameID(gameID)
	}

	engine := NewEngine(cfg, gameID, actualSeed, logger, frameLg)
	return &Server{cfg: cfg, logger: logger, engine: engine, gameID: gameID, frameLg: frameLg}, nil
}

func seedFromGameID(id string) uint32 {
	var h uint32 = 2166136261
	for i := 0; i < len(id); i++ {
		h ^= uint32(id[i])
		h *= 16777619
	}
	if h == 0 {
		h = 1
	}
	return h
}

// ListenAndServe binds the TCP listener and blocks until a shutdown
// signal is received, tearing everything down on return. It is a no-op
// returning nil immediately when the adapter is disabled.
func (s *Server) ListenAndServe() error {
	if s.cfg.Disabled {
		s.logger.Info("adapter disabled, not listening")
		return nil
	}

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	s.listener = ln
	s.logger.Info("adapter listening", "addr", addr, "game_id", s.gameID)

	go s.engine.Run()
	go s.acceptLoop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	s.logger.Info("shutting down adapter")
	return s.Shutdown()
}

// Shutdown stops accepting connections and halts the engine loop.
func (s *Server) Shutdown() error {
	var err error
	if s.listener != nil {
		err = s.listener.Close()
	}
	s.engine.Stop()
	if s.frameLg != nil {
		s.frameLg.Close()
	}
	return err
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if errors.Is(err, net.ErrClosed) {
				return
			}
			s.logger.Warn("accept error", "error", err)
			continue
		}
		c := newConnection(conn, s.engine, s.frameLg, s.logger)
		s.engine.Submit(decodedMsg{inboundMsg: inboundMsg{kind: msgConnect, conn: c}})
	}
}

// connection wires one net.Conn to the engine: a reader goroutine parses
// newline-delimited JSON frames and forwards them as decodedMsg values,
// and a writer goroutine drains the assigned Client's outbox.
type connection struct {
	conn    net.Conn
	engine  *Engine
	frameLg *FrameLogger
	logger  *log.Logger

	id     int
	client *Client
	ready  chan struct{}
}

func newConnection(conn net.Conn, engine *Engine, frameLg *FrameLogger, logger *log.Logger) *connection {
	c := &connection{conn: conn, engine: engine, frameLg: frameLg, logger: logger, ready: make(chan struct{})}
	go c.readLoop()
	return c
}

// assign is called by the engine goroutine once it has allocated a
// client id and Client for this connection, unblocking the reader and
// starting the writer.
func (c *connection) assign(id int, client *Client) {
	c.id = id
	c.client = client
	close(c.ready)
	go c.writeLoop()
}

func (c *connection) readLoop() {
	<-c.ready
	defer func() {
		c.engine.Submit(decodedMsg{inboundMsg: inboundMsg{kind: msgDisconnect, clientID: c.id}})
		c.conn.Close()
	}()

	lr := protocol.NewLineReader(c.conn)
	handshaken := false
	for {
		line, err := lr.ReadFrame()
		if err != nil {
			return
		}
		c.frameLg.Log("in", c.id, line)

		env, err := protocol.PeekType(line)
		if err != nil {
			continue
		}

		if !handshaken {
			if env.Type != "hello" {
				c.client.Send(protocol.ErrorMsg{Type: "error", Code: protocol.ErrHandshakeRequired, Message: "expected hello"})
				continue
			}
			var hello protocol.HelloMsg
			if err := json.Unmarshal([]byte(line), &hello); err != nil {
				continue
			}
			handshaken = true
			c.engine.Submit(decodedMsg{inboundMsg: inboundMsg{kind: msgHello, clientID: c.id}, hello: &hello})
			continue
		}

		switch env.Type {
		case "command":
			var cmd protocol.CommandMsg
			if err := json.Unmarshal([]byte(line), &cmd); err != nil {
				continue
			}
			c.engine.Submit(decodedMsg{inboundMsg: inboundMsg{kind: msgCommand, clientID: c.id}, command: &cmd})
		case "control":
			var ctl protocol.ControlMsg
			if err := json.Unmarshal([]byte(line), &ctl); err != nil {
				continue
			}
			c.engine.Submit(decodedMsg{inboundMsg: inboundMsg{kind: msgControl, clientID: c.id}, control: &ctl})
		default:
			c.client.Send(protocol.ErrorMsg{Type: "error", Seq: env.Seq, Code: protocol.ErrInvalidCommand, Message: "unknown message type"})
		}
	}
}

func (c *connection) writeLoop() {
	lw := protocol.NewLineWriter(c.conn)
	for {
		select {
		case msg := <-c.client.Outbox():
			if err := lw.WriteMessage(msg); err != nil {
				return
			}
			if err := lw.Flush(); err != nil {
				return
			}
			if b, err := json.Marshal(msg); err == nil {
				c.frameLg.Log("out", c.id, string(b))
			}
		case <-c.client.Done():
			return
		}
	}
}
