package adapter

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tetrisai/tetrisai/internal/protocol"
	"github.com/tetrisai/tetrisai/internal/tetris"
)

// inboundMsg is one event delivered to the engine goroutine: either a
// connection lifecycle event or a decoded client message. The engine is
// the sole owner of *tetris.State and the registry; every other
// goroutine communicates with it only through this channel.
type inboundMsg struct {
	kind     inboundKind
	clientID int

	// connect
	conn *connection

	// message
	envelope protocol.Envelope
	raw      string
}

type inboundKind int

const (
	msgConnect inboundKind = iota
	msgDisconnect
	msgHello
	msgCommand
	msgControl
)

// decodedMsg carries a fully-typed message alongside the raw line, set by
// the reader goroutine once it has sniffed the envelope type.
type decodedMsg struct {
	inboundMsg
	hello   *protocol.HelloMsg
	command *protocol.CommandMsg
	control *protocol.ControlMsg
}

// Engine owns the authoritative tetris.State and the client registry. It
// runs on a single goroutine so game state never needs locking.
type Engine struct {
	cfg    Config
	logger *log.Logger

	inbox   chan decodedMsg
	nextID  int
	done    chan struct{}
	frameLg *FrameLogger

	state      *tetris.State
	reg        *registry
	controller int // client id, 0 = none
	gameID     string
}

// NewEngine constructs an engine with a fresh episode seeded from seed.
func NewEngine(cfg Config, gameID string, seed uint32, logger *log.Logger, frameLg *FrameLogger) *Engine {
	return &Engine{
		cfg:     cfg,
		logger:  logger,
		inbox:   make(chan decodedMsg, 256),
		done:    make(chan struct{}),
		frameLg: frameLg,
		state:   tetris.NewState(seed),
		reg:     newRegistry(),
		gameID:  gameID,
	}
}

// Submit delivers an inbound event to the engine. Safe to call from any
// goroutine.
func (e *Engine) Submit(m decodedMsg) {
	select {
	case e.inbox <- m:
	case <-e.done:
	}
}

// Stop shuts the engine's tick loop down.
func (e *Engine) Stop() { close(e.done) }

// Run is the fixed-step tick loop: drain the inbox continuously, and on
// every TickMS boundary drain each client's command queue, advance the
// simulation once, and fan out observations.
func (e *Engine) Run() {
	ticker := time.NewTicker(time.Duration(tetris.TickMS) * time.Millisecond)
	defer ticker.Stop()

	var prevSnap *tetris.Snapshot

	for {
		select {
		case <-e.done:
			return
		case m := <-e.inbox:
			e.handle(m)
		case <-ticker.C:
			softDrop := e.drainCommands()
			e.state.Tick(tetris.TickMS, softDrop)
			prevSnap = e.fanout(prevSnap)
		}
	}
}

func (e *Engine) handle(m decodedMsg) {
	switch m.kind {
	case msgConnect:
		e.handleConnect(m)
	case msgDisconnect:
		e.handleDisconnect(m.clientID)
	case msgHello:
		e.handleHello(m)
	case msgCommand:
		e.handleCommand(m)
	case msgControl:
		e.handleControl(m)
	}
}

func (e *Engine) handleConnect(m decodedMsg) {
	e.nextID++
	id := e.nextID
	c := NewClient(id, e.cfg.MaxPending)
	m.conn.assign(id, c)
	e.reg.add(c)
}

func (e *Engine) handleDisconnect(id int) {
	c, ok := e.reg.get(id)
	if !ok {
		return
	}
	e.reg.remove(id)
	c.Close()
	if e.controller == id {
		e.controller = 0
		promoted := e.reg.lowestIDExcept(id)
		if promoted != -1 {
			if pc, ok := e.reg.get(promoted); ok {
				pc.Role = RoleController
				e.controller = promoted
			}
		}
	}
}

func (e *Engine) handleHello(m decodedMsg) {
	c, ok := e.reg.get(m.clientID)
	if !ok {
		return
	}
	hello := m.hello
	if hello.Seq != 1 {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: hello.Seq, Code: protocol.ErrInvalidCommand, Message: "hello must be the first message with seq=1"})
		return
	}
	if majorOf(hello.ProtocolVersion) != protocol.ProtocolMajor {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: hello.Seq, Code: protocol.ErrProtocolMismatch, Message: "unsupported protocol major version"})
		c.Close()
		return
	}

	c.Handshaken = true
	c.Name = hello.Client.Name
	c.LastSeq = hello.Seq
	c.StreamObservations = hello.Requested.StreamObservations

	role := RoleObserver
	wantsController := hello.Requested.Role != "observer"
	if wantsController && e.controller == 0 {
		role = RoleController
		e.controller = c.ID
	}
	c.Role = role

	var controllerID *int
	if e.controller != 0 {
		id := e.controller
		controllerID = &id
	}

	c.Send(protocol.WelcomeMsg{
		Type:            "welcome",
		Seq:             1,
		ProtocolVersion: protocol.ProtocolVersion,
		GameID:          e.gameID,
		ClientID:        c.ID,
		Role:            role.String(),
		ControllerID:    controllerID,
		ClientName:      c.Name,
		Capabilities: protocol.Capabilities{
			Formats:          []string{"json"},
			CommandModes:     []string{"action", "place"},
			FeaturesAlways:   []string{"hold", "ghost", "tspin_detection", "back_to_back", "combo"},
			FeaturesOptional: []string{"place_mode"},
			ControlPolicy: protocol.ControlPolicy{
				AutoPromoteOnDisconnect: true,
				PromotionOrder:          "lowest_client_id",
			},
		},
	})

	var snap tetris.Snapshot
	e.state.BuildSnapshot(&snap)
	c.Send(buildObservation(&snap))
}

func (e *Engine) handleControl(m decodedMsg) {
	c, ok := e.reg.get(m.clientID)
	if !ok {
		return
	}
	ctl := m.control
	if !e.checkSeq(c, ctl.Seq) {
		return
	}
	switch ctl.Action {
	case "claim":
		if e.controller != 0 && e.controller != c.ID {
			current := e.controller
			c.Send(protocol.ErrorMsg{Type: "error", Seq: ctl.Seq, Code: protocol.ErrControllerActive, Message: "another client already controls this game", ControllerID: &current})
			return
		}
		e.controller = c.ID
		c.Role = RoleController
		c.Send(protocol.AckMsg{Type: "ack", Seq: ctl.Seq, Status: "ok"})
	case "release":
		if e.controller != c.ID {
			c.Send(protocol.ErrorMsg{Type: "error", Seq: ctl.Seq, Code: protocol.ErrNotController, Message: "only the controller may release control"})
			return
		}
		e.controller = 0
		c.Role = RoleObserver
		c.Send(protocol.AckMsg{Type: "ack", Seq: ctl.Seq, Status: "ok"})
	default:
		c.Send(protocol.ErrorMsg{Type: "error", Seq: ctl.Seq, Code: protocol.ErrInvalidCommand, Message: "unknown control action"})
	}
}

func (e *Engine) handleCommand(m decodedMsg) {
	c, ok := e.reg.get(m.clientID)
	if !ok {
		return
	}
	cmd := m.command
	if !e.checkSeq(c, cmd.Seq) {
		return
	}
	if c.Role != RoleController {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: cmd.Seq, Code: protocol.ErrNotController, Message: "only the controller may issue commands"})
		return
	}

	var reqs []actionRequest
	var err error
	switch cmd.Mode {
	case "place":
		if cmd.Place == nil {
			err = errInvalidPlace
			break
		}
		var snap tetris.Snapshot
		e.state.BuildSnapshot(&snap)
		reqs, err = resolvePlaceCommand(cmd.Place, &snap)
	default:
		reqs, err = resolveActionCommand(cmd)
	}
	if err != nil {
		code := protocol.ErrInvalidCommand
		if err == errInvalidPlace {
			code = protocol.ErrInvalidPlace
		} else if err == errSnapshotRequired {
			code = protocol.ErrSnapshotRequired
		} else if err == errHoldUnavailable {
			code = protocol.ErrHoldUnavailable
		}
		c.Send(protocol.ErrorMsg{Type: "error", Seq: cmd.Seq, Code: code, Message: err.Error()})
		return
	}

	if !c.TryEnqueueCommand(queuedCommand{seq: cmd.Seq, actions: reqs}) {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: cmd.Seq, Code: protocol.ErrBackpressure, Message: "command queue full", RetryAfterMS: tetris.TickMS})
		return
	}
	c.Send(protocol.AckMsg{Type: "ack", Seq: cmd.Seq, Status: "ok"})
}

func (e *Engine) checkSeq(c *Client, seq int64) bool {
	if !c.Handshaken {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: seq, Code: protocol.ErrHandshakeRequired, Message: "hello required before other messages"})
		return false
	}
	if seq <= c.LastSeq {
		c.Send(protocol.ErrorMsg{Type: "error", Seq: seq, Code: protocol.ErrInvalidCommand, Message: "seq must strictly increase"})
		return false
	}
	c.LastSeq = seq
	return true
}

// drainCommands applies every queued command across all clients, in
// ascending client-id order, and reports whether a soft drop should
// apply gravity multiplier for this tick.
func (e *Engine) drainCommands() bool {
	softDrop := false
	for _, id := range append([]int(nil), e.reg.order...) {
		c, ok := e.reg.get(id)
		if !ok {
			continue
		}
		for {
			select {
			case qc := <-c.CommandQueue:
				for _, req := range qc.actions {
					if req.action == tetris.Restart && req.restart != nil {
						e.state.RestartSeeded(*req.restart)
						continue
					}
					if req.action == tetris.SoftDrop {
						softDrop = true
					}
					e.state.ApplyAction(req.action)
				}
			default:
				goto next
			}
		}
	next:
	}
	return softDrop
}

func (e *Engine) fanout(prev *tetris.Snapshot) *tetris.Snapshot {
	var snap tetris.Snapshot
	e.state.BuildSnapshot(&snap)
	critical := criticalEvent(prev, &snap)

	nowMS := time.Now().UnixMilli()
	obs := buildObservation(&snap)
	for _, id := range e.reg.order {
		c, ok := e.reg.get(id)
		if !ok || !c.StreamObservations {
			continue
		}
		if !critical && nowMS-c.LastSentMS < e.cfg.ObsIntervalMS() {
			continue
		}
		c.LastSentMS = nowMS
		c.Send(obs)
	}
	return &snap
}

func majorOf(version string) string {
	for i, r := range version {
		if r == '.' {
			return version[:i]
		}
	}
	return version
}
