package adapter

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tetrisai/tetrisai/internal/protocol"
)

func newTestEngine() *Engine {
	logger := log.New(io.Discard)
	return NewEngine(DefaultConfig(), "game-1", 1, logger, nil)
}

func drainLast(t *testing.T, c *Client) any {
	t.Helper()
	select {
	case msg := <-c.Outbox():
		return msg
	default:
		t.Fatal("expected a queued outbound message, found none")
		return nil
	}
}

func TestHandleControlReleaseByNonControllerIsRefused(t *testing.T) {
	e := newTestEngine()
	controller := NewClient(1, 4)
	controller.Handshaken = true
	controller.Role = RoleController
	e.reg.add(controller)
	e.controller = controller.ID

	bystander := NewClient(2, 4)
	bystander.Handshaken = true
	bystander.Role = RoleObserver
	e.reg.add(bystander)

	e.handleControl(decodedMsg{
		inboundMsg: inboundMsg{kind: msgControl, clientID: bystander.ID},
		control:    &protocol.ControlMsg{Type: "control", Seq: 2, Action: "release"},
	})

	if e.controller != controller.ID {
		t.Fatalf("controller changed to %d, want unchanged %d", e.controller, controller.ID)
	}
	if bystander.Role != RoleObserver {
		t.Fatal("a rejected release must not change the caller's role")
	}
	msg, ok := drainLast(t, bystander).(protocol.ErrorMsg)
	if !ok {
		t.Fatalf("expected an ErrorMsg, got %+v", msg)
	}
	if msg.Code != protocol.ErrNotController {
		t.Fatalf("Code = %q, want %q", msg.Code, protocol.ErrNotController)
	}
}

func TestHandleCommandAcksWithOkStatus(t *testing.T) {
	e := newTestEngine()
	controller := NewClient(1, 4)
	controller.Handshaken = true
	controller.Role = RoleController
	e.reg.add(controller)
	e.controller = controller.ID

	e.handleCommand(decodedMsg{
		inboundMsg: inboundMsg{kind: msgCommand, clientID: controller.ID},
		command:    &protocol.CommandMsg{Type: "command", Seq: 2, Actions: []string{"moveLeft"}},
	})

	msg, ok := drainLast(t, controller).(protocol.AckMsg)
	if !ok {
		t.Fatalf("expected an AckMsg, got %+v", msg)
	}
	if msg.Status != "ok" {
		t.Fatalf("Status = %q, want %q", msg.Status, "ok")
	}
}

func TestHandleControlClaimWhileActiveReportsCurrentController(t *testing.T) {
	e := newTestEngine()
	controller := NewClient(1, 4)
	controller.Handshaken = true
	controller.Role = RoleController
	e.reg.add(controller)
	e.controller = controller.ID

	challenger := NewClient(2, 4)
	challenger.Handshaken = true
	challenger.Role = RoleObserver
	e.reg.add(challenger)

	e.handleControl(decodedMsg{
		inboundMsg: inboundMsg{kind: msgControl, clientID: challenger.ID},
		control:    &protocol.ControlMsg{Type: "control", Seq: 2, Action: "claim"},
	})

	if e.controller != controller.ID {
		t.Fatalf("controller changed to %d, want unchanged %d", e.controller, controller.ID)
	}
	msg, ok := drainLast(t, challenger).(protocol.ErrorMsg)
	if !ok {
		t.Fatalf("expected an ErrorMsg, got %+v", msg)
	}
	if msg.Code != protocol.ErrControllerActive {
		t.Fatalf("Code = %q, want %q", msg.Code, protocol.ErrControllerActive)
	}
	if msg.ControllerID == nil || *msg.ControllerID != controller.ID {
		t.Fatalf("ControllerID = %v, want %d", msg.ControllerID, controller.ID)
	}
}

func TestHandleControlReleaseByControllerSucceeds(t *testing.T) {
	e := newTestEngine()
	controller := NewClient(1, 4)
	controller.Handshaken = true
	controller.Role = RoleController
	e.reg.add(controller)
	e.controller = controller.ID

	e.handleControl(decodedMsg{
		inboundMsg: inboundMsg{kind: msgControl, clientID: controller.ID},
		control:    &protocol.ControlMsg{Type: "control", Seq: 2, Action: "release"},
	})

	if e.controller != 0 {
		t.Fatalf("controller = %d, want 0 after a successful release", e.controller)
	}
	if controller.Role != RoleObserver {
		t.Fatal("a successful release must demote the caller to observer")
	}
	msg, ok := drainLast(t, controller).(protocol.AckMsg)
	if !ok || msg.Status != "ok" {
		t.Fatalf("expected an ok ack, got %+v", msg)
	}
}
