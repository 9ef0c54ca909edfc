// Package observeui implements the read-only observer renderer for the
// `tetrisai observe` command: it connects to a running adapter as a
// streaming observer and renders incoming observation frames.
package observeui

import (
	"encoding/json"
	"net"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tetrisai/tetrisai/internal/protocol"
)

// observationMsg carries one decoded observation frame.
type observationMsg struct {
	obs protocol.ObservationMsg
}

// connErrMsg reports a transport or protocol failure.
type connErrMsg struct{ err error }

// Model is the bubbletea.Model driving the observer TUI.
type Model struct {
	addr string
	name string

	conn   net.Conn
	frames chan tea.Msg

	welcome  protocol.WelcomeMsg
	obs      protocol.ObservationMsg
	haveObs  bool
	err      error
	quitting bool
}

// New builds an observer model that will dial addr on Init.
func New(addr, clientName string) Model {
	return Model{addr: addr, name: clientName}
}

// Init dials the adapter, performs the hello/welcome handshake, and
// starts a background reader forwarding decoded frames into the
// bubbletea event loop.
func (m Model) Init() tea.Cmd {
	return m.connect
}

func (m Model) connect() tea.Msg {
	conn, err := net.Dial("tcp", m.addr)
	if err != nil {
		return connErrMsg{err}
	}

	writer := protocol.NewLineWriter(conn)
	hello := protocol.HelloMsg{
		Type:            "hello",
		Seq:             1,
		TS:              time.Now().UnixMilli(),
		Client:          protocol.ClientInfo{Name: m.name, Version: "1.0.0"},
		ProtocolVersion: protocol.ProtocolVersion,
		Formats:         []string{"json"},
		Requested:       protocol.Requested{StreamObservations: true, CommandMode: "action", Role: "observer"},
	}
	if err := writer.WriteMessage(hello); err != nil {
		return connErrMsg{err}
	}
	if err := writer.Flush(); err != nil {
		return connErrMsg{err}
	}

	reader := protocol.NewLineReader(conn)
	line, err := reader.ReadFrame()
	if err != nil {
		return connErrMsg{err}
	}
	var welcome protocol.WelcomeMsg
	if err := json.Unmarshal([]byte(line), &welcome); err != nil {
		return connErrMsg{err}
	}

	frames := make(chan tea.Msg, 16)
	go pump(reader, frames)

	return connectAndPump{conn: conn, welcome: welcome, frames: frames}
}

// connectAndPump bundles everything Update needs to finish wiring up the
// connection once Init's dial completes.
type connectAndPump struct {
	conn    net.Conn
	welcome protocol.WelcomeMsg
	frames  chan tea.Msg
}

func pump(reader *protocol.LineReader, out chan<- tea.Msg) {
	for {
		line, err := reader.ReadFrame()
		if err != nil {
			out <- connErrMsg{err}
			return
		}
		var env protocol.Envelope
		if err := json.Unmarshal([]byte(line), &env); err != nil {
			continue
		}
		if env.Type != "observation" {
			continue
		}
		var obs protocol.ObservationMsg
		if err := json.Unmarshal([]byte(line), &obs); err != nil {
			continue
		}
		out <- observationMsg{obs}
	}
}

func waitForFrame(frames <-chan tea.Msg) tea.Cmd {
	return func() tea.Msg { return <-frames }
}

// Update handles bubbletea messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.quitting = true
			if m.conn != nil {
				m.conn.Close()
			}
			return m, tea.Quit
		}
	case connectAndPump:
		m.conn = msg.conn
		m.welcome = msg.welcome
		m.frames = msg.frames
		return m, waitForFrame(m.frames)
	case observationMsg:
		m.obs = msg.obs
		m.haveObs = true
		return m, waitForFrame(m.frames)
	case connErrMsg:
		m.err = msg.err
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		if m.err != nil {
			return "connection error: " + m.err.Error() + "\n"
		}
		return "disconnected\n"
	}
	if !m.haveObs {
		return "connecting to " + m.addr + "...\n"
	}
	return Render(m.welcome, m.obs)
}
