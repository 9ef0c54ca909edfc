// Package protocol defines the wire message types and line framing for
// the AI adapter's newline-delimited JSON protocol.
package protocol

// ProtocolVersion is the major.minor.patch version this server speaks.
// Only the major component is checked against a client's hello.
const ProtocolVersion = "2.0.0"

const ProtocolMajor = "2"

// ClientInfo identifies the connecting agent, echoed nowhere protocol-
// significant beyond adapter-side logging.
type ClientInfo struct {
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`
}

// Requested carries a client's opt-in preferences from hello.
type Requested struct {
	StreamObservations bool   `json:"stream_observations"`
	CommandMode        string `json:"command_mode"`
	Role               string `json:"role,omitempty"` // "auto" | "controller" | "observer"
}

// HelloMsg is sent by the client immediately after connecting.
type HelloMsg struct {
	Type            string    `json:"type"`
	Seq             int64     `json:"seq"`
	TS              int64     `json:"ts"`
	Client          ClientInfo `json:"client"`
	ProtocolVersion string    `json:"protocol_version"`
	Formats         []string  `json:"formats"`
	Requested       Requested `json:"requested"`
}

// ControlPolicy documents server behavior around controller assignment.
type ControlPolicy struct {
	AutoPromoteOnDisconnect bool   `json:"auto_promote_on_disconnect"`
	PromotionOrder          string `json:"promotion_order"`
}

// Capabilities is advertised in welcome.
type Capabilities struct {
	Formats          []string      `json:"formats"`
	CommandModes     []string      `json:"command_modes"`
	Features         []string      `json:"features"`
	FeaturesAlways   []string      `json:"features_always"`
	FeaturesOptional []string      `json:"features_optional"`
	ControlPolicy    ControlPolicy `json:"control_policy"`
}

// WelcomeMsg is the server's handshake reply.
type WelcomeMsg struct {
	Type            string       `json:"type"`
	Seq             int64        `json:"seq"`
	TS              int64        `json:"ts"`
	ProtocolVersion string       `json:"protocol_version"`
	GameID          string       `json:"game_id"`
	ClientID        int          `json:"client_id"`
	Role            string       `json:"role"`
	ControllerID    *int         `json:"controller_id"`
	Capabilities    Capabilities `json:"capabilities"`
	ClientName      string       `json:"client_name,omitempty"`
}

// PlaceCommand describes a place-mode command.
type PlaceCommand struct {
	X        int  `json:"x"`
	Rotation int  `json:"rotation"`
	UseHold  bool `json:"useHold"`
}

// RestartOpts carries the optional explicit seed on a restart action.
type RestartOpts struct {
	Seed *uint32 `json:"seed,omitempty"`
}

// CommandMsg is a client-issued gameplay command.
type CommandMsg struct {
	Type    string        `json:"type"`
	Seq     int64         `json:"seq"`
	TS      int64         `json:"ts"`
	Mode    string        `json:"mode"` // "action" | "place"
	Actions []string      `json:"actions,omitempty"`
	Restart *RestartOpts  `json:"restart,omitempty"`
	Place   *PlaceCommand `json:"place,omitempty"`
}

// ControlMsg claims or releases the controller role.
type ControlMsg struct {
	Type   string `json:"type"`
	Seq    int64  `json:"seq"`
	TS     int64  `json:"ts"`
	Action string `json:"action"` // "claim" | "release"
}

// ActivePieceView mirrors the active piece for observation payloads.
type ActivePieceView struct {
	Kind     string `json:"kind"`
	Rotation string `json:"rotation"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	GhostY   int    `json:"ghost_y"`
}

// TimersView mirrors the timer accumulators.
type TimersView struct {
	DropMS      int `json:"drop_ms"`
	LockMS      int `json:"lock_ms"`
	LineClearMS int `json:"line_clear_ms"`
}

// LastEventView mirrors the most recent lock/clear event, present only
// on ticks that produced one.
type LastEventView struct {
	Locked         bool   `json:"locked"`
	LinesCleared   int    `json:"lines_cleared"`
	LineClearScore int    `json:"line_clear_score"`
	TSpin          string `json:"tspin,omitempty"`
	Combo          int    `json:"combo"`
	BackToBack     bool   `json:"back_to_back"`
}

// ObservationMsg is a full game snapshot pushed to streaming observers.
type ObservationMsg struct {
	Type        string           `json:"type"`
	Seq         int64            `json:"seq"`
	TS          int64            `json:"ts"`
	Board       [][]int          `json:"board"`
	Active      *ActivePieceView `json:"active,omitempty"`
	Next        string           `json:"next,omitempty"`
	NextQueue   []string         `json:"next_queue"`
	Hold        string           `json:"hold,omitempty"`
	CanHold     bool             `json:"can_hold"`
	LastEvent   *LastEventView   `json:"last_event,omitempty"`
	StateHash   string           `json:"state_hash"`
	Score       int              `json:"score"`
	Level       int              `json:"level"`
	Lines       int              `json:"lines"`
	Timers      TimersView       `json:"timers"`
	EpisodeID   int              `json:"episode_id"`
	Seed        uint32           `json:"seed"`
	PieceID     int              `json:"piece_id"`
	StepInPiece int              `json:"step_in_piece"`
	BoardID     int              `json:"board_id"`
	Playable    bool             `json:"playable"`
	Paused      bool             `json:"paused"`
	GameOver    bool             `json:"game_over"`
}

// AckMsg acknowledges a command once it is accepted into the client's
// queue (before the engine applies it), or a control message once it
// has taken effect.
type AckMsg struct {
	Type   string `json:"type"`
	Seq    int64  `json:"seq"`
	TS     int64  `json:"ts"`
	Status string `json:"status"`
}

// ErrorMsg reports a protocol violation or engine refusal.
type ErrorMsg struct {
	Type         string `json:"type"`
	Seq          int64  `json:"seq"`
	TS           int64  `json:"ts"`
	Code         string `json:"code"`
	Message      string `json:"message"`
	RetryAfterMS int    `json:"retry_after_ms,omitempty"`
	ControllerID *int   `json:"controller_id,omitempty"`
}

// Envelope is used to sniff a message's "type" field before decoding it
// into its concrete struct.
type Envelope struct {
	Type string `json:"type"`
	Seq  int64  `json:"seq"`
}
