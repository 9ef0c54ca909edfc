package tetris

import (
	"encoding/binary"
	"fmt"

	"github.com/cespare/xxhash/v2"
)

// Snapshot is a plain, primitive-only mirror of the observable game
// state at an instant, suitable for network transmission and for
// building deterministic state hashes.
type Snapshot struct {
	Board [BoardHeight][BoardWidth]int

	HasActive    bool
	ActiveKind   PieceKind
	ActiveRot    Rotation
	ActiveX      int
	ActiveY      int
	GhostY       int

	Next      PieceKind
	NextQueue [NextQueueLen]PieceKind

	Hold    PieceKind
	CanHold bool

	Score int
	Level int
	Lines int

	DropMS      int
	LockMS      int
	LineClearMS int

	EpisodeID   int
	Seed        uint32
	PieceID     int
	StepInPiece int
	BoardID     int

	Playable bool
	Paused   bool
	GameOver bool

	HasEvent       bool
	EventLines     int
	EventScore     int
	EventTSpin     TSpinKind
	EventCombo     int
	EventB2B       bool

	StateHash string
}

// BuildSnapshot fills a Snapshot in place from the current state. The
// fixed-size fields are copied without allocation; computing StateHash
// allocates its hex string.
func (s *State) BuildSnapshot(out *Snapshot) {
	cells := s.Board.Cells()
	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			out.Board[y][x] = int(cells[y][x])
		}
	}

	if s.Active != nil {
		out.HasActive = true
		out.ActiveKind = s.Active.Kind
		out.ActiveRot = s.Active.Rotation
		out.ActiveX = s.Active.X
		out.ActiveY = s.Active.Y
		out.GhostY = s.GhostY()
	} else {
		*out = zeroActive(*out)
	}

	if len(s.NextQueue) > 0 {
		out.Next = s.NextQueue[0]
	}
	for i := 0; i < NextQueueLen; i++ {
		if i < len(s.NextQueue) {
			out.NextQueue[i] = s.NextQueue[i]
		} else {
			out.NextQueue[i] = 0
		}
	}

	out.Hold = s.Hold
	out.CanHold = s.CanHold

	out.Score = s.Score
	out.Level = s.Level
	out.Lines = s.Lines

	out.DropMS = s.DropMS
	out.LockMS = s.LockMS
	out.LineClearMS = s.LineClearMS

	out.EpisodeID = s.EpisodeID
	out.Seed = s.Seed
	out.PieceID = s.PieceID
	out.StepInPiece = s.StepInPiece
	out.BoardID = s.BoardID

	out.Playable = s.Playable()
	out.Paused = s.Paused()
	out.GameOver = s.GameOver()

	if s.LastEvent != nil {
		out.HasEvent = true
		out.EventLines = s.LastEvent.LinesCleared
		out.EventScore = s.LastEvent.LineClearScore
		out.EventTSpin = s.LastEvent.TSpin
		out.EventCombo = s.LastEvent.Combo
		out.EventB2B = s.LastEvent.BackToBack
	} else {
		out.HasEvent = false
		out.EventLines = 0
		out.EventScore = 0
		out.EventTSpin = TSpinNone
		out.EventCombo = 0
		out.EventB2B = false
	}

	out.StateHash = out.Hash()
}

func zeroActive(s Snapshot) Snapshot {
	s.HasActive = false
	s.ActiveKind = 0
	s.ActiveRot = North
	s.ActiveX = 0
	s.ActiveY = 0
	s.GhostY = 0
	return s
}

// Hash returns a stable, deterministic hex digest of the snapshot's
// observable fields, computed over a canonical little-endian byte
// encoding so it agrees across platforms and process runs for identical
// state.
func (snap *Snapshot) Hash() string {
	var buf [8]byte
	h := xxhash.New()
	write := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}

	for y := 0; y < BoardHeight; y++ {
		for x := 0; x < BoardWidth; x++ {
			write(uint64(snap.Board[y][x]))
		}
	}
	write(boolToU64(snap.HasActive))
	write(uint64(snap.ActiveKind))
	write(uint64(snap.ActiveRot))
	write(uint64(int64(snap.ActiveX)))
	write(uint64(int64(snap.ActiveY)))
	write(uint64(int64(snap.GhostY)))
	write(uint64(snap.Next))
	for _, k := range snap.NextQueue {
		write(uint64(k))
	}
	write(uint64(snap.Hold))
	write(boolToU64(snap.CanHold))
	write(uint64(int64(snap.Score)))
	write(uint64(int64(snap.Level)))
	write(uint64(int64(snap.Lines)))
	write(uint64(int64(snap.DropMS)))
	write(uint64(int64(snap.LockMS)))
	write(uint64(int64(snap.LineClearMS)))
	write(uint64(int64(snap.EpisodeID)))
	write(uint64(snap.Seed))
	write(uint64(int64(snap.PieceID)))
	write(uint64(int64(snap.StepInPiece)))
	write(uint64(int64(snap.BoardID)))
	write(boolToU64(snap.Playable))
	write(boolToU64(snap.Paused))
	write(boolToU64(snap.GameOver))
	write(boolToU64(snap.HasEvent))
	write(uint64(int64(snap.EventLines)))
	write(uint64(int64(snap.EventScore)))
	write(uint64(snap.EventTSpin))
	write(uint64(int64(snap.EventCombo)))
	write(boolToU64(snap.EventB2B))

	return fmt.Sprintf("%016x", h.Sum64())
}

func boolToU64(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
