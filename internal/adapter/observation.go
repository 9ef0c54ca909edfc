package adapter

import (
	"github.com/tetrisai/tetrisai/internal/protocol"
	"github.com/tetrisai/tetrisai/internal/tetris"
)

var rotationNames = [...]string{"north", "east", "south", "west"}

func rotationName(r tetris.Rotation) string {
	if int(r) < 0 || int(r) >= len(rotationNames) {
		return "north"
	}
	return rotationNames[r]
}

func kindName(k tetris.PieceKind) string {
	if k == 0 {
		return ""
	}
	return k.String()
}

// buildObservation translates a tetris.Snapshot into the wire
// ObservationMsg shape. Seq and TS are left zero; no caller sets them.
func buildObservation(snap *tetris.Snapshot) *protocol.ObservationMsg {
	board := make([][]int, tetris.BoardHeight)
	for y := 0; y < tetris.BoardHeight; y++ {
		row := make([]int, tetris.BoardWidth)
		copy(row, snap.Board[y][:])
		board[y] = row
	}

	nextQueue := make([]string, 0, tetris.NextQueueLen)
	for _, k := range snap.NextQueue {
		nextQueue = append(nextQueue, kindName(k))
	}

	obs := &protocol.ObservationMsg{
		Type:        "observation",
		Board:       board,
		Next:        kindName(snap.Next),
		NextQueue:   nextQueue,
		Hold:        kindName(snap.Hold),
		CanHold:     snap.CanHold,
		StateHash:   snap.StateHash,
		Score:       snap.Score,
		Level:       snap.Level,
		Lines:       snap.Lines,
		Timers: protocol.TimersView{
			DropMS:      snap.DropMS,
			LockMS:      snap.LockMS,
			LineClearMS: snap.LineClearMS,
		},
		EpisodeID:   snap.EpisodeID,
		Seed:        snap.Seed,
		PieceID:     snap.PieceID,
		StepInPiece: snap.StepInPiece,
		BoardID:     snap.BoardID,
		Playable:    snap.Playable,
		Paused:      snap.Paused,
		GameOver:    snap.GameOver,
	}

	if snap.HasActive {
		obs.Active = &protocol.ActivePieceView{
			Kind:     kindName(snap.ActiveKind),
			Rotation: rotationName(snap.ActiveRot),
			X:        snap.ActiveX,
			Y:        snap.ActiveY,
			GhostY:   snap.GhostY,
		}
	}

	if snap.HasEvent {
		ev := &protocol.LastEventView{
			Locked:         true,
			LinesCleared:   snap.EventLines,
			LineClearScore: snap.EventScore,
			Combo:          snap.EventCombo,
			BackToBack:     snap.EventB2B,
		}
		if snap.EventTSpin != tetris.TSpinNone {
			ev.TSpin = snap.EventTSpin.String()
		}
		obs.LastEvent = ev
	}

	return obs
}

// criticalEvent reports whether prev -> cur crosses a boundary that must
// force an observation regardless of the throttle interval.
func criticalEvent(prev, cur *tetris.Snapshot) bool {
	if prev == nil {
		return true
	}
	if prev.PieceID != cur.PieceID {
		return true
	}
	if cur.HasEvent {
		return true
	}
	if prev.Paused != cur.Paused {
		return true
	}
	if prev.GameOver != cur.GameOver {
		return true
	}
	return false
}
