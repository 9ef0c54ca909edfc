package adapter

import (
	"errors"
	"fmt"

	"github.com/tetrisai/tetrisai/internal/protocol"
	"github.com/tetrisai/tetrisai/internal/tetris"
)

// resolveActionCommand parses a mode="action" command into an ordered
// list of engine actions plus an optional restart seed. It returns an
// error naming the invalid action name when one falls outside the fixed
// enum.
func resolveActionCommand(msg *protocol.CommandMsg) ([]actionRequest, error) {
	reqs := make([]actionRequest, 0, len(msg.Actions))
	for _, name := range msg.Actions {
		a, ok := tetris.ParseAction(name)
		if !ok {
			return nil, fmt.Errorf("unknown action %q", name)
		}
		req := actionRequest{action: a}
		if a == tetris.Restart && msg.Restart != nil {
			req.restart = msg.Restart.Seed
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}

// rotationFromWire maps the wire's integer rotation (0..3, matching
// tetris.Rotation's own encoding) to a Rotation value.
func rotationFromWire(n int) tetris.Rotation {
	return tetris.Rotation(((n % 4) + 4) % 4)
}

// resolvePlaceCommand computes the action sequence that (optionally
// holds, then) rotates the active piece to the requested rotation,
// translates it to the requested column, and hard-drops it. snap is the
// most recently built snapshot; the mapper refuses to run without one.
// Reachability is simulated entirely against the snapshot's board
// contents (read-only), never against live state, so a rejected place
// command has zero effect on the game.
func resolvePlaceCommand(place *protocol.PlaceCommand, snap *tetris.Snapshot) ([]actionRequest, error) {
	if snap == nil {
		return nil, errSnapshotRequired
	}
	if !snap.Playable || !snap.HasActive {
		return nil, errInvalidPlace
	}
	if place.X < 0 || place.X >= tetris.BoardWidth {
		return nil, errInvalidPlace
	}

	isValid := func(x, y int) bool {
		if x < 0 || x >= tetris.BoardWidth || y >= tetris.BoardHeight {
			return false
		}
		if y < 0 {
			return true
		}
		return snap.Board[y][x] == 0
	}

	var reqs []actionRequest
	kind := snap.ActiveKind
	rot := snap.ActiveRot
	x, y := snap.ActiveX, snap.ActiveY
	if place.UseHold {
		if !snap.CanHold {
			return nil, errHoldUnavailable
		}
		reqs = append(reqs, actionRequest{action: tetris.Hold})

		// Holding swaps the active piece out and spawns its replacement
		// fresh, so reachability must be simulated against the post-hold
		// piece, not the one that was active when the snapshot was built.
		if snap.Hold == 0 {
			kind = snap.NextQueue[0]
		} else {
			kind = snap.Hold
		}
		rot = tetris.North
		x, y = tetris.SpawnX, tetris.SpawnY
	}

	target := rotationFromWire(place.Rotation)
	steps := 0
	for rot != target && steps < 4 {
		shape, to, kick, ok := tetris.TryRotate(kind, rot, x, y, true, isValid)
		if !ok {
			return nil, errInvalidPlace
		}
		_ = shape
		rot = to
		x += kick.DX
		y += kick.DY
		reqs = append(reqs, actionRequest{action: tetris.RotateCw})
		steps++
	}
	if rot != target {
		return nil, errInvalidPlace
	}

	dx := place.X - x
	moveAction := tetris.MoveRight
	step := 1
	if dx < 0 {
		moveAction = tetris.MoveLeft
		step = -1
		dx = -dx
	}
	shape := tetris.GetShape(kind, rot)
	for i := 0; i < dx; i++ {
		nx := x + step
		blocked := false
		for _, m := range shape {
			if !isValid(nx+m.DX, y+m.DY) {
				blocked = true
				break
			}
		}
		if blocked {
			return nil, errInvalidPlace
		}
		x = nx
		reqs = append(reqs, actionRequest{action: moveAction})
	}
	reqs = append(reqs, actionRequest{action: tetris.HardDrop})
	return reqs, nil
}

var (
	errSnapshotRequired = errors.New(protocol.ErrSnapshotRequired)
	errInvalidPlace     = errors.New(protocol.ErrInvalidPlace)
	errHoldUnavailable  = errors.New(protocol.ErrHoldUnavailable)
)
