package tetris

// Board is the fixed 10x20 playfield, stored row-major with (0,0) at the
// top-left. Cell reads, writes and collision checks perform no heap
// allocation; ClearFullRows returns a newly allocated slice.
type Board struct {
	cells [BoardHeight][BoardWidth]Cell
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

func inBounds(x, y int) bool {
	return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight
}

// Get returns the cell at (x, y). Cells above the board (y < 0) read as
// empty; out-of-bounds x or y below the board are not meaningful callers
// of Get and should be screened with IsFilled instead.
func (b *Board) Get(x, y int) Cell {
	if !inBounds(x, y) {
		return 0
	}
	return b.cells[y][x]
}

// Set writes a cell, ignoring out-of-bounds coordinates.
func (b *Board) Set(x, y int, c Cell) {
	if !inBounds(x, y) {
		return
	}
	b.cells[y][x] = c
}

// IsFilled reports whether a coordinate is occupied for collision
// purposes: out-of-bounds left/right and below the floor count as
// filled (walls/floor), out-of-bounds above the board counts as empty
// (pieces may spawn with part of their bounding box off the top).
func (b *Board) IsFilled(x, y int) bool {
	if x < 0 || x >= BoardWidth {
		return true
	}
	if y >= BoardHeight {
		return true
	}
	if y < 0 {
		return false
	}
	return b.cells[y][x] != 0
}

// IsValid reports whether (x, y) is within the board and empty.
func (b *Board) IsValid(x, y int) bool {
	if !inBounds(x, y) {
		return false
	}
	return b.cells[y][x] == 0
}

// Collides reports whether placing shape at (x, y) would overlap a wall,
// the floor, or a locked cell.
func (b *Board) Collides(shape Shape, x, y int) bool {
	for _, m := range shape {
		if b.IsFilled(x+m.DX, y+m.DY) {
			return true
		}
	}
	return false
}

func (b *Board) isRowFull(y int) bool {
	for x := 0; x < BoardWidth; x++ {
		if b.cells[y][x] == 0 {
			return false
		}
	}
	return true
}

// ClearFullRows removes every full row, shifting rows above them down,
// and returns the cleared row indices in bottom-to-top order. At most
// four rows can clear in a single call.
func (b *Board) ClearFullRows() []int {
	cleared := make([]int, 0, 4)
	writeY := BoardHeight

	for readY := BoardHeight - 1; readY >= 0; readY-- {
		if b.isRowFull(readY) {
			cleared = append(cleared, readY)
			continue
		}
		writeY--
		if writeY != readY {
			b.cells[writeY] = b.cells[readY]
		}
	}
	for y := 0; y < writeY; y++ {
		b.cells[y] = [BoardWidth]Cell{}
	}

	return cleared
}

// LockPiece writes shape's minos into the board at (x, y) as kind. It
// returns false without mutating the board if any target cell is out of
// bounds or already occupied.
func (b *Board) LockPiece(shape Shape, x, y int, kind PieceKind) bool {
	for _, m := range shape {
		if !b.IsValid(x+m.DX, y+m.DY) {
			return false
		}
	}
	for _, m := range shape {
		b.Set(x+m.DX, y+m.DY, Cell(kind))
	}
	return true
}

// IsSpawnBlocked reports whether the spawn columns are already occupied,
// the game-over condition.
func (b *Board) IsSpawnBlocked() bool {
	for x := SpawnX; x <= SpawnX+3; x++ {
		if !b.IsValid(x, SpawnY) {
			return true
		}
	}
	return false
}

// Clear resets every cell to empty.
func (b *Board) Clear() {
	*b = Board{}
}

// Cells returns a copy of the board's rows, exposed for snapshotting.
func (b *Board) Cells() [BoardHeight][BoardWidth]Cell {
	return b.cells
}
