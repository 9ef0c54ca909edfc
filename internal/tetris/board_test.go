package tetris

import "testing"

func TestBoardGetSetRoundTrip(t *testing.T) {
	b := NewBoard()
	b.Set(3, 4, Cell(T))
	if got := b.Get(3, 4); got != Cell(T) {
		t.Fatalf("Get(3,4) = %v, want %v", got, T)
	}
}

func TestBoardOutOfBoundsIsFilled(t *testing.T) {
	b := NewBoard()
	if !b.IsFilled(-1, 5) {
		t.Fatal("left wall should read as filled")
	}
	if !b.IsFilled(BoardWidth, 5) {
		t.Fatal("right wall should read as filled")
	}
	if !b.IsFilled(3, BoardHeight) {
		t.Fatal("floor should read as filled")
	}
	if b.IsFilled(3, -1) {
		t.Fatal("above the board should read as empty")
	}
}

func TestBoardClearFullRows(t *testing.T) {
	b := NewBoard()
	for x := 0; x < BoardWidth; x++ {
		b.Set(x, BoardHeight-1, Cell(I))
		b.Set(x, BoardHeight-2, Cell(I))
	}
	b.Set(0, BoardHeight-3, Cell(I)) // partial row, not cleared

	cleared := b.ClearFullRows()
	if len(cleared) != 2 {
		t.Fatalf("expected 2 cleared rows, got %d", len(cleared))
	}
	// bottom-to-top order
	if cleared[0] != BoardHeight-1 || cleared[1] != BoardHeight-2 {
		t.Fatalf("unexpected cleared row order: %v", cleared)
	}
	// the surviving partial row should have shifted down to the bottom.
	if b.Get(0, BoardHeight-1) != Cell(I) {
		t.Fatalf("expected shifted row content at bottom, got %v", b.Get(0, BoardHeight-1))
	}
	for x := 1; x < BoardWidth; x++ {
		if b.Get(x, BoardHeight-1) != 0 {
			t.Fatalf("expected empty at (%d, bottom), got %v", x, b.Get(x, BoardHeight-1))
		}
	}
}

func TestBoardLockPieceRejectsOccupied(t *testing.T) {
	b := NewBoard()
	shape := GetShape(O, North)
	if !b.LockPiece(shape, 0, 0, O) {
		t.Fatal("first lock should succeed")
	}
	if b.LockPiece(shape, 0, 0, O) {
		t.Fatal("locking onto occupied cells should fail")
	}
}

func TestBoardIsSpawnBlocked(t *testing.T) {
	b := NewBoard()
	if b.IsSpawnBlocked() {
		t.Fatal("empty board should not block spawn")
	}
	b.Set(SpawnX, SpawnY, Cell(I))
	if !b.IsSpawnBlocked() {
		t.Fatal("occupied spawn column should block spawn")
	}
}
