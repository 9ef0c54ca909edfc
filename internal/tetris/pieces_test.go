package tetris

import "testing"

func TestGetShapeAllRotationsHaveFourMinos(t *testing.T) {
	kinds := []PieceKind{I, O, T, S, Z, J, L}
	rots := []Rotation{North, East, South, West}
	for _, k := range kinds {
		for _, r := range rots {
			shape := GetShape(k, r)
			if len(shape) != 4 {
				t.Fatalf("%v/%v has %d minos, want 4", k, r, len(shape))
			}
		}
	}
}

func TestOPieceRotationIsInvariant(t *testing.T) {
	base := GetShape(O, North)
	for _, r := range []Rotation{East, South, West} {
		if GetShape(O, r) != base {
			t.Fatalf("O piece shape changed under rotation %v", r)
		}
	}
}

func TestTryRotateNoKicksNeeded(t *testing.T) {
	isValid := func(x, y int) bool { return x >= 0 && x < BoardWidth && y >= 0 && y < BoardHeight }
	_, to, kick, ok := TryRotate(T, North, 4, 4, true, isValid)
	if !ok {
		t.Fatal("rotation in open space should succeed")
	}
	if to != East {
		t.Fatalf("to = %v, want East", to)
	}
	if kick != (Offset{0, 0}) {
		t.Fatalf("expected the zero kick to succeed in open space, got %v", kick)
	}
}

func TestTryRotateAllKicksFail(t *testing.T) {
	isValid := func(x, y int) bool { return false }
	_, _, _, ok := TryRotate(T, North, 4, 4, true, isValid)
	if ok {
		t.Fatal("rotation should fail when every cell is blocked")
	}
}

func TestOPieceHasNoKickOffsets(t *testing.T) {
	for _, row := range oKicks {
		for _, k := range row {
			if k != (Offset{0, 0}) {
				t.Fatalf("O piece kick table should be all zero, found %v", k)
			}
		}
	}
}
