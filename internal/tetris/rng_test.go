package tetris

import "testing"

func TestLCGRecurrence(t *testing.T) {
	g := NewLCG(1)
	want := uint32(1)*1664525 + 1013904223
	if got := g.Next(); got != want {
		t.Fatalf("Next() = %d, want %d", got, want)
	}
	want2 := want*1664525 + 1013904223
	if got := g.Next(); got != want2 {
		t.Fatalf("second Next() = %d, want %d", got, want2)
	}
}

func TestLCGZeroSeedRemapped(t *testing.T) {
	g := NewLCG(0)
	if g.State() != 1 {
		t.Fatalf("zero seed should remap to 1, got %d", g.State())
	}
}

func TestLCGDeterministic(t *testing.T) {
	a := NewLCG(12345)
	b := NewLCG(12345)
	for i := 0; i < 200; i++ {
		if a.Next() != b.Next() {
			t.Fatalf("diverged at iteration %d", i)
		}
	}
}

func TestPieceQueueDrawsAllSeven(t *testing.T) {
	q := NewPieceQueue(1)
	seen := map[PieceKind]bool{}
	for i := 0; i < 7; i++ {
		seen[q.Draw()] = true
	}
	for _, k := range bagOrder {
		if !seen[k] {
			t.Fatalf("missing piece kind %v in first bag", k)
		}
	}
	if len(seen) != 7 {
		t.Fatalf("expected 7 distinct kinds, got %d", len(seen))
	}
}

func TestPieceQueueEveryBagIsAPermutation(t *testing.T) {
	q := NewPieceQueue(42)
	for bag := 0; bag < 20; bag++ {
		seen := map[PieceKind]bool{}
		for i := 0; i < 7; i++ {
			seen[q.Draw()] = true
		}
		if len(seen) != 7 {
			t.Fatalf("bag %d was not a permutation of all seven kinds", bag)
		}
	}
}

func TestPieceQueueDeterministicAcrossInstances(t *testing.T) {
	a := NewPieceQueue(7)
	b := NewPieceQueue(7)
	for i := 0; i < 100; i++ {
		if a.Draw() != b.Draw() {
			t.Fatalf("diverged at draw %d", i)
		}
	}
}

func TestPieceQueuePeekMatchesSubsequentDraws(t *testing.T) {
	q := NewPieceQueue(99)
	peeked := q.Peek(5)
	for i, want := range peeked {
		if got := q.Draw(); got != want {
			t.Fatalf("draw %d = %v, want %v (from peek)", i, got, want)
		}
	}
}

func TestPieceQueuePeekAcrossBagBoundary(t *testing.T) {
	q := NewPieceQueue(3)
	// Draw 5 so only 2 remain in the current bag.
	for i := 0; i < 5; i++ {
		q.Draw()
	}
	peeked := q.Peek(5)
	if len(peeked) != 5 {
		t.Fatalf("expected 5 peeked pieces, got %d", len(peeked))
	}
	for i := 0; i < 5; i++ {
		if got := q.Draw(); got != peeked[i] {
			t.Fatalf("draw %d = %v, want %v", i, got, peeked[i])
		}
	}
}
