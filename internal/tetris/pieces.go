package tetris

// Offset is a mino position relative to a piece's local origin.
type Offset struct{ DX, DY int }

// Shape is the four mino offsets of a piece at a given rotation.
type Shape [4]Offset

func shapeI(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{0, 1}, {1, 1}, {2, 1}, {3, 1}}
	case East:
		return Shape{{2, 0}, {2, 1}, {2, 2}, {2, 3}}
	case South:
		return Shape{{0, 2}, {1, 2}, {2, 2}, {3, 2}}
	default: // West
		return Shape{{1, 0}, {1, 1}, {1, 2}, {1, 3}}
	}
}

func shapeO(Rotation) Shape {
	return Shape{{1, 0}, {2, 0}, {1, 1}, {2, 1}}
}

func shapeT(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{1, 0}, {0, 1}, {1, 1}, {2, 1}}
	case East:
		return Shape{{1, 0}, {1, 1}, {2, 1}, {1, 2}}
	case South:
		return Shape{{0, 1}, {1, 1}, {2, 1}, {1, 2}}
	default:
		return Shape{{1, 0}, {0, 1}, {1, 1}, {1, 2}}
	}
}

func shapeS(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{1, 0}, {2, 0}, {0, 1}, {1, 1}}
	case East:
		return Shape{{1, 0}, {1, 1}, {2, 1}, {2, 2}}
	case South:
		return Shape{{1, 1}, {2, 1}, {0, 2}, {1, 2}}
	default:
		return Shape{{0, 0}, {0, 1}, {1, 1}, {1, 2}}
	}
}

func shapeZ(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{0, 0}, {1, 0}, {1, 1}, {2, 1}}
	case East:
		return Shape{{2, 0}, {1, 1}, {2, 1}, {1, 2}}
	case South:
		return Shape{{0, 1}, {1, 1}, {1, 2}, {2, 2}}
	default:
		return Shape{{1, 0}, {0, 1}, {1, 1}, {0, 2}}
	}
}

func shapeJ(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{0, 0}, {0, 1}, {1, 1}, {2, 1}}
	case East:
		return Shape{{1, 0}, {2, 0}, {1, 1}, {1, 2}}
	case South:
		return Shape{{0, 1}, {1, 1}, {2, 1}, {2, 2}}
	default:
		return Shape{{1, 0}, {1, 1}, {0, 2}, {1, 2}}
	}
}

func shapeL(r Rotation) Shape {
	switch r {
	case North:
		return Shape{{2, 0}, {0, 1}, {1, 1}, {2, 1}}
	case East:
		return Shape{{1, 0}, {1, 1}, {1, 2}, {2, 2}}
	case South:
		return Shape{{0, 1}, {1, 1}, {2, 1}, {0, 2}}
	default:
		return Shape{{0, 0}, {1, 0}, {1, 1}, {1, 2}}
	}
}

// GetShape returns the mino offsets for a piece kind at a rotation.
func GetShape(kind PieceKind, r Rotation) Shape {
	switch kind {
	case I:
		return shapeI(r)
	case O:
		return shapeO(r)
	case T:
		return shapeT(r)
	case S:
		return shapeS(r)
	case Z:
		return shapeZ(r)
	case J:
		return shapeJ(r)
	default: // L
		return shapeL(r)
	}
}

// KickTable holds, for each of the 8 rotation transitions, up to five
// (dx, dy) offsets tried in order.
type KickTable [8][5]Offset

var oKicks = KickTable{}

var jlstzKicks = KickTable{
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},  // N->E
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},     // N->W
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},      // E->N
	{{0, 0}, {1, 0}, {1, -1}, {0, 2}, {1, 2}},      // E->S
	{{0, 0}, {-1, 0}, {-1, 1}, {0, -2}, {-1, -2}},  // S->E
	{{0, 0}, {1, 0}, {1, 1}, {0, -2}, {1, -2}},     // S->W
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},   // W->S
	{{0, 0}, {-1, 0}, {-1, -1}, {0, 2}, {-1, 2}},   // W->N
}

var iKicks = KickTable{
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // N->E
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // N->W
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // E->N
	{{0, 0}, {-1, 0}, {2, 0}, {-1, 2}, {2, -1}}, // E->S
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // S->E
	{{0, 0}, {2, 0}, {-1, 0}, {2, 1}, {-1, -2}}, // S->W
	{{0, 0}, {-2, 0}, {1, 0}, {-2, -1}, {1, 2}}, // W->S
	{{0, 0}, {1, 0}, {-2, 0}, {1, -2}, {-2, 1}}, // W->N
}

func kickTableFor(kind PieceKind) *KickTable {
	switch kind {
	case O:
		return &oKicks
	case I:
		return &iKicks
	default:
		return &jlstzKicks
	}
}

// kickIndex maps a (from-rotation, clockwise) transition to its row in
// the 8-row kick tables above.
func kickIndex(from Rotation, cw bool) int {
	switch {
	case from == North && cw:
		return 0
	case from == North && !cw:
		return 1
	case from == East && !cw:
		return 2
	case from == East && cw:
		return 3
	case from == South && !cw:
		return 4
	case from == South && cw:
		return 5
	case from == West && !cw:
		return 6
	default: // West, cw
		return 7
	}
}

// TryRotate attempts to rotate a piece using SRS kicks. isValid reports
// whether a board cell at (x, y) is free of walls, floor and locked
// cells. It returns the resulting shape, rotation and the kick offset
// that succeeded, or ok=false if every kick in the table collides.
func TryRotate(kind PieceKind, from Rotation, x, y int, cw bool, isValid func(x, y int) bool) (shape Shape, to Rotation, kick Offset, ok bool) {
	if cw {
		to = from.CW()
	} else {
		to = from.CCW()
	}
	shape = GetShape(kind, to)
	kicks := kickTableFor(kind)[kickIndex(from, cw)]

	for _, k := range kicks {
		nx, ny := x+k.DX, y+k.DY
		valid := true
		for _, m := range shape {
			if !isValid(nx+m.DX, ny+m.DY) {
				valid = false
				break
			}
		}
		if valid {
			return shape, to, k, true
		}
	}
	return Shape{}, from, Offset{}, false
}
