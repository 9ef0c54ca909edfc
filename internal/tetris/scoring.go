package tetris

var lineScores = [5]int{0, 40, 100, 300, 1200}

var tspinFullScores = [4]int{400, 800, 1200, 1600}
var tspinMiniScores = [3]int{100, 200, 400}

// ComboBase is the flat per-index combo bonus; spec.md is explicit that
// no level multiplier applies here, unlike the reference prototype's
// calculate_combo_score which does multiply by (level+1). spec.md is
// authoritative where the two disagree.
const ComboBase = 50

// ScoreContext carries the pieces of scoring state that persist across
// locks within an episode.
type ScoreContext struct {
	ComboIndex int // -1 when no chain is active
	B2BActive  bool
	Level      int
}

// ScoreResult is the outcome of a single line-clear scoring evaluation.
type ScoreResult struct {
	// Delta is the total added to the running score: the line-clear base
	// (with B2B multiplier applied) plus the combo bonus.
	Delta int
	// LineClearScore is the line-clear base with the B2B multiplier
	// applied, but excluding the combo bonus. This is the value reported
	// as last_event.line_clear_score; combo only affects the running
	// total.
	LineClearScore int
	NewComboIndex  int
	NewB2B         bool
	QualifiesB2B   bool
}

// qualifiesForB2B reports whether a clear counts toward a back-to-back
// chain: a Tetris (4 lines, no T-spin) or a Full T-spin with at least one
// line.
func qualifiesForB2B(tspin TSpinKind, lines int) bool {
	if tspin == TSpinFull && lines >= 1 && lines <= 4 {
		return true
	}
	return tspin == TSpinNone && lines == 4
}

// ScoreClear computes the score delta and next combo/B2B state for a
// lock that cleared `lines` rows (0..4), optionally as a T-spin, given
// the scoring context as it stood before this clear.
func ScoreClear(lines int, tspin TSpinKind, ctx ScoreContext) ScoreResult {
	level := ctx.Level

	var base int
	switch tspin {
	case TSpinFull:
		if lines >= 0 && lines < len(tspinFullScores) {
			base = tspinFullScores[lines]
		}
	case TSpinMini:
		if lines >= 0 && lines < len(tspinMiniScores) {
			base = tspinMiniScores[lines]
		}
	default:
		if lines >= 0 && lines < len(lineScores) {
			base = lineScores[lines]
		}
	}
	base *= level + 1

	qualifies := qualifiesForB2B(tspin, lines)
	if qualifies && ctx.B2BActive {
		base = base * 3 / 2
	}

	newCombo := -1
	if lines > 0 {
		newCombo = ctx.ComboIndex + 1
	}
	comboBonus := 0
	if newCombo > 0 {
		comboBonus = ComboBase * newCombo
	}

	newB2B := ctx.B2BActive
	if lines > 0 {
		newB2B = qualifies
	}

	return ScoreResult{
		Delta:          base + comboBonus,
		LineClearScore: base,
		NewComboIndex:  newCombo,
		NewB2B:         newB2B,
		QualifiesB2B:   qualifies,
	}
}

// DropScore returns the score awarded for soft/hard drop cell traversal.
func DropScore(cells int, hard bool) int {
	if hard {
		return cells * 2
	}
	return cells
}

// LevelForLines derives the level from the total lines cleared, per the
// spec's fallback rule (level = lines / 10) since no test vector pins a
// different mapping.
func LevelForLines(lines int) int {
	return lines / 10
}
