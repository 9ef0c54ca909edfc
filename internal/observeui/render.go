package observeui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tetrisai/tetrisai/internal/core"
	"github.com/tetrisai/tetrisai/internal/protocol"
)

var (
	boardStyle = lipgloss.NewStyle().Padding(0, 1)
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1).
			MarginLeft(2)
	titleStyle = lipgloss.NewStyle().Bold(true)
	overStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("196"))
)

var cellGlyphs = [...]rune{' ', 'I', 'O', 'T', 'S', 'Z', 'J', 'L'}

func cellGlyph(v int) rune {
	if v < 0 || v >= len(cellGlyphs) {
		return '?'
	}
	if v == 0 {
		return ' '
	}
	return cellGlyphs[v]
}

// Render draws one full frame: the board of locked cells beside a status
// panel, using box-drawing glyphs the way the arcade's Screen type does.
// The active piece is marked only by a single '.' at its origin column
// on the ghost row; its minos are not drawn.
func Render(welcome protocol.WelcomeMsg, obs protocol.ObservationMsg) string {
	h := len(obs.Board)
	w := 0
	if h > 0 {
		w = len(obs.Board[0])
	}

	screen := core.NewScreen(w+2, h+2)
	screen.DrawBox(core.NewRect(0, 0, w+2, h+2))

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			screen.Set(x+1, y+1, cellGlyph(obs.Board[y][x]))
		}
	}

	if obs.Active != nil {
		screen.Set(obs.Active.X+1, obs.Active.GhostY+1, '.')
	}

	board := boardStyle.Render(screen.String())
	panel := panelStyle.Render(renderPanel(welcome, obs))

	return lipgloss.JoinHorizontal(lipgloss.Top, board, panel) + "\n\n" + footer(obs)
}

func renderPanel(welcome protocol.WelcomeMsg, obs protocol.ObservationMsg) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n", titleStyle.Render("game "+welcome.GameID))
	fmt.Fprintf(&b, "role: %s\n", welcome.Role)
	fmt.Fprintf(&b, "score: %d\n", obs.Score)
	fmt.Fprintf(&b, "level: %d\n", obs.Level)
	fmt.Fprintf(&b, "lines: %d\n\n", obs.Lines)

	hold := obs.Hold
	if hold == "" {
		hold = "-"
	}
	fmt.Fprintf(&b, "hold: %s\n", hold)
	fmt.Fprintf(&b, "next: %s\n\n", strings.Join(obs.NextQueue, " "))

	if obs.LastEvent != nil {
		fmt.Fprintf(&b, "last: %d lines", obs.LastEvent.LinesCleared)
		if obs.LastEvent.TSpin != "" {
			fmt.Fprintf(&b, " (tspin %s)", obs.LastEvent.TSpin)
		}
		fmt.Fprintf(&b, " +%d\n", obs.LastEvent.LineClearScore)
		fmt.Fprintf(&b, "combo: %d  b2b: %v\n", obs.LastEvent.Combo, obs.LastEvent.BackToBack)
	}

	if obs.GameOver {
		fmt.Fprintf(&b, "\n%s\n", overStyle.Render("GAME OVER"))
	} else if obs.Paused {
		fmt.Fprintf(&b, "\npaused\n")
	}

	return b.String()
}

func footer(obs protocol.ObservationMsg) string {
	return fmt.Sprintf("episode %d  piece %d  board %d  q: quit", obs.EpisodeID, obs.PieceID, obs.BoardID)
}
