package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/lotwatch/internal/board"
)

const (
	tileWidth  = 14
	tileLines  = 3
	tileOuterW = tileWidth + 2 + 1 // border plus gap
	tileOuterH = tileLines + 2
)

func tilesPerRow(width int) int {
	n := width / tileOuterW
	if n < 1 {
		return 1
	}
	return n
}

// renderGrid draws every group as a titled block of tiles wrapping at width.
// It also returns the first line of the row holding the cursor so the caller
// can keep it in view.
func renderGrid(theme Theme, groups []board.Group, cursor, width int) (string, int) {
	styles := theme.Styles()
	perRow := tilesPerRow(width)

	var lines []string
	cursorLine := 0
	index := 0
	for gi, g := range groups {
		if gi > 0 {
			lines = append(lines, "")
		}
		lines = append(lines, styles.AccentText.Bold(true).Render(g.Title)+" "+
			styles.FaintText.Render(fmt.Sprintf("(%d)", len(g.Tiles))))
		if len(g.Tiles) == 0 {
			lines = append(lines, styles.MutedText.Render("  Sin cubículos"))
			continue
		}
		for start := 0; start < len(g.Tiles); start += perRow {
			end := min(start+perRow, len(g.Tiles))
			row := make([]string, 0, end-start)
			for i, tile := range g.Tiles[start:end] {
				if index+i == cursor {
					cursorLine = len(lines)
				}
				row = append(row, renderTile(theme, styles, tile, index+i == cursor))
			}
			index += end - start
			lines = append(lines, strings.Split(lipgloss.JoinHorizontal(lipgloss.Top, row...), "\n")...)
		}
	}
	return strings.Join(lines, "\n"), cursorLine
}

func renderTile(theme Theme, styles Styles, t board.Tile, atCursor bool) string {
	color := lipgloss.Color(styles.StateColor(t.State))

	border := lipgloss.RoundedBorder()
	if t.Selected {
		border = lipgloss.DoubleBorder()
	}
	box := lipgloss.NewStyle().
		Border(border).
		BorderForeground(color).
		Width(tileWidth).
		Align(lipgloss.Center).
		MarginRight(1)
	if atCursor {
		box = box.
			Background(lipgloss.Color(theme.SelectionBg)).
			Foreground(lipgloss.Color(theme.SelectionText))
	}

	label := lipgloss.NewStyle().Foreground(color).Bold(true)
	if atCursor {
		label = label.Background(lipgloss.Color(theme.SelectionBg))
	}

	plate := truncate(t.Plate, tileWidth)
	if plate == "" {
		plate = " "
	}
	content := t.Icon + " " + truncate(t.Name, tileWidth-3) + "\n" +
		label.Render(t.Label) + "\n" +
		plate
	return box.Render(content)
}
