package ui

import (
	"strings"
	"testing"

	"github.com/five82/lotwatch/internal/board"
	"github.com/five82/lotwatch/internal/parking"
)

func TestThemeCycle(t *testing.T) {
	names := ThemeNames()
	if len(names) < 2 {
		t.Fatalf("want at least two themes, got %v", names)
	}
	if got := NextTheme(names[len(names)-1]); got != names[0] {
		t.Fatalf("NextTheme wraps to %q, want %q", got, names[0])
	}
	if got := NextTheme("missing"); got != names[0] {
		t.Fatalf("NextTheme(unknown) = %q, want %q", got, names[0])
	}
	if got := GetTheme("missing").Name; got != "Dracula" {
		t.Fatalf("GetTheme fallback = %q", got)
	}
}

func TestStateColorsDiffer(t *testing.T) {
	styles := GetTheme("Dracula").Styles()
	free := styles.StateColor(parking.StateFree)
	occupied := styles.StateColor(parking.StateOccupied)
	pending := styles.StateColor(parking.StatePending)
	if free == occupied || occupied == pending || free == pending {
		t.Fatalf("state colors should differ: %s %s %s", free, occupied, pending)
	}
}

func TestTilesPerRow(t *testing.T) {
	if got := tilesPerRow(0); got != 1 {
		t.Fatalf("tilesPerRow(0) = %d", got)
	}
	if got := tilesPerRow(tileOuterW * 4); got != 4 {
		t.Fatalf("tilesPerRow = %d, want 4", got)
	}
}

func TestRenderGridTracksCursorRow(t *testing.T) {
	groups := board.BuildGrid([]parking.Cubicle{
		{Name: "A1", State: parking.StateFree},
		{Name: "A2", State: parking.StateFree},
		{Name: "A3", State: parking.StateFree},
	}, "")

	out, first := renderGrid(GetTheme("Dracula"), groups, 0, tileOuterW*2)
	if first != 1 {
		t.Fatalf("cursor on first tile should be line 1, got %d", first)
	}
	for _, name := range []string{"A1", "A2", "A3", "Cubículos para Motos", "Sin cubículos"} {
		if !strings.Contains(out, name) {
			t.Fatalf("grid missing %q", name)
		}
	}

	_, wrapped := renderGrid(GetTheme("Dracula"), groups, 2, tileOuterW*2)
	if wrapped <= first {
		t.Fatalf("third tile should sit on a later row: first=%d wrapped=%d", first, wrapped)
	}
}
