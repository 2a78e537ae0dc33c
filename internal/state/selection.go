package state

import (
	"github.com/five82/lotwatch/internal/parking"
)

// Mode is the action mode derived from the selected cubicle.
type Mode int

const (
	ModeUnselected Mode = iota
	ModePending
	ModeOccupied
)

func (m Mode) String() string {
	switch m {
	case ModePending:
		return "pending"
	case ModeOccupied:
		return "occupied"
	default:
		return "unselected"
	}
}

// Selection is the operator's current cubicle. It caches the last known
// record but is identified only by cubicle name, so every snapshot must be
// passed through Reconcile before the cached copy is trusted.
type Selection struct {
	cubicle parking.Cubicle
	mode    Mode
}

// Select builds a selection from a clicked cubicle. Cubicles without an open
// registration cannot be acted on and yield an empty selection.
func Select(c parking.Cubicle) Selection {
	mode := modeFor(c)
	if mode == ModeUnselected {
		return Selection{}
	}
	return Selection{cubicle: c, mode: mode}
}

// Clear returns the empty selection.
func Clear() Selection {
	return Selection{}
}

// Mode returns the derived action mode.
func (s Selection) Mode() Mode { return s.mode }

// Active reports whether a cubicle is selected.
func (s Selection) Active() bool { return s.mode != ModeUnselected }

// Name returns the selected cubicle name, or "" when nothing is selected.
func (s Selection) Name() string {
	if !s.Active() {
		return ""
	}
	return s.cubicle.Name
}

// Cubicle returns the cached record and whether a selection exists.
func (s Selection) Cubicle() (parking.Cubicle, bool) {
	return s.cubicle, s.Active()
}

// Reconcile re-derives a selection against a fresh snapshot. The cubicle is
// looked up by name; when it is missing or no longer has a registration the
// selection is dropped, otherwise the cached record is replaced wholesale.
func Reconcile(prev Selection, snapshot []parking.Cubicle) Selection {
	if !prev.Active() {
		return Selection{}
	}
	for _, c := range snapshot {
		if c.Name == prev.cubicle.Name {
			return Select(c)
		}
	}
	return Selection{}
}

func modeFor(c parking.Cubicle) Mode {
	if !c.Active() {
		return ModeUnselected
	}
	if c.State == parking.StateOccupied {
		return ModeOccupied
	}
	return ModePending
}
