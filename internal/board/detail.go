package board

import (
	"fmt"
	"math"
	"strings"

	"github.com/five82/lotwatch/internal/currency"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

// Action is an operation offered by the detail panel.
type Action int

const (
	ActionFinalize Action = iota
	ActionCancel
	ActionPrint
)

// Label returns the button text.
func (a Action) Label() string {
	switch a {
	case ActionFinalize:
		return "Finalizar cobro"
	case ActionCancel:
		return "Cancelar asignación"
	case ActionPrint:
		return "Imprimir ticket"
	default:
		return ""
	}
}

const (
	notAvailable   = "N/A"
	unselectedHint = "Seleccione un cubículo"
)

// Detail is the detail panel for the current selection.
type Detail struct {
	Mode           state.Mode
	Title          string
	Plate          string
	RegistrationID string
	EntryTime      string
	Elapsed        string
	Charge         string
	ShowCharge     bool
	CanEditPlate   bool
	Actions        []Action
	Hint           string
}

// BuildDetail renders the panel for sel. An empty selection produces a
// panel with no actions and only a hint.
func BuildDetail(sel state.Selection) Detail {
	c, ok := sel.Cubicle()
	if !ok {
		return Detail{Mode: state.ModeUnselected, Hint: unselectedHint}
	}

	d := Detail{
		Mode:           sel.Mode(),
		Title:          "Detalles de Cubículo: " + c.Name,
		Plate:          orNA(c.Plate),
		RegistrationID: c.RegistrationID.String(),
		EntryTime:      orNA(c.EntryTimestamp),
		CanEditPlate:   true,
	}

	switch sel.Mode() {
	case state.ModeOccupied:
		d.ShowCharge = true
		d.Elapsed = ElapsedText(c.ElapsedMinutes)
		d.Charge = currency.Format(c.CurrentCharge)
		d.Actions = []Action{ActionFinalize, ActionPrint}
	case state.ModePending:
		d.Actions = []Action{ActionCancel, ActionPrint}
	}
	return d
}

// Has reports whether the panel offers action a.
func (d Detail) Has(a Action) bool {
	for _, got := range d.Actions {
		if got == a {
			return true
		}
	}
	return false
}

// ElapsedText renders minutes as "90 minutos (1.5 horas)".
func ElapsedText(minutes *float64) string {
	if minutes == nil {
		return notAvailable
	}
	m := int(math.Round(*minutes))
	return fmt.Sprintf("%d minutos (%.1f horas)", m, float64(m)/60)
}

// FinalizeMessage is the confirmation shown after a charge is closed.
func FinalizeMessage(res parking.FinalizeResult) string {
	return fmt.Sprintf("Cobro finalizado. Monto total: %s por %d minutos.",
		currency.FormatAmount(res.Amount), int(math.Round(res.Minutes)))
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return notAvailable
	}
	return s
}
