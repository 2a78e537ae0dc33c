// Package voucher builds and outputs the entry ticket for a selected cubicle.
package voucher

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/five82/lotwatch/internal/currency"
	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

const (
	placeholder = "N/A"
	lineWidth   = 32

	noSelectionMessage = "Seleccione un cubículo ocupado o asignado para imprimir el ticket."
)

// Voucher is the printable entry ticket.
type Voucher struct {
	TicketNumber string
	Plate        string
	Cubicle      string
	VehicleType  parking.VehicleType
	EntryDate    string
	EntryTime    string
	FirstHour    string
	Subsequent   string
}

// Build assembles the ticket for the selected cubicle. rates may be nil when
// the per-cubicle lookup failed, in which case the tariff lines carry a
// placeholder.
func Build(sel state.Selection, rates *parking.CubicleRates) (Voucher, error) {
	c, ok := sel.Cubicle()
	if !ok || !c.Active() {
		return Voucher{}, parking.Precondition(noSelectionMessage)
	}

	v := Voucher{
		TicketNumber: orPlaceholder(c.RegistrationID.String()),
		Plate:        orPlaceholder(c.Plate),
		Cubicle:      c.Name,
		VehicleType:  c.Type(),
		EntryDate:    placeholder,
		EntryTime:    placeholder,
		FirstHour:    placeholder,
		Subsequent:   placeholder,
	}
	if entry := strings.Fields(c.EntryTimestamp); len(entry) > 0 {
		v.EntryDate = entry[0]
		if len(entry) > 1 {
			v.EntryTime = entry[1]
		}
	}
	if rates != nil {
		v.FirstHour = currency.FormatAmount(rates.FirstHour)
		v.Subsequent = currency.FormatAmount(rates.Subsequent)
	}
	return v, nil
}

// Entry returns the combined entry date and time.
func (v Voucher) Entry() string {
	if v.EntryTime == placeholder {
		return v.EntryDate
	}
	return v.EntryDate + " " + v.EntryTime
}

// Lines returns the ticket body, one printed line per entry.
func (v Voucher) Lines() []string {
	rule := strings.Repeat("-", lineWidth)
	return []string{
		center("PARQUEADERO INTELIGENTE"),
		center("TICKET DE ENTRADA"),
		rule,
		"TICKET N°: " + v.TicketNumber,
		"PLACA: " + v.Plate,
		"CUBÍCULO ASIGNADO: " + v.Cubicle,
		"TIPO: " + string(v.VehicleType),
		"",
		"HORA INGRESO: " + v.Entry(),
		rule,
		center("TARIFAS"),
		"1ª Hora: " + v.FirstHour,
		"Subsiguiente: " + v.Subsequent + "/hr",
		rule,
		center("¡GRACIAS POR SU VISITA!"),
	}
}

// Text renders the ticket as plain text.
func (v Voucher) Text() string {
	return strings.Join(v.Lines(), "\n") + "\n"
}

// Filename is the suggested base name for saved copies of the ticket.
func (v Voucher) Filename(ext string) string {
	name := strings.NewReplacer("/", "-", " ", "_").Replace(v.Cubicle)
	return fmt.Sprintf("ticket-%s-%s.%s", name, v.TicketNumber, strings.TrimPrefix(ext, "."))
}

func center(s string) string {
	n := utf8.RuneCountInString(s)
	if n >= lineWidth {
		return s
	}
	return strings.Repeat(" ", (lineWidth-n)/2) + s
}

func orPlaceholder(s string) string {
	if strings.TrimSpace(s) == "" {
		return placeholder
	}
	return s
}
