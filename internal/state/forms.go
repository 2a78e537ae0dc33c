package state

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/five82/lotwatch/internal/parking"
)

const invalidPlateMessage = "ID de registro o placa no válida."

// NormalizePlate trims and uppercases a plate as typed by the operator.
func NormalizePlate(raw string) string {
	return cases.Upper(language.Spanish).String(strings.TrimSpace(raw))
}

// PlateEdit validates the plate modal input. Both the registration id and the
// normalized plate must be non-empty; no request is made otherwise.
func PlateEdit(registrationID parking.ID, raw string) (parking.ID, string, error) {
	id := parking.ID(strings.TrimSpace(string(registrationID)))
	plate := NormalizePlate(raw)
	if id == "" || plate == "" {
		return "", "", parking.Precondition(invalidPlateMessage)
	}
	return id, plate, nil
}

// RateForm parses the rate modal fields for one vehicle type.
func RateForm(vt parking.VehicleType, firstHour, subsequent string) (parking.Rate, error) {
	first, err := parseAmount(firstHour)
	if err != nil {
		return parking.Rate{}, parking.Precondition("Tarifa de primera hora no válida.")
	}
	next, err := parseAmount(subsequent)
	if err != nil {
		return parking.Rate{}, parking.Precondition("Tarifa de hora subsiguiente no válida.")
	}
	return parking.Rate{VehicleType: vt, FirstHourRate: first, SubsequentHourRate: next}, nil
}

func parseAmount(raw string) (float64, error) {
	cleaned := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(raw), "$"))
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
