package parking

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// State is the occupancy state reported by the backend for a cubicle.
type State string

const (
	StateFree     State = "Libre"
	StateOccupied State = "Ocupado"
	StatePending  State = "Pendiente"
)

// Label returns the operator-facing label. A pending cubicle is shown as
// "Asignado"; unknown states fall back to "Libre".
func (s State) Label() string {
	switch s {
	case StatePending:
		return "Asignado"
	case StateOccupied:
		return "Ocupado"
	default:
		return "Libre"
	}
}

// VehicleType distinguishes car and motorcycle slots and rate tables.
type VehicleType string

const (
	VehicleCar        VehicleType = "CARRO"
	VehicleMotorcycle VehicleType = "MOTO"
)

// VehicleTypes lists the supported types in display order.
func VehicleTypes() []VehicleType {
	return []VehicleType{VehicleCar, VehicleMotorcycle}
}

// DisplayName returns the short human label for the type.
func (v VehicleType) DisplayName() string {
	switch v {
	case VehicleCar:
		return "Carro"
	case VehicleMotorcycle:
		return "Moto"
	default:
		return string(v)
	}
}

// TypeFromName infers the vehicle type from the cubicle naming convention:
// names starting with "B" are motorcycle slots, everything else is a car slot.
func TypeFromName(name string) VehicleType {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(name)), "B") {
		return VehicleMotorcycle
	}
	return VehicleCar
}

// ID is an opaque registration identifier. The backend emits it as a JSON
// number, but strings are accepted so the client never depends on its type.
type ID string

// UnmarshalJSON accepts numbers, strings and null.
func (id *ID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*id = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// MarshalJSON emits numeric ids as numbers so the backend can use them
// directly as row keys. Only canonical decimal forms are emitted bare;
// "007" or "+5" stay quoted since they are not valid JSON numbers.
func (id ID) MarshalJSON() ([]byte, error) {
	if id == "" {
		return []byte("null"), nil
	}
	if n, err := strconv.ParseInt(string(id), 10, 64); err == nil && strconv.FormatInt(n, 10) == string(id) {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// String implements fmt.Stringer.
func (id ID) String() string { return string(id) }

// Cubicle is one parking slot as reported by /api/estado_parqueadero.
type Cubicle struct {
	Name           string      `json:"nombre"`
	State          State       `json:"estado"`
	VehicleType    VehicleType `json:"tipo_vehiculo,omitempty"`
	Plate          string      `json:"placa,omitempty"`
	RegistrationID ID          `json:"registro_id,omitempty"`
	EntryTimestamp string      `json:"hora_ingreso,omitempty"`
	ElapsedMinutes *float64    `json:"tiempo_minutos,omitempty"`
	CurrentCharge  *float64    `json:"cobro_actual,omitempty"`
}

// Type returns the explicit vehicle type when present, falling back to the
// name prefix.
func (c Cubicle) Type() VehicleType {
	switch VehicleType(strings.ToUpper(strings.TrimSpace(string(c.VehicleType)))) {
	case VehicleCar:
		return VehicleCar
	case VehicleMotorcycle:
		return VehicleMotorcycle
	}
	return TypeFromName(c.Name)
}

// SlotType is the kind of slot encoded in the cubicle name. It decides the
// grid group and icon regardless of what vehicle currently occupies it.
func (c Cubicle) SlotType() VehicleType {
	return TypeFromName(c.Name)
}

// Active reports whether the cubicle has an open registration.
func (c Cubicle) Active() bool {
	return strings.TrimSpace(string(c.RegistrationID)) != ""
}

// Rate is the tariff for one vehicle type.
type Rate struct {
	VehicleType        VehicleType `json:"tipo"`
	FirstHourRate      float64     `json:"tarifa_primera_hora"`
	SubsequentHourRate float64     `json:"tarifa_hora_subsiguiente"`
}

// CubicleRates is the tariff applicable to a single cubicle.
type CubicleRates struct {
	VehicleType VehicleType `json:"tipo"`
	FirstHour   float64     `json:"primera_hora"`
	Subsequent  float64     `json:"subsiguiente"`
}

// ActionResult is the backend acknowledgement for simple mutations.
type ActionResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// FinalizeResult is returned when a charge is closed.
type FinalizeResult struct {
	Success bool    `json:"success"`
	Message string  `json:"message"`
	Amount  float64 `json:"monto"`
	Minutes float64 `json:"minutos"`
}

// HistoryEntry is one closed registration in a report.
type HistoryEntry struct {
	ID           ID          `json:"id"`
	Cubicle      string      `json:"cubiculo"`
	Plate        string      `json:"placa"`
	EntryTime    string      `json:"hora_ingreso"`
	ExitTime     string      `json:"hora_salida"`
	TotalMinutes float64     `json:"tiempo_total_minutos"`
	Amount       float64     `json:"monto_cobrado"`
	VehicleType  VehicleType `json:"tipo_vehiculo"`
}

// TypeTotal aggregates charges for one vehicle type.
type TypeTotal struct {
	Amount float64 `json:"total_cobrado"`
	Count  int     `json:"cantidad"`
}

// Report is the history summary returned by /api/reporte.
type Report struct {
	History []HistoryEntry            `json:"historial"`
	Total   float64                   `json:"sumatoria_total"`
	ByType  map[VehicleType]TypeTotal `json:"conteo_tipos"`
}
