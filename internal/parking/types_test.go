package parking

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
)

func TestStateLabel(t *testing.T) {
	cases := map[State]string{
		StateFree:     "Libre",
		StateOccupied: "Ocupado",
		StatePending:  "Asignado",
		State("???"):  "Libre",
	}
	for state, want := range cases {
		if got := state.Label(); got != want {
			t.Fatalf("State(%q).Label() = %q, want %q", state, got, want)
		}
	}
}

func TestCubicleType(t *testing.T) {
	tests := []struct {
		name string
		c    Cubicle
		want VehicleType
	}{
		{"explicit car", Cubicle{Name: "B1", VehicleType: VehicleCar}, VehicleCar},
		{"explicit moto lowercase", Cubicle{Name: "A1", VehicleType: "moto"}, VehicleMotorcycle},
		{"prefix A", Cubicle{Name: "A7"}, VehicleCar},
		{"prefix B", Cubicle{Name: "B3"}, VehicleMotorcycle},
		{"unknown prefix", Cubicle{Name: "C1"}, VehicleCar},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Type(); got != tt.want {
				t.Fatalf("Type() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIDUnmarshal(t *testing.T) {
	var payload struct {
		A ID `json:"a"`
		B ID `json:"b"`
		C ID `json:"c"`
	}
	if err := json.Unmarshal([]byte(`{"a":42,"b":" r-9 ","c":null}`), &payload); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	if payload.A != "42" || payload.B != "r-9" || payload.C != "" {
		t.Fatalf("ids = %#v", payload)
	}
}

func TestIDMarshalKeepsNumbersNumeric(t *testing.T) {
	out, err := json.Marshal(struct {
		N   ID `json:"n"`
		S   ID `json:"s"`
		Pad ID `json:"pad"`
		Pos ID `json:"pos"`
		Neg ID `json:"neg"`
	}{"17", "r-9", "007", "+5", "-3"})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if got, want := string(out), `{"n":17,"s":"r-9","pad":"007","pos":"+5","neg":-3}`; got != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}

func TestIDRoundTripsLeadingZeros(t *testing.T) {
	var in struct {
		ID ID `json:"registro_id"`
	}
	if err := json.Unmarshal([]byte(`{"registro_id":"007"}`), &in); err != nil {
		t.Fatalf("Unmarshal returned error: %v", err)
	}
	out, err := json.Marshal(map[string]ID{"registro_id": in.ID})
	if err != nil {
		t.Fatalf("Marshal returned error: %v", err)
	}
	if got, want := string(out), `{"registro_id":"007"}`; got != want {
		t.Fatalf("Marshal = %s, want %s", got, want)
	}
}

func TestClassifyAndMessage(t *testing.T) {
	if Classify(nil) != KindNone || Message(nil) != "" {
		t.Fatalf("nil error should classify as none")
	}
	pre := Precondition("ID de registro o placa no válida.")
	if Classify(pre) != KindPrecondition {
		t.Fatalf("Classify(precondition) = %v", Classify(pre))
	}
	wrapped := errors.Wrap(Rejected("Cubículo no encontrado"), "cancel reservation")
	if got := Message(wrapped); got != "Cubículo no encontrado" {
		t.Fatalf("Message = %q, want rejection text", got)
	}
	if Classify(errors.New("other")) != KindUnknown {
		t.Fatalf("plain error should be unknown")
	}
}
