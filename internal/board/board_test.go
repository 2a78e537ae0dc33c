package board

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lotwatch/internal/parking"
	"github.com/five82/lotwatch/internal/state"
)

func ptr(v float64) *float64 { return &v }

func sampleSnapshot() []parking.Cubicle {
	return []parking.Cubicle{
		{Name: "A1", State: parking.StateOccupied, RegistrationID: "42", Plate: "ABC123", ElapsedMinutes: ptr(90), CurrentCharge: ptr(3000)},
		{Name: "B1", State: parking.StatePending, RegistrationID: "43", Plate: "MOT12A"},
		{Name: "A2", State: parking.StateFree},
		{Name: "B2", State: parking.StateFree},
	}
}

func TestBuildGridPartitionsBySlotPrefix(t *testing.T) {
	groups := BuildGrid(sampleSnapshot(), "")
	require.Len(t, groups, 2)

	type tileView struct {
		Name, Label, Plate, IconPath string
	}
	got := make(map[string][]tileView)
	for _, g := range groups {
		for _, tile := range g.Tiles {
			got[g.Title] = append(got[g.Title], tileView{tile.Name, tile.Label, tile.Plate, tile.IconPath})
		}
	}
	want := map[string][]tileView{
		"Cubículos para Carros": {
			{"A1", "Ocupado", "ABC123", "/static/img/icons/carro.svg"},
			{"A2", "Libre", "", "/static/img/icons/carro.svg"},
		},
		"Cubículos para Motos": {
			{"B1", "Asignado", "MOT12A", "/static/img/icons/moto.svg"},
			{"B2", "Libre", "", "/static/img/icons/moto.svg"},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("grid mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildGridKeepsUnderlyingState(t *testing.T) {
	groups := BuildGrid(sampleSnapshot(), "")
	pending := groups[1].Tiles[0]
	assert.Equal(t, "Asignado", pending.Label)
	assert.Equal(t, parking.StatePending, pending.State)
	assert.Equal(t, parking.StatePending, pending.Cubicle.State)
}

func TestBuildGridSlotTypeIgnoresOccupantType(t *testing.T) {
	snap := []parking.Cubicle{{Name: "A9", VehicleType: parking.VehicleMotorcycle, State: parking.StateOccupied}}
	groups := BuildGrid(snap, "")
	require.Len(t, groups[0].Tiles, 1)
	assert.Empty(t, groups[1].Tiles)
}

func TestBuildGridSelectionByName(t *testing.T) {
	snap := sampleSnapshot()
	groups := BuildGrid(snap, "B1")

	var selected []string
	for _, tile := range Flatten(groups) {
		if tile.Selected {
			selected = append(selected, tile.Name)
		}
	}
	assert.Equal(t, []string{"B1"}, selected)
	assert.Equal(t, 2, IndexOf(groups, "B1"))
	assert.Equal(t, -1, IndexOf(groups, "Z1"))
	assert.Equal(t, -1, IndexOf(groups, ""))
}

func TestBuildGridIdempotent(t *testing.T) {
	snap := sampleSnapshot()
	first := BuildGrid(snap, "A1")
	second := BuildGrid(snap, "A1")
	if diff := cmp.Diff(first, second, cmpopts.EquateEmpty()); diff != "" {
		t.Fatalf("grid not idempotent (-first +second):\n%s", diff)
	}
}

func TestBuildDetailOccupied(t *testing.T) {
	sel := state.Select(sampleSnapshot()[0])
	d := BuildDetail(sel)

	assert.Equal(t, "Detalles de Cubículo: A1", d.Title)
	assert.Equal(t, "ABC123", d.Plate)
	assert.Equal(t, "42", d.RegistrationID)
	assert.Equal(t, "90 minutos (1.5 horas)", d.Elapsed)
	assert.Equal(t, "$ 3.000", d.Charge)
	assert.True(t, d.ShowCharge)
	assert.Equal(t, []Action{ActionFinalize, ActionPrint}, d.Actions)
	assert.False(t, d.Has(ActionCancel))
}

func TestBuildDetailPending(t *testing.T) {
	sel := state.Select(sampleSnapshot()[1])
	d := BuildDetail(sel)

	assert.Equal(t, state.ModePending, d.Mode)
	assert.False(t, d.ShowCharge)
	assert.Empty(t, d.Charge)
	assert.Equal(t, []Action{ActionCancel, ActionPrint}, d.Actions)
	assert.Equal(t, "N/A", d.EntryTime)
}

func TestBuildDetailUnselected(t *testing.T) {
	d := BuildDetail(state.Clear())
	assert.Equal(t, state.ModeUnselected, d.Mode)
	assert.Empty(t, d.Actions)
	assert.Empty(t, d.Title)
	assert.NotEmpty(t, d.Hint)
}

func TestBuildDetailPlateFallback(t *testing.T) {
	c := parking.Cubicle{Name: "A3", State: parking.StatePending, RegistrationID: "9"}
	assert.Equal(t, "N/A", BuildDetail(state.Select(c)).Plate)
}

func TestElapsedText(t *testing.T) {
	assert.Equal(t, "N/A", ElapsedText(nil))
	assert.Equal(t, "0 minutos (0.0 horas)", ElapsedText(ptr(0)))
	assert.Equal(t, "125 minutos (2.1 horas)", ElapsedText(ptr(125)))
}

func TestFinalizeMessage(t *testing.T) {
	msg := FinalizeMessage(parking.FinalizeResult{Success: true, Amount: 5000, Minutes: 120})
	assert.Equal(t, "Cobro finalizado. Monto total: $ 5.000 por 120 minutos.", msg)
}
