package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/lotwatch/internal/parking"
)

func ptr(v float64) *float64 { return &v }

func occupied(name string, id parking.ID) parking.Cubicle {
	return parking.Cubicle{
		Name:           name,
		State:          parking.StateOccupied,
		RegistrationID: id,
		Plate:          "ABC123",
		ElapsedMinutes: ptr(30),
		CurrentCharge:  ptr(3000),
	}
}

func TestSelectDerivesMode(t *testing.T) {
	assert.Equal(t, ModeOccupied, Select(occupied("A1", "7")).Mode())

	pending := parking.Cubicle{Name: "A2", State: parking.StatePending, RegistrationID: "8"}
	assert.Equal(t, ModePending, Select(pending).Mode())

	free := parking.Cubicle{Name: "A3", State: parking.StateFree}
	sel := Select(free)
	assert.Equal(t, ModeUnselected, sel.Mode())
	assert.False(t, sel.Active())
	assert.Empty(t, sel.Name())
}

func TestReconcileClearsWhenMissing(t *testing.T) {
	sel := Select(occupied("A1", "7"))
	got := Reconcile(sel, []parking.Cubicle{occupied("A2", "9")})
	assert.Equal(t, ModeUnselected, got.Mode())
}

func TestReconcileClearsWhenRegistrationGone(t *testing.T) {
	sel := Select(occupied("A1", "7"))
	released := parking.Cubicle{Name: "A1", State: parking.StateFree}
	got := Reconcile(sel, []parking.Cubicle{released})
	assert.False(t, got.Active())
}

func TestReconcileRefreshesFieldsByName(t *testing.T) {
	sel := Select(parking.Cubicle{Name: "A1", State: parking.StatePending, RegistrationID: "7", Plate: "OLD111"})

	fresh := occupied("A1", "7")
	fresh.Plate = "NEW222"
	fresh.ElapsedMinutes = ptr(95)

	got := Reconcile(sel, []parking.Cubicle{occupied("A0", "1"), fresh})
	require.True(t, got.Active())
	assert.Equal(t, ModeOccupied, got.Mode())

	c, ok := got.Cubicle()
	require.True(t, ok)
	assert.Equal(t, "NEW222", c.Plate)
	require.NotNil(t, c.ElapsedMinutes)
	assert.Equal(t, 95.0, *c.ElapsedMinutes)
}

func TestReconcileUnselectedStaysUnselected(t *testing.T) {
	got := Reconcile(Clear(), []parking.Cubicle{occupied("A1", "7")})
	assert.False(t, got.Active())
}

func TestReconcileIsIdempotent(t *testing.T) {
	snapshot := []parking.Cubicle{occupied("A1", "7"), occupied("A2", "8")}
	once := Reconcile(Select(occupied("A1", "7")), snapshot)
	twice := Reconcile(once, snapshot)
	assert.Equal(t, once, twice)
}

func TestClearForcesUnselected(t *testing.T) {
	sel := Select(occupied("A1", "7"))
	require.True(t, sel.Active())
	assert.Equal(t, ModeUnselected, Clear().Mode())
}
