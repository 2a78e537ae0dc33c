// Package state holds the console's shared and per-view state.
//
// # Store
//
// Store is the hand-off point between the background poller and the UI.
// The poller reserves a sequence number with Begin before each fetch and
// hands the result to Update; the UI reads copies through Snapshot. Fetches
// are never cancelled, so two may be in flight at once. The sequence number
// guarantees that the most recently started fetch wins even when an older
// one returns later.
//
// # Selection
//
// Selection is the operator's current cubicle. It is a value type with no
// exported fields; the only ways to produce one are Select, Clear and
// Reconcile. Reconcile runs on every snapshot:
//
//	absent by name            -> unselected
//	present, no registration  -> unselected
//	present, registration     -> refreshed, mode re-derived
//
// Identity is the cubicle name. The cached record is display data only.
//
// # Forms
//
// PlateEdit and RateForm validate modal input before any request is made
// and return parking.ErrPrecondition failures.
package state
