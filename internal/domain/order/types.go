package order

// SettlementState is the per-session submission state machine:
// IDLE → SUBMITTING → {CONFIRMED, FAILED}. SUBMITTING is the sole guard
// against duplicate ledger rows from one session, so re-entry while
// SUBMITTING must be rejected by the caller.
type SettlementState string

const (
	StateIdle       SettlementState = "IDLE"
	StateSubmitting SettlementState = "SUBMITTING"
	StateConfirmed  SettlementState = "CONFIRMED"
	StateFailed     SettlementState = "FAILED"
)

func (s SettlementState) String() string {
	return string(s)
}

// Busy reports whether a submission is in flight.
func (s SettlementState) Busy() bool {
	return s == StateSubmitting
}

// CanSubmit reports whether a new submission attempt may start. CONFIRMED and
// FAILED are re-entrant: a customer may submit a new order after either.
func (s SettlementState) CanSubmit() bool {
	return s != StateSubmitting
}

// Status is the lifecycle status stamped on a ledger row. Settlement only
// ever writes PENDING; later transitions happen outside this engine.
type Status string

const (
	StatusPending Status = "PENDING"
)
