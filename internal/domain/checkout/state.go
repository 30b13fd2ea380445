package checkout

// State represents the checkout progression of a cart. Steps are strictly
// ordered: an address must be attached before a carrier can be selected, a
// carrier before a payment method, and a payment method before commit.
type State string

const (
	StateEmpty         State = "EMPTY"
	StateAddressSet    State = "ADDRESS_SET"
	StateCarrierSet    State = "CARRIER_SET"
	StatePaymentChosen State = "PAYMENT_CHOSEN"
	StateCommitted     State = "COMMITTED"
)

// IsValid checks if the state is a valid checkout State
func (s State) IsValid() bool {
	switch s {
	case StateEmpty, StateAddressSet, StateCarrierSet, StatePaymentChosen, StateCommitted:
		return true
	}
	return false
}

// String returns the string representation of State
func (s State) String() string {
	return string(s)
}

// CanTransitionTo checks if the state can transition to the target state.
// Re-entering the current state is always allowed: re-submitting a step with
// the same payload is an idempotent no-op, and a changed earlier step rolls
// the cart back to that step's resulting state.
func (s State) CanTransitionTo(target State) bool {
	if s == target {
		return s != StateCommitted // commit is terminal, never re-entrant
	}
	switch s {
	case StateEmpty:
		return target == StateAddressSet
	case StateAddressSet:
		return target == StateEmpty || target == StateCarrierSet
	case StateCarrierSet:
		return target == StateEmpty || target == StateAddressSet || target == StatePaymentChosen
	case StatePaymentChosen:
		return target != StatePaymentChosen // may commit, or fall back to any earlier step
	case StateCommitted:
		return false // terminal
	}
	return false
}

// AtLeast reports whether the checkout has progressed to (or past) the given
// step.
func (s State) AtLeast(step State) bool {
	return stateRank(s) >= stateRank(step)
}

func stateRank(s State) int {
	switch s {
	case StateEmpty:
		return 0
	case StateAddressSet:
		return 1
	case StateCarrierSet:
		return 2
	case StatePaymentChosen:
		return 3
	case StateCommitted:
		return 4
	}
	return -1
}
