package transfer

import (
	"fmt"

	"transferops/internal/pkg/errs"
)

// State represents the lifecycle state of a transfer order.
// It implements a strict state machine: each state is reachable only from its
// immediate predecessor(s), never by skipping ahead, and never backwards.
//
// State graph:
//
//	CREATED
//	  └─> SEPARATION_MAP_CREATED
//	        └─> AWAITING_CD_SEPARATION
//	              └─> IN_CD_SEPARATION
//	                    ├─> CD_SEPARATED_WITH_DISCREPANCY ──┐
//	                    └─> CD_SEPARATED_NO_DISCREPANCY ────┤
//	                                                        └─> SEPARATED_PRE_DOCK
//	                                                              └─> SHIPPED_CD
//	                                                                    └─> CD_INVOICED
//	                                                                          └─> AWAITING_STORE_VERIFICATION
//	                                                                                └─> IN_STORE_VERIFICATION
//	                                                                                      ├─> STORE_VERIFIED_WITH_DISCREPANCY ──┐
//	                                                                                      └─> STORE_VERIFIED_NO_DISCREPANCY ────┤
//	                                                                                                                            └─> EFFECTIVE_STORE
//
// The two discrepancy/no-discrepancy pairs are sibling outcomes of the same
// step: both proceed to the next canonical state. A discrepancy is recorded
// as a flag on the transfer and its event, not as a fork in the flow.
type State int

const (
	// StateUnknown represents an invalid or undefined state.
	// This value (0) helps catch uninitialized State values.
	StateUnknown State = iota

	// StateCreated is the initial state when a transfer order is registered.
	StateCreated

	// StateSeparationMapCreated means the picking map for the order has been
	// generated at the distribution center.
	StateSeparationMapCreated

	// StateAwaitingCDSeparation means the order is queued for picking.
	StateAwaitingCDSeparation

	// StateInCDSeparation means picking is in progress at the distribution center.
	StateInCDSeparation

	// StateCDSeparatedWithDiscrepancy means picking finished with a quantity
	// mismatch against the order lines.
	StateCDSeparatedWithDiscrepancy

	// StateCDSeparatedNoDiscrepancy means picking finished clean.
	StateCDSeparatedNoDiscrepancy

	// StateSeparatedPreDock means the separated goods are staged at the dock.
	StateSeparatedPreDock

	// StateShippedCD means the goods have left the distribution center.
	// This state crosses a physical-movement boundary.
	StateShippedCD

	// StateCDInvoiced means the fiscal invoice for the shipment was issued.
	StateCDInvoiced

	// StateAwaitingStoreVerification means the goods arrived at the store and
	// await check-in. This state crosses a physical-movement boundary.
	StateAwaitingStoreVerification

	// StateInStoreVerification means store check-in is in progress.
	StateInStoreVerification

	// StateStoreVerifiedWithDiscrepancy means check-in finished with a
	// quantity mismatch against the invoice.
	StateStoreVerifiedWithDiscrepancy

	// StateStoreVerifiedNoDiscrepancy means check-in finished clean.
	StateStoreVerifiedNoDiscrepancy

	// StateEffectiveStore is the terminal state: stock is effective at the
	// store and sellable. This state crosses a physical-movement boundary.
	StateEffectiveStore
)

func getStateStrings() map[State]string {
	return map[State]string{
		StateUnknown:                      "UNKNOWN",
		StateCreated:                      "CREATED",
		StateSeparationMapCreated:         "SEPARATION_MAP_CREATED",
		StateAwaitingCDSeparation:         "AWAITING_CD_SEPARATION",
		StateInCDSeparation:               "IN_CD_SEPARATION",
		StateCDSeparatedWithDiscrepancy:   "CD_SEPARATED_WITH_DISCREPANCY",
		StateCDSeparatedNoDiscrepancy:     "CD_SEPARATED_NO_DISCREPANCY",
		StateSeparatedPreDock:             "SEPARATED_PRE_DOCK",
		StateShippedCD:                    "SHIPPED_CD",
		StateCDInvoiced:                   "CD_INVOICED",
		StateAwaitingStoreVerification:    "AWAITING_STORE_VERIFICATION",
		StateInStoreVerification:          "IN_STORE_VERIFICATION",
		StateStoreVerifiedWithDiscrepancy: "STORE_VERIFIED_WITH_DISCREPANCY",
		StateStoreVerifiedNoDiscrepancy:   "STORE_VERIFIED_NO_DISCREPANCY",
		StateEffectiveStore:               "EFFECTIVE_STORE",
	}
}

// getStatePredecessors returns the immediate predecessor set per state.
// A transition into a state is legal only from one of its predecessors.
// The two discrepancy/no-discrepancy sibling pairs share successors, which is
// the only place the graph widens.
func getStatePredecessors() map[State][]State {
	return map[State][]State{
		StateSeparationMapCreated:         {StateCreated},
		StateAwaitingCDSeparation:         {StateSeparationMapCreated},
		StateInCDSeparation:               {StateAwaitingCDSeparation},
		StateCDSeparatedWithDiscrepancy:   {StateInCDSeparation},
		StateCDSeparatedNoDiscrepancy:     {StateInCDSeparation},
		StateSeparatedPreDock:             {StateCDSeparatedWithDiscrepancy, StateCDSeparatedNoDiscrepancy},
		StateShippedCD:                    {StateSeparatedPreDock},
		StateCDInvoiced:                   {StateShippedCD},
		StateAwaitingStoreVerification:    {StateCDInvoiced},
		StateInStoreVerification:          {StateAwaitingStoreVerification},
		StateStoreVerifiedWithDiscrepancy: {StateInStoreVerification},
		StateStoreVerifiedNoDiscrepancy:   {StateInStoreVerification},
		StateEffectiveStore:               {StateStoreVerifiedWithDiscrepancy, StateStoreVerifiedNoDiscrepancy},
	}
}

// StateFromString parses a state from its canonical wire name.
func StateFromString(s string) (State, error) {
	for state, str := range getStateStrings() {
		if state != StateUnknown && str == s {
			return state, nil
		}
	}
	return StateUnknown, errs.NewValueIsInvalidErrorWithCause(
		"state",
		fmt.Errorf("%q is not a valid transfer state", s),
	)
}

// Validate checks if the State value is one of the lifecycle states.
func (s State) Validate() error {
	if s == StateUnknown {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%d is not a valid transfer state", s),
		)
	}
	if _, ok := getStateStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"state",
			fmt.Errorf("%d is not a valid transfer state", s),
		)
	}
	return nil
}

// String returns the canonical wire name of the state.
// Implements fmt.Stringer; safe to call on invalid values.
func (s State) String() string {
	if str, ok := getStateStrings()[s]; ok {
		return str
	}
	return "UNKNOWN"
}

// CanAdvanceTo reports whether target is an immediate successor of s.
// This is the single source of truth for the ordering check: anything that
// is not one step forward along the graph is an invalid transition.
func (s State) CanAdvanceTo(target State) bool {
	for _, predecessor := range getStatePredecessors()[target] {
		if predecessor == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the state has no successors.
func (s State) IsTerminal() bool {
	return s == StateEffectiveStore
}

// HasDiscrepancy reports whether the state records a quantity mismatch.
// Discrepancy states are sibling outcomes, not dead ends; the flag is
// carried on the transfer and the event.
func (s State) HasDiscrepancy() bool {
	return s == StateCDSeparatedWithDiscrepancy || s == StateStoreVerifiedWithDiscrepancy
}
