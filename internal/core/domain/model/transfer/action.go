package transfer

import (
	"fmt"

	"transferops/internal/pkg/errs"
)

// Action is an externally triggered command requesting a specific state
// transition on a transfer order. Webhook deliveries name the transition
// they want by its target state; ActionCreate is the only action that does
// not target an existing transfer.
type Action int

const (
	// ActionUnknown represents an invalid or undefined action.
	ActionUnknown Action = iota

	// ActionCreate registers a new transfer order. It requires origin and
	// destination entity references and an order-line payload instead of a
	// transaction external id.
	ActionCreate

	// ActionCreateSeparationMap requests the SEPARATION_MAP_CREATED transition.
	ActionCreateSeparationMap

	// ActionQueueCDSeparation requests the AWAITING_CD_SEPARATION transition.
	ActionQueueCDSeparation

	// ActionStartCDSeparation requests the IN_CD_SEPARATION transition.
	ActionStartCDSeparation

	// ActionFinishCDSeparationWithDiscrepancy requests CD_SEPARATED_WITH_DISCREPANCY.
	ActionFinishCDSeparationWithDiscrepancy

	// ActionFinishCDSeparation requests CD_SEPARATED_NO_DISCREPANCY.
	ActionFinishCDSeparation

	// ActionMoveToPreDock requests the SEPARATED_PRE_DOCK transition.
	ActionMoveToPreDock

	// ActionShipFromCD requests the SHIPPED_CD transition.
	ActionShipFromCD

	// ActionInvoiceCD requests the CD_INVOICED transition.
	ActionInvoiceCD

	// ActionArriveAtStore requests the AWAITING_STORE_VERIFICATION transition.
	ActionArriveAtStore

	// ActionStartStoreVerification requests the IN_STORE_VERIFICATION transition.
	ActionStartStoreVerification

	// ActionFinishStoreVerificationWithDiscrepancy requests STORE_VERIFIED_WITH_DISCREPANCY.
	ActionFinishStoreVerificationWithDiscrepancy

	// ActionFinishStoreVerification requests STORE_VERIFIED_NO_DISCREPANCY.
	ActionFinishStoreVerification

	// ActionEffectuate requests the terminal EFFECTIVE_STORE transition.
	ActionEffectuate
)

// getActionTargetStates is the static action -> state transition table.
// Every action except ActionCreate maps to exactly one target state.
func getActionTargetStates() map[Action]State {
	return map[Action]State{
		ActionCreate:                                 StateCreated,
		ActionCreateSeparationMap:                    StateSeparationMapCreated,
		ActionQueueCDSeparation:                      StateAwaitingCDSeparation,
		ActionStartCDSeparation:                      StateInCDSeparation,
		ActionFinishCDSeparationWithDiscrepancy:      StateCDSeparatedWithDiscrepancy,
		ActionFinishCDSeparation:                     StateCDSeparatedNoDiscrepancy,
		ActionMoveToPreDock:                          StateSeparatedPreDock,
		ActionShipFromCD:                             StateShippedCD,
		ActionInvoiceCD:                              StateCDInvoiced,
		ActionArriveAtStore:                          StateAwaitingStoreVerification,
		ActionStartStoreVerification:                 StateInStoreVerification,
		ActionFinishStoreVerificationWithDiscrepancy: StateStoreVerifiedWithDiscrepancy,
		ActionFinishStoreVerification:                StateStoreVerifiedNoDiscrepancy,
		ActionEffectuate:                             StateEffectiveStore,
	}
}

// ActionFromString parses an action from its wire name. On the wire an
// action is named after the state it targets ("SEPARATION_MAP_CREATED",
// "SHIPPED_CD", ...), with "CREATE" as the one exception.
func ActionFromString(s string) (Action, error) {
	if s == "CREATE" {
		return ActionCreate, nil
	}

	state, err := StateFromString(s)
	if err != nil {
		return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%q is not a valid action", s),
		)
	}

	for action, target := range getActionTargetStates() {
		if action != ActionCreate && target == state {
			return action, nil
		}
	}

	// StateCreated is only reachable via CREATE, never by name.
	return ActionUnknown, errs.NewValueIsInvalidErrorWithCause(
		"action",
		fmt.Errorf("%q is not a valid action", s),
	)
}

// Validate checks if the Action value is one of the enumerated actions.
func (a Action) Validate() error {
	if _, ok := getActionTargetStates()[a]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%d is not a valid action", a),
		)
	}
	return nil
}

// String returns the wire name of the action.
// Implements fmt.Stringer; safe to call on invalid values.
func (a Action) String() string {
	if a == ActionCreate {
		return "CREATE"
	}
	if target, ok := getActionTargetStates()[a]; ok {
		return target.String()
	}
	return "UNKNOWN"
}

// TargetState returns the state this action requests.
// Returns an error for invalid actions.
func (a Action) TargetState() (State, error) {
	target, ok := getActionTargetStates()[a]
	if !ok {
		return StateUnknown, errs.NewValueIsInvalidErrorWithCause(
			"action",
			fmt.Errorf("%d is not a valid action", a),
		)
	}
	return target, nil
}

// IsCreate reports whether this is the initial registration action.
func (a Action) IsCreate() bool {
	return a == ActionCreate
}

// MovementKind identifies a physical stock movement triggered by a
// transition that crosses a movement boundary.
type MovementKind int

const (
	// MovementNone means the transition moves no stock.
	MovementNone MovementKind = iota

	// MovementShip decrements on-hand stock at the origin and raises
	// in-transit quantity. Triggered by SHIPPED_CD.
	MovementShip

	// MovementReceive settles in-transit quantity into on-hand stock at the
	// destination. Triggered by AWAITING_STORE_VERIFICATION.
	MovementReceive

	// MovementEffectuate marks received stock effective (sellable) at the
	// destination. Triggered by EFFECTIVE_STORE.
	MovementEffectuate
)

// String returns the movement kind name for logging.
func (k MovementKind) String() string {
	switch k {
	case MovementShip:
		return "SHIP"
	case MovementReceive:
		return "RECEIVE"
	case MovementEffectuate:
		return "EFFECTUATE"
	default:
		return "NONE"
	}
}

// MovementForState returns the physical movement a transition into the given
// state triggers, or MovementNone for states inside the same site.
func MovementForState(s State) MovementKind {
	switch s {
	case StateShippedCD:
		return MovementShip
	case StateAwaitingStoreVerification:
		return MovementReceive
	case StateEffectiveStore:
		return MovementEffectuate
	default:
		return MovementNone
	}
}
