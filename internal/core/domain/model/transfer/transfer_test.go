package transfer_test

import (
	"testing"

	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload(t *testing.T) transfer.Payload {
	t.Helper()
	line, err := transfer.NewLine("SKU-1", "Sparkling Water 500ml", 12)
	require.NoError(t, err)
	payload, err := transfer.NewPayload([]transfer.Line{line})
	require.NoError(t, err)
	return payload
}

func newTestTransfer(t *testing.T) *transfer.Transfer {
	t.Helper()
	org, err := kernel.NewOrgID("org-1")
	require.NoError(t, err)

	tr, err := transfer.NewTransfer(
		kernel.NewUUID(), org, "TX-001",
		kernel.NewUUID(), kernel.NewUUID(),
		testPayload(t),
	)
	require.NoError(t, err)
	return tr
}

func TestNewTransfer(t *testing.T) {
	t.Run("starts_in_created_state", func(t *testing.T) {
		tr := newTestTransfer(t)

		require.NoError(t, tr.Validate())
		assert.Equal(t, transfer.StateCreated, tr.State())
		assert.False(t, tr.HasDiscrepancy())
		assert.Equal(t, "TX-001", tr.ExternalID())
	})

	t.Run("rejects_empty_external_id", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-1")
		require.NoError(t, err)

		_, err = transfer.NewTransfer(kernel.NewUUID(), org, "",
			kernel.NewUUID(), kernel.NewUUID(), testPayload(t))
		require.Error(t, err)
	})

	t.Run("rejects_same_origin_and_destination", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-1")
		require.NoError(t, err)
		loc := kernel.NewUUID()

		_, err = transfer.NewTransfer(kernel.NewUUID(), org, "TX-001", loc, loc, testPayload(t))
		require.Error(t, err)
	})

	t.Run("rejects_empty_payload", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-1")
		require.NoError(t, err)

		_, err = transfer.NewTransfer(kernel.NewUUID(), org, "TX-001",
			kernel.NewUUID(), kernel.NewUUID(), transfer.Payload{})
		require.Error(t, err)
	})
}

func TestTransfer_Validate(t *testing.T) {
	t.Run("zero_value_is_invalid", func(t *testing.T) {
		var tr transfer.Transfer
		require.ErrorIs(t, tr.Validate(), transfer.ErrTransferIsNotConstructed)
	})

	t.Run("nil_transfer_is_invalid", func(t *testing.T) {
		var tr *transfer.Transfer
		require.ErrorIs(t, tr.Validate(), transfer.ErrTransferIsNotConstructed)
	})
}

func TestTransfer_Advance_ValidTransition(t *testing.T) {
	tr := newTestTransfer(t)

	outcome, err := tr.Advance(transfer.ActionCreateSeparationMap)

	require.NoError(t, err)
	assert.Equal(t, transfer.StateCreated, outcome.From)
	assert.Equal(t, transfer.StateSeparationMapCreated, outcome.To)
	assert.False(t, outcome.Duplicate)
	assert.Equal(t, transfer.MovementNone, outcome.Movement)
	assert.Equal(t, transfer.StateSeparationMapCreated, tr.State())
}

func TestTransfer_Advance_DuplicateIsNoop(t *testing.T) {
	tr := newTestTransfer(t)
	_, err := tr.Advance(transfer.ActionCreateSeparationMap)
	require.NoError(t, err)

	outcome, err := tr.Advance(transfer.ActionCreateSeparationMap)

	require.NoError(t, err)
	assert.True(t, outcome.Duplicate)
	assert.Equal(t, transfer.StateSeparationMapCreated, outcome.From)
	assert.Equal(t, transfer.StateSeparationMapCreated, outcome.To)
	assert.Equal(t, transfer.MovementNone, outcome.Movement)
	assert.Equal(t, transfer.StateSeparationMapCreated, tr.State())
}

func TestTransfer_Advance_OutOfOrderIsRejected(t *testing.T) {
	tr := newTestTransfer(t)
	_, err := tr.Advance(transfer.ActionCreateSeparationMap)
	require.NoError(t, err)

	// SHIPPED_CD skips the whole separation phase.
	_, err = tr.Advance(transfer.ActionShipFromCD)

	require.ErrorIs(t, err, transfer.ErrInvalidTransition)

	var invalidErr *transfer.InvalidTransitionError
	require.ErrorAs(t, err, &invalidErr)
	assert.Equal(t, transfer.StateSeparationMapCreated, invalidErr.From)
	assert.Equal(t, transfer.ActionShipFromCD, invalidErr.Action)
	assert.Equal(t, transfer.StateShippedCD, invalidErr.Target)

	// State is untouched by the rejection.
	assert.Equal(t, transfer.StateSeparationMapCreated, tr.State())
}

func TestTransfer_Advance_CreateIsNeverATransition(t *testing.T) {
	tr := newTestTransfer(t)
	_, err := tr.Advance(transfer.ActionCreateSeparationMap)
	require.NoError(t, err)

	_, err = tr.Advance(transfer.ActionCreate)

	require.ErrorIs(t, err, transfer.ErrInvalidTransition)
}

func TestTransfer_Advance_FullLifecycle(t *testing.T) {
	tr := newTestTransfer(t)

	steps := []struct {
		action   transfer.Action
		state    transfer.State
		movement transfer.MovementKind
	}{
		{transfer.ActionCreateSeparationMap, transfer.StateSeparationMapCreated, transfer.MovementNone},
		{transfer.ActionQueueCDSeparation, transfer.StateAwaitingCDSeparation, transfer.MovementNone},
		{transfer.ActionStartCDSeparation, transfer.StateInCDSeparation, transfer.MovementNone},
		{transfer.ActionFinishCDSeparation, transfer.StateCDSeparatedNoDiscrepancy, transfer.MovementNone},
		{transfer.ActionMoveToPreDock, transfer.StateSeparatedPreDock, transfer.MovementNone},
		{transfer.ActionShipFromCD, transfer.StateShippedCD, transfer.MovementShip},
		{transfer.ActionInvoiceCD, transfer.StateCDInvoiced, transfer.MovementNone},
		{transfer.ActionArriveAtStore, transfer.StateAwaitingStoreVerification, transfer.MovementReceive},
		{transfer.ActionStartStoreVerification, transfer.StateInStoreVerification, transfer.MovementNone},
		{transfer.ActionFinishStoreVerification, transfer.StateStoreVerifiedNoDiscrepancy, transfer.MovementNone},
		{transfer.ActionEffectuate, transfer.StateEffectiveStore, transfer.MovementEffectuate},
	}

	for _, step := range steps {
		outcome, err := tr.Advance(step.action)
		require.NoError(t, err, step.action.String())
		assert.Equal(t, step.state, outcome.To)
		assert.Equal(t, step.movement, outcome.Movement, step.action.String())
	}

	assert.Equal(t, transfer.StateEffectiveStore, tr.State())
	assert.True(t, tr.State().IsTerminal())
	assert.False(t, tr.HasDiscrepancy())
}

func TestTransfer_Advance_DiscrepancySetsFlagWithoutForking(t *testing.T) {
	tr := newTestTransfer(t)
	for _, action := range []transfer.Action{
		transfer.ActionCreateSeparationMap,
		transfer.ActionQueueCDSeparation,
		transfer.ActionStartCDSeparation,
	} {
		_, err := tr.Advance(action)
		require.NoError(t, err)
	}

	outcome, err := tr.Advance(transfer.ActionFinishCDSeparationWithDiscrepancy)
	require.NoError(t, err)
	assert.Equal(t, transfer.StateCDSeparatedWithDiscrepancy, outcome.To)
	assert.True(t, tr.HasDiscrepancy())

	// The discrepancy branch continues to the same canonical next state.
	outcome, err = tr.Advance(transfer.ActionMoveToPreDock)
	require.NoError(t, err)
	assert.Equal(t, transfer.StateSeparatedPreDock, outcome.To)
	assert.True(t, tr.HasDiscrepancy())
}

func TestRestoreTransfer(t *testing.T) {
	t.Run("restores_state_and_discrepancy", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-1")
		require.NoError(t, err)

		tr, err := transfer.RestoreTransfer(
			kernel.NewUUID(), org, "TX-001",
			kernel.NewUUID(), kernel.NewUUID(),
			testPayload(t), transfer.StateShippedCD, true,
		)

		require.NoError(t, err)
		assert.Equal(t, transfer.StateShippedCD, tr.State())
		assert.True(t, tr.HasDiscrepancy())
	})

	t.Run("rejects_invalid_state", func(t *testing.T) {
		org, err := kernel.NewOrgID("org-1")
		require.NoError(t, err)

		_, err = transfer.RestoreTransfer(
			kernel.NewUUID(), org, "TX-001",
			kernel.NewUUID(), kernel.NewUUID(),
			testPayload(t), transfer.StateUnknown, false,
		)
		require.Error(t, err)
	})
}
