package commands_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"transferops/internal/core/application/usecases/commands"
	"transferops/internal/core/domain/model/entity"
	"transferops/internal/core/domain/model/event"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/stock"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/core/domain/services"
	"transferops/internal/core/ports"
	"transferops/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockEntityRepository struct{ mock.Mock }

func (m *MockEntityRepository) Upsert(ctx context.Context, aggregate *entity.Entity) (*entity.Entity, error) {
	args := m.Called(ctx, aggregate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *MockEntityRepository) GetByNaturalKey(
	ctx context.Context,
	orgID kernel.OrgID,
	entityType entity.Type,
	externalID string,
) (*entity.Entity, error) {
	args := m.Called(ctx, orgID, entityType, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

func (m *MockEntityRepository) Get(ctx context.Context, id kernel.UUID) (*entity.Entity, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Entity), args.Error(1)
}

type MockTransferRepository struct{ mock.Mock }

func (m *MockTransferRepository) Add(ctx context.Context, aggregate *transfer.Transfer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTransferRepository) Update(ctx context.Context, aggregate *transfer.Transfer) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockTransferRepository) GetByExternalID(
	ctx context.Context,
	orgID kernel.OrgID,
	externalID string,
) (*transfer.Transfer, error) {
	args := m.Called(ctx, orgID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) GetAllByOrg(
	ctx context.Context,
	orgID kernel.OrgID,
) ([]*transfer.Transfer, error) {
	args := m.Called(ctx, orgID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*transfer.Transfer), args.Error(1)
}

func (m *MockTransferRepository) GetByExternalIDForUpdate(
	ctx context.Context,
	orgID kernel.OrgID,
	externalID string,
) (*transfer.Transfer, error) {
	args := m.Called(ctx, orgID, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*transfer.Transfer), args.Error(1)
}

type MockEventRepository struct{ mock.Mock }

func (m *MockEventRepository) Add(ctx context.Context, aggregate *event.Event) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

func (m *MockEventRepository) GetByTransfer(
	ctx context.Context,
	transferID kernel.UUID,
) ([]*event.Event, error) {
	args := m.Called(ctx, transferID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

func (m *MockEventRepository) GetByOrgBetween(
	ctx context.Context,
	orgID kernel.OrgID,
	from, to time.Time,
) ([]*event.Event, error) {
	args := m.Called(ctx, orgID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*event.Event), args.Error(1)
}

type MockStockRepository struct{ mock.Mock }

func (m *MockStockRepository) GetForUpdate(
	ctx context.Context,
	orgID kernel.OrgID,
	locationEntityID kernel.UUID,
	sku string,
) (*stock.Level, error) {
	args := m.Called(ctx, orgID, locationEntityID, sku)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stock.Level), args.Error(1)
}

func (m *MockStockRepository) Save(ctx context.Context, aggregate *stock.Level) error {
	args := m.Called(ctx, aggregate)
	return args.Error(0)
}

type MockProcessUoW struct{ mock.Mock }

func (m *MockProcessUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProcessUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProcessUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockProcessUoW) EntityRepository() ports.EntityRepository {
	args := m.Called()
	return args.Get(0).(ports.EntityRepository)
}

func (m *MockProcessUoW) TransferRepository() ports.TransferRepository {
	args := m.Called()
	return args.Get(0).(ports.TransferRepository)
}

func (m *MockProcessUoW) EventRepository() ports.EventRepository {
	args := m.Called()
	return args.Get(0).(ports.EventRepository)
}

func (m *MockProcessUoW) StockRepository() ports.StockRepository {
	args := m.Called()
	return args.Get(0).(ports.StockRepository)
}

type MockProcessUoWFactory struct{ mock.Mock }

func (m *MockProcessUoWFactory) Create() commands.ProcessUoW {
	args := m.Called()
	return args.Get(0).(commands.ProcessUoW)
}

type processHarness struct {
	entityRepo   *MockEntityRepository
	transferRepo *MockTransferRepository
	eventRepo    *MockEventRepository
	stockRepo    *MockStockRepository
	uow          *MockProcessUoW
	factory      *MockProcessUoWFactory
	handler      commands.ProcessActionCommandHandler
}

func newProcessHarness() *processHarness {
	h := &processHarness{
		entityRepo:   new(MockEntityRepository),
		transferRepo: new(MockTransferRepository),
		eventRepo:    new(MockEventRepository),
		stockRepo:    new(MockStockRepository),
		uow:          new(MockProcessUoW),
		factory:      new(MockProcessUoWFactory),
	}

	h.factory.On("Create").Return(h.uow)
	h.uow.On("Begin", mock.Anything).Return(nil)
	h.uow.On("Commit", mock.Anything).Return(nil)
	h.uow.On("Rollback", mock.Anything).Return(nil)
	h.uow.On("EntityRepository").Return(h.entityRepo)
	h.uow.On("TransferRepository").Return(h.transferRepo)
	h.uow.On("EventRepository").Return(h.eventRepo)
	h.uow.On("StockRepository").Return(h.stockRepo)

	h.handler = commands.NewProcessActionCommandHandler(
		h.factory, services.NewStockMovementService())
	return h
}

func restoredTransfer(t *testing.T, orgID kernel.OrgID, state transfer.State) *transfer.Transfer {
	t.Helper()
	tr, err := transfer.RestoreTransfer(
		kernel.NewUUID(), orgID, "TX-001",
		kernel.NewUUID(), kernel.NewUUID(),
		testPayload(t), state, false,
	)
	require.NoError(t, err)
	return tr
}

func createCommand(t *testing.T, orgID kernel.OrgID) commands.ProcessActionCommand {
	t.Helper()
	refs := []commands.EntityRef{
		locationRef(t, "CD-01", "Central DC"),
		locationRef(t, "ST-05", "Store 5"),
	}
	cmd, err := commands.NewProcessActionCommand(
		orgID, transfer.ActionCreate, "TX-001",
		refs, "CD-01", "ST-05", testPayload(t),
		time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		[]byte(`{"action":"CREATE"}`), map[string]string{"source": "erp"},
	)
	require.NoError(t, err)
	return cmd
}

func advanceCommand(t *testing.T, orgID kernel.OrgID, action transfer.Action) commands.ProcessActionCommand {
	t.Helper()
	cmd, err := commands.NewProcessActionCommand(
		orgID, action, "TX-001",
		nil, "", "", transfer.Payload{},
		time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC),
		[]byte(`{}`), nil,
	)
	require.NoError(t, err)
	return cmd
}

func storedLocation(t *testing.T, orgID kernel.OrgID, externalID, name string) *entity.Entity {
	t.Helper()
	stored, err := entity.NewEntity(kernel.NewUUID(), orgID, entity.TypeLocation,
		externalID, name, map[string]string{"kind": "store"})
	require.NoError(t, err)
	return stored
}

func TestProcessActionCommandHandler_Handle_Create(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := createCommand(t, orgID)

	origin := storedLocation(t, orgID, "CD-01", "Central DC")
	destination := storedLocation(t, orgID, "ST-05", "Store 5")

	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(origin, nil).Once()
	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(destination, nil).Once()
	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(nil, errs.NewObjectNotFoundError("transfer", "TX-001")).Once()
	harness.transferRepo.On("Add", ctx, mock.AnythingOfType("*transfer.Transfer")).
		Return(nil).Once()

	var appended *event.Event
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*event.Event)
		}).
		Return(nil).Once()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.Equal(t, transfer.StateCreated, result.PreviousState)
	assert.Equal(t, transfer.StateCreated, result.CurrentState)
	require.NotNil(t, appended)
	assert.Equal(t, transfer.ActionCreate, appended.Action())
	assert.Equal(t, transfer.StateCreated, appended.ToState())
	assert.False(t, appended.HasDiscrepancy())
	assert.Equal(t, appended.ID(), result.EventID)
	harness.uow.AssertCalled(t, "Commit", ctx)
	harness.transferRepo.AssertExpectations(t)
	harness.entityRepo.AssertExpectations(t)
}

func TestProcessActionCommandHandler_Handle_DuplicateCreate(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := createCommand(t, orgID)

	origin := storedLocation(t, orgID, "CD-01", "Central DC")
	destination := storedLocation(t, orgID, "ST-05", "Store 5")
	existing := restoredTransfer(t, orgID, transfer.StateCreated)

	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(origin, nil).Once()
	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(destination, nil).Once()
	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(existing, nil).Once()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.True(t, result.TransferID.IsEqual(existing.ID()))
	harness.transferRepo.AssertNotCalled(t, "Add")
	harness.eventRepo.AssertNotCalled(t, "Add")
}

func TestProcessActionCommandHandler_Handle_CreateOnAdvancedTransfer(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := createCommand(t, orgID)

	origin := storedLocation(t, orgID, "CD-01", "Central DC")
	destination := storedLocation(t, orgID, "ST-05", "Store 5")
	existing := restoredTransfer(t, orgID, transfer.StateShippedCD)

	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(origin, nil).Once()
	harness.entityRepo.On("Upsert", ctx, mock.AnythingOfType("*entity.Entity")).
		Return(destination, nil).Once()
	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(existing, nil).Once()

	_, err := harness.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, transfer.ErrInvalidTransition)
	harness.uow.AssertNotCalled(t, "Commit")
}

func TestProcessActionCommandHandler_Handle_Advance(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionCreateSeparationMap)

	loaded := restoredTransfer(t, orgID, transfer.StateCreated)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()
	harness.transferRepo.On("Update", ctx, loaded).Return(nil).Once()

	var appended *event.Event
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*event.Event)
		}).
		Return(nil).Once()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.False(t, result.Duplicate)
	assert.Equal(t, transfer.StateCreated, result.PreviousState)
	assert.Equal(t, transfer.StateSeparationMapCreated, result.CurrentState)
	assert.Equal(t, transfer.StateSeparationMapCreated, loaded.State())
	require.NotNil(t, appended)
	assert.Equal(t, transfer.StateCreated, appended.FromState())
	assert.Equal(t, transfer.StateSeparationMapCreated, appended.ToState())
	harness.stockRepo.AssertNotCalled(t, "Save")
	harness.uow.AssertCalled(t, "Commit", ctx)
}

func TestProcessActionCommandHandler_Handle_DuplicateAdvance(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionShipFromCD)

	loaded := restoredTransfer(t, orgID, transfer.StateShippedCD)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.True(t, result.Duplicate)
	assert.Equal(t, transfer.StateShippedCD, result.PreviousState)
	assert.Equal(t, transfer.StateShippedCD, result.CurrentState)
	assert.Error(t, result.EventID.Validate())
	harness.transferRepo.AssertNotCalled(t, "Update")
	harness.eventRepo.AssertNotCalled(t, "Add")
	harness.stockRepo.AssertNotCalled(t, "Save")
}

func TestProcessActionCommandHandler_Handle_OutOfOrder(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionShipFromCD)

	loaded := restoredTransfer(t, orgID, transfer.StateCreated)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()

	_, err := harness.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, transfer.ErrInvalidTransition)

	var invalid *transfer.InvalidTransitionError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, transfer.StateCreated, invalid.From)
	assert.Equal(t, transfer.StateShippedCD, invalid.Target)

	assert.Equal(t, transfer.StateCreated, loaded.State())
	harness.transferRepo.AssertNotCalled(t, "Update")
	harness.eventRepo.AssertNotCalled(t, "Add")
	harness.uow.AssertNotCalled(t, "Commit")
}

func TestProcessActionCommandHandler_Handle_UnknownTransfer(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionCreateSeparationMap)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(nil, errs.NewObjectNotFoundError("transfer", "TX-001")).Once()

	_, err := harness.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	harness.uow.AssertNotCalled(t, "Commit")
}

func TestProcessActionCommandHandler_Handle_LockConflict(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionCreateSeparationMap)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(nil, errs.NewConcurrencyConflictError("transfer", "TX-001")).Once()

	_, err := harness.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrConcurrencyConflict)
	harness.uow.AssertNotCalled(t, "Commit")
}

func TestProcessActionCommandHandler_Handle_MovementBoundary(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionShipFromCD)

	loaded := restoredTransfer(t, orgID, transfer.StateSeparatedPreDock)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()
	harness.transferRepo.On("Update", ctx, loaded).Return(nil).Once()
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).Return(nil).Once()

	harness.stockRepo.On("GetForUpdate", ctx, orgID, loaded.OriginEntityID(), "SKU-1").
		Return(nil, errs.NewObjectNotFoundError("stock level", "SKU-1")).Once()
	harness.stockRepo.On("GetForUpdate", ctx, orgID, loaded.DestinationEntityID(), "SKU-1").
		Return(nil, errs.NewObjectNotFoundError("stock level", "SKU-1")).Once()
	harness.stockRepo.On("Save", ctx, mock.AnythingOfType("*stock.Level")).Return(nil).Twice()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, transfer.StateShippedCD, result.CurrentState)
	harness.stockRepo.AssertExpectations(t)
	harness.uow.AssertCalled(t, "Commit", ctx)
}

func TestProcessActionCommandHandler_Handle_SnapshotFailureRollsBackEverything(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionShipFromCD)

	loaded := restoredTransfer(t, orgID, transfer.StateSeparatedPreDock)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()
	harness.transferRepo.On("Update", ctx, loaded).Return(nil).Once()
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).Return(nil).Once()
	harness.stockRepo.On("GetForUpdate", ctx, orgID, loaded.OriginEntityID(), "SKU-1").
		Return(nil, errors.New("database error")).Once()

	_, err := harness.handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.ErrorContains(t, err, "database error")
	harness.uow.AssertNotCalled(t, "Commit")
	harness.uow.AssertCalled(t, "Rollback", ctx)
}

func TestProcessActionCommandHandler_Handle_DiscrepancySibling(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()
	cmd := advanceCommand(t, orgID, transfer.ActionFinishCDSeparationWithDiscrepancy)

	loaded := restoredTransfer(t, orgID, transfer.StateInCDSeparation)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil).Once()
	harness.transferRepo.On("Update", ctx, loaded).Return(nil).Once()

	var appended *event.Event
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).
		Run(func(args mock.Arguments) {
			appended = args.Get(1).(*event.Event)
		}).
		Return(nil).Once()

	result, err := harness.handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, transfer.StateCDSeparatedWithDiscrepancy, result.CurrentState)
	assert.True(t, loaded.HasDiscrepancy())
	require.NotNil(t, appended)
	assert.True(t, appended.HasDiscrepancy())
}

func TestProcessActionCommandHandler_Handle_NotConstructedCommand(t *testing.T) {
	harness := newProcessHarness()

	_, err := harness.handler.Handle(t.Context(), commands.ProcessActionCommand{})

	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrProcessActionCommandIsNotConstructed)
	harness.factory.AssertNotCalled(t, "Create")
}

// Walks TX-001 through the whole lifecycle, one webhook per step, and checks
// the terminal state, the event count, and the stock effects at each
// movement boundary.
func TestProcessActionCommandHandler_Handle_FullLifecycle(t *testing.T) {
	ctx := t.Context()
	orgID := testOrgID(t)
	harness := newProcessHarness()

	loaded := restoredTransfer(t, orgID, transfer.StateCreated)

	harness.transferRepo.On("GetByExternalIDForUpdate", ctx, orgID, "TX-001").
		Return(loaded, nil)
	harness.transferRepo.On("Update", ctx, loaded).Return(nil)

	eventCount := 0
	harness.eventRepo.On("Add", ctx, mock.AnythingOfType("*event.Event")).
		Run(func(mock.Arguments) { eventCount++ }).
		Return(nil)

	levels := make(map[kernel.UUID]*stock.Level)
	levelFor := func(locationID kernel.UUID) *stock.Level {
		if level, ok := levels[locationID]; ok {
			return level
		}
		level, err := stock.NewLevel(orgID, locationID, "SKU-1")
		require.NoError(t, err)
		levels[locationID] = level
		return level
	}
	harness.stockRepo.On("GetForUpdate", ctx, orgID, loaded.OriginEntityID(), "SKU-1").
		Return(levelFor(loaded.OriginEntityID()), nil)
	harness.stockRepo.On("GetForUpdate", ctx, orgID, loaded.DestinationEntityID(), "SKU-1").
		Return(levelFor(loaded.DestinationEntityID()), nil)
	harness.stockRepo.On("Save", ctx, mock.AnythingOfType("*stock.Level")).Return(nil)

	sequence := []transfer.Action{
		transfer.ActionCreateSeparationMap,
		transfer.ActionQueueCDSeparation,
		transfer.ActionStartCDSeparation,
		transfer.ActionFinishCDSeparation,
		transfer.ActionMoveToPreDock,
		transfer.ActionShipFromCD,
		transfer.ActionInvoiceCD,
		transfer.ActionArriveAtStore,
		transfer.ActionStartStoreVerification,
		transfer.ActionFinishStoreVerification,
		transfer.ActionEffectuate,
	}

	for _, action := range sequence {
		result, err := harness.handler.Handle(ctx, advanceCommand(t, orgID, action))
		require.NoError(t, err, "action %s", action)
		assert.False(t, result.Duplicate)
	}

	assert.Equal(t, transfer.StateEffectiveStore, loaded.State())
	assert.False(t, loaded.HasDiscrepancy())
	assert.Equal(t, len(sequence), eventCount)

	origin := levels[loaded.OriginEntityID()]
	destination := levels[loaded.DestinationEntityID()]
	assert.Equal(t, -10, origin.OnHand())
	assert.Equal(t, 0, destination.InTransit())
	assert.Equal(t, 10, destination.OnHand())
	assert.Equal(t, 10, destination.Effective())
}
