package transferrepo_test

import (
	"context"
	"testing"
	"time"

	"transferops/internal/adapters/out/postgres/transferrepo"
	"transferops/internal/core/domain/model/kernel"
	"transferops/internal/core/domain/model/transfer"
	"transferops/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// MockAggregateTracker is a mock implementation of aggregateTracker interface.
type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

// TransferRepositoryIntegrationTestSuite provides integration tests for
// TransferRepository using PostgreSQL containers. It exercises the two
// database-level guarantees the domain relies on: the unique index on
// (organization, external id) and the NOWAIT row lock.
type TransferRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *transferrepo.GormTransferRepository
	tracker    *MockAggregateTracker
	orgID      kernel.OrgID
}

func (suite *TransferRepositoryIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	suite.Require().NoError(err)
	suite.container = container

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&transferrepo.TransferDTO{}))

	suite.orgID, err = kernel.NewOrgID("org-acme")
	suite.Require().NoError(err)
}

func (suite *TransferRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE transfers").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = transferrepo.NewGormTransferRepository(suite.db, suite.tracker)
}

func (suite *TransferRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TransferRepositoryIntegrationTestSuite) TestAdd_ValidTransfer_Success() {
	ctx := context.Background()

	testTransfer := suite.createTestTransfer("TX-001")
	suite.tracker.On("TrackAggregate", testTransfer.ID(), testTransfer).Once()

	err := suite.repository.Add(ctx, testTransfer)
	suite.Require().NoError(err)

	retrieved, err := suite.repository.GetByExternalID(ctx, suite.orgID, "TX-001")
	suite.Require().NoError(err)
	suite.True(testTransfer.IsEqual(retrieved))
	suite.Equal(transfer.StateCreated, retrieved.State())
	suite.False(retrieved.HasDiscrepancy())
	suite.Equal(10, retrieved.Payload().TotalQuantity())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestAdd_DuplicateExternalID_ReturnsAlreadyExistsError() {
	ctx := context.Background()

	first := suite.createTestTransfer("TX-001")
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	// Second transfer with the same external id but a fresh generated id,
	// like a concurrent CREATE delivery that lost the race.
	second := suite.createTestTransfer("TX-001")
	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)

	var alreadyExistsErr *errs.ObjectAlreadyExistsError
	suite.Require().ErrorAs(err, &alreadyExistsErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestAdd_SameExternalIDDifferentOrg_Success() {
	ctx := context.Background()

	first := suite.createTestTransfer("TX-001")
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, first))

	otherOrg, err := kernel.NewOrgID("org-other")
	suite.Require().NoError(err)

	second, err := transfer.NewTransfer(
		kernel.NewUUID(), otherOrg, "TX-001",
		kernel.NewUUID(), kernel.NewUUID(), suite.createTestPayload(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, second))

	// Each org sees only its own transfer.
	retrieved, err := suite.repository.GetByExternalID(ctx, otherOrg, "TX-001")
	suite.Require().NoError(err)
	suite.True(second.IsEqual(retrieved))

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestUpdate_AdvancedTransfer_PersistsStateAndDiscrepancy() {
	ctx := context.Background()

	testTransfer := suite.createTestTransfer("TX-001")
	suite.tracker.On("TrackAggregate", testTransfer.ID(), testTransfer).Twice()
	suite.Require().NoError(suite.repository.Add(ctx, testTransfer))

	outcome, err := testTransfer.Advance(transfer.ActionCreateSeparationMap)
	suite.Require().NoError(err)
	suite.Equal(transfer.StateSeparationMapCreated, outcome.To)

	suite.Require().NoError(suite.repository.Update(ctx, testTransfer))

	retrieved, err := suite.repository.GetByExternalID(ctx, suite.orgID, "TX-001")
	suite.Require().NoError(err)
	suite.Equal(transfer.StateSeparationMapCreated, retrieved.State())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestUpdate_NonExistentTransfer_ReturnsError() {
	ctx := context.Background()

	err := suite.repository.Update(ctx, suite.createTestTransfer("TX-404"))
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetByExternalID_NonExistent_ReturnsNotFoundError() {
	ctx := context.Background()

	retrieved, err := suite.repository.GetByExternalID(ctx, suite.orgID, "TX-404")
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetByExternalIDForUpdate_LockedRow_ReturnsConcurrencyConflictError() {
	ctx := context.Background()

	testTransfer := suite.createTestTransfer("TX-001")
	suite.tracker.On("TrackAggregate", testTransfer.ID(), testTransfer).Once()
	suite.Require().NoError(suite.repository.Add(ctx, testTransfer))

	// First transaction takes the row lock and holds it.
	holder := suite.db.Begin()
	suite.Require().NoError(holder.Error)
	defer holder.Rollback()

	holderRepo := transferrepo.NewGormTransferRepository(holder, suite.tracker)
	_, err := holderRepo.GetByExternalIDForUpdate(ctx, suite.orgID, "TX-001")
	suite.Require().NoError(err)

	// Second transaction must fail immediately instead of queueing.
	contender := suite.db.Begin()
	suite.Require().NoError(contender.Error)
	defer contender.Rollback()

	contenderRepo := transferrepo.NewGormTransferRepository(contender, suite.tracker)
	_, err = contenderRepo.GetByExternalIDForUpdate(ctx, suite.orgID, "TX-001")
	suite.Require().Error(err)

	var conflictErr *errs.ConcurrencyConflictError
	suite.Require().ErrorAs(err, &conflictErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TransferRepositoryIntegrationTestSuite) TestGetAllByOrg_ReturnsOnlyOwnTransfers() {
	ctx := context.Background()

	suite.tracker.On("TrackAggregate", mock.AnythingOfType("kernel.UUID"), mock.Anything).Times(3)

	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestTransfer("TX-001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestTransfer("TX-002")))

	otherOrg, err := kernel.NewOrgID("org-other")
	suite.Require().NoError(err)
	foreign, err := transfer.NewTransfer(
		kernel.NewUUID(), otherOrg, "TX-003",
		kernel.NewUUID(), kernel.NewUUID(), suite.createTestPayload(),
	)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, foreign))

	transfers, err := suite.repository.GetAllByOrg(ctx, suite.orgID)
	suite.Require().NoError(err)
	suite.Len(transfers, 2)
	for _, t := range transfers {
		suite.True(suite.orgID.IsEqual(t.OrgID()))
	}

	suite.tracker.AssertExpectations(suite.T())
}

// createTestTransfer creates a valid transfer order for testing purposes.
func (suite *TransferRepositoryIntegrationTestSuite) createTestTransfer(externalID string) *transfer.Transfer {
	testTransfer, err := transfer.NewTransfer(
		kernel.NewUUID(),
		suite.orgID,
		externalID,
		kernel.NewUUID(),
		kernel.NewUUID(),
		suite.createTestPayload(),
	)
	suite.Require().NoError(err)
	return testTransfer
}

// createTestPayload creates a single-line payload for testing purposes.
func (suite *TransferRepositoryIntegrationTestSuite) createTestPayload() transfer.Payload {
	line, err := transfer.NewLine("SKU-1", "widget", 10)
	suite.Require().NoError(err)
	payload, err := transfer.NewPayload([]transfer.Line{line})
	suite.Require().NoError(err)
	return payload
}

func TestTransferRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TransferRepositoryIntegrationTestSuite))
}
