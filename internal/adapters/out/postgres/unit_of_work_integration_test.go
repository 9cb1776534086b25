package postgres_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres"
	"tracking/internal/adapters/out/postgres/locationrepo"
	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite verifies transactional behavior of the GORM
// unit of work: commit visibility, rollback isolation and the atomicity of
// the sample-plus-aggregate write used by location reports.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgrescontainer.PostgresContainer
	db        *gorm.DB
	factory   *postgres.GormUnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgrescontainer.Run(ctx,
		"postgres:15-alpine",
		postgrescontainer.WithDatabase("testdb"),
		postgrescontainer.WithUsername("testuser"),
		postgrescontainer.WithPassword("testpass"),
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&trackingrepo.TrackingDTO{}, &locationrepo.LocationSampleDTO{}))

	suite.factory = postgres.NewGormUnitOfWorkFactory(db)
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trackings, location_samples").Error)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) createTestTracking() *tracking.Tracking {
	aggregate, err := tracking.NewTracking(
		kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		nil, "", nil, "",
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *UnitOfWorkIntegrationTestSuite) TestTransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	// Begin on an active transaction is a no-op.
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Commit(ctx))

	// Commit and rollback without a transaction fail.
	suite.Require().ErrorIs(uow.Commit(ctx), gorm.ErrInvalidTransaction)
	suite.Require().ErrorIs(uow.Rollback(ctx), gorm.ErrInvalidTransaction)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestCommit_MakesChangesVisible() {
	ctx := context.Background()
	aggregate := suite.createTestTracking()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Commit(ctx))

	other := suite.factory.Create()
	suite.Require().NoError(other.Begin(ctx))
	loaded, err := other.TrackingRepository().GetByOrderID(ctx, aggregate.OrderID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))
	suite.Require().NoError(other.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestRollback_DiscardsChanges() {
	ctx := context.Background()
	aggregate := suite.createTestTracking()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, aggregate))
	suite.Require().NoError(uow.Rollback(ctx))

	other := suite.factory.Create()
	suite.Require().NoError(other.Begin(ctx))
	_, err := other.TrackingRepository().GetByOrderID(ctx, aggregate.OrderID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Require().NoError(other.Rollback(ctx))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestMultiRepositoryTransaction_Atomic() {
	ctx := context.Background()
	aggregate := suite.createTestTracking()

	// Seed the tracking.
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.TrackingRepository().Add(ctx, aggregate))
	suite.Require().NoError(seed.Commit(ctx))

	// Write a sample and the updated aggregate, then roll back.
	point, err := kernel.NewGeoPoint(24.71, 46.72)
	suite.Require().NoError(err)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	loaded := suite.loadTracking(aggregate.OrderID())
	suite.Require().NoError(loaded.ApplyLocation(point, 0, at))
	sample, err := tracking.NewLocationSample(
		kernel.NewUUID(), loaded.ID(), point,
		nil, nil, nil, loaded.Status(), 0, at,
	)
	suite.Require().NoError(err)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.LocationHistoryRepository().Add(ctx, sample))
	suite.Require().NoError(uow.TrackingRepository().Update(ctx, loaded))
	suite.Require().NoError(uow.Rollback(ctx))

	// Neither the sample nor the aggregate update survived.
	reloaded := suite.loadTracking(aggregate.OrderID())
	suite.Nil(reloaded.LastKnownPosition())

	history := locationrepo.NewGormLocationHistoryRepository(suite.db)
	mostRecent, err := history.GetMostRecent(ctx, loaded.ID())
	suite.Require().NoError(err)
	suite.Nil(mostRecent)
}

func (suite *UnitOfWorkIntegrationTestSuite) loadTracking(orderID kernel.UUID) *tracking.Tracking {
	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(context.Background()))
	loaded, err := uow.TrackingRepository().GetByOrderID(context.Background(), orderID)
	suite.Require().NoError(err)
	suite.Require().NoError(uow.Rollback(context.Background()))
	return loaded
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
