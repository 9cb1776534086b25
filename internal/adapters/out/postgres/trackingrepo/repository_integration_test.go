package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"tracking/internal/adapters/out/postgres/trackingrepo"
	"tracking/internal/core/domain/model/kernel"
	"tracking/internal/core/domain/model/tracking"
	"tracking/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate interface{}) {
	m.Called(id, aggregate)
}

// TrackingRepositoryIntegrationTestSuite provides integration tests for
// TrackingRepository using PostgreSQL containers to verify database
// persistence behavior.
type TrackingRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *trackingrepo.GormTrackingRepository
	tracker    *MockAggregateTracker
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupSuite() {
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

	db, err := gorm.Open(postgresdriver.Open(connStr), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(db.AutoMigrate(&trackingrepo.TrackingDTO{}))
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE trackings").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = trackingrepo.NewGormTrackingRepository(suite.db, suite.tracker)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *TrackingRepositoryIntegrationTestSuite) createTestTracking(orderID kernel.UUID) *tracking.Tracking {
	pickup, err := kernel.NewGeoPoint(24.75, 46.70)
	suite.Require().NoError(err)
	delivery, err := kernel.NewGeoPoint(24.70, 46.70)
	suite.Require().NoError(err)

	aggregate, err := tracking.NewTracking(
		kernel.NewUUID(), orderID, kernel.NewUUID(),
		&pickup, "12 Olaya St",
		&delivery, "8 King Fahd Rd",
		time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	)
	suite.Require().NoError(err)
	return aggregate
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_ValidTracking_Success() {
	ctx := context.Background()
	aggregate := suite.createTestTracking(kernel.NewUUID())

	suite.tracker.On("TrackAggregate", aggregate.ID(), aggregate).Once()

	err := suite.repository.Add(ctx, aggregate)
	suite.Require().NoError(err)

	loaded, err := suite.repository.Get(ctx, aggregate.ID())
	suite.Require().NoError(err)
	suite.True(aggregate.IsEqual(loaded))
	suite.Equal(tracking.StatusAssigned, loaded.Status())
	suite.True(loaded.IsActive())
	suite.EqualValues(1, loaded.Version())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestAdd_DuplicateOrder_Rejected() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	first := suite.createTestTracking(orderID)
	second := suite.createTestTracking(orderID)

	suite.tracker.On("TrackAggregate", first.ID(), first).Once()

	suite.Require().NoError(suite.repository.Add(ctx, first))

	err := suite.repository.Add(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectAlreadyExists)

	// The first tracking must still be the one on record.
	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(first.IsEqual(loaded))
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetByOrderID_NotFound() {
	ctx := context.Background()

	_, err := suite.repository.GetByOrderID(ctx, kernel.NewUUID())
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_PersistsStateAndBumpsVersion() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := suite.createTestTracking(orderID)

	suite.tracker.On("TrackAggregate", aggregate.ID(), mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)

	at := time.Date(2026, 8, 1, 11, 0, 0, 0, time.UTC)
	suite.Require().NoError(loaded.ChangeStatus(tracking.StatusAccepted, "courier confirmed", at))
	suite.Require().NoError(suite.repository.Update(ctx, loaded))

	reloaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(tracking.StatusAccepted, reloaded.Status())
	suite.Require().NotNil(reloaded.AcceptedAt())
	suite.Contains(reloaded.Notes(), "courier confirmed")
	suite.EqualValues(2, reloaded.Version())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_Conflict() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := suite.createTestTracking(orderID)

	suite.tracker.On("TrackAggregate", aggregate.ID(), mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	// Two readers load the same version.
	first, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	second, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)

	at := time.Now().UTC()
	suite.Require().NoError(first.ChangeStatus(tracking.StatusAccepted, "", at))
	suite.Require().NoError(suite.repository.Update(ctx, first))

	// The second writer lost the race.
	suite.Require().NoError(second.ChangeStatus(tracking.StatusEnRouteToPickup, "", at))
	err = suite.repository.Update(ctx, second)
	suite.Require().Error(err)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)

	// The first write survived untouched.
	reloaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.Equal(tracking.StatusAccepted, reloaded.Status())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestRoundTrip_PreservesAllFields() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	aggregate := suite.createTestTracking(orderID)

	suite.tracker.On("TrackAggregate", aggregate.ID(), mock.Anything)

	point, err := kernel.NewGeoPoint(24.72, 46.71)
	suite.Require().NoError(err)
	at := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	suite.Require().NoError(aggregate.ApplyLocation(point, 1.5, at))
	eta := time.Date(2026, 8, 1, 12, 30, 0, 0, time.UTC)
	suite.Require().NoError(aggregate.SetArrivalEstimate(2.25, &eta))

	suite.Require().NoError(suite.repository.Add(ctx, aggregate))

	loaded, err := suite.repository.GetByOrderID(ctx, orderID)
	suite.Require().NoError(err)
	suite.InDelta(1.5, loaded.TotalDistanceKm(), 1e-9)
	suite.InDelta(2.25, loaded.EstimatedDistanceKm(), 1e-9)
	suite.Require().NotNil(loaded.LastKnownPosition())
	equal, err := loaded.LastKnownPosition().IsEqual(point)
	suite.Require().NoError(err)
	suite.True(equal)
	suite.Require().NotNil(loaded.EstimatedArrivalTime())
	suite.True(loaded.EstimatedArrivalTime().Equal(eta))
	suite.Require().NotNil(loaded.Pickup())
	suite.Equal("12 Olaya St", loaded.PickupAddress())
}

func TestTrackingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingRepositoryIntegrationTestSuite))
}
