package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"bakeflow/internal/adapters/out/postgres/orderrepo"
	"bakeflow/internal/core/domain/model/kernel"
	"bakeflow/internal/core/domain/model/order"
	"bakeflow/internal/pkg/errs"

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

func (m *MockAggregateTracker) TrackAggregate(id string, aggregate any) {
	m.Called(id, aggregate)
}

// OrderRepositoryIntegrationTestSuite provides integration tests for OrderRepository
// using PostgreSQL containers to verify database persistence behavior.
type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	container  *postgres.PostgresContainer
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
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

	suite.Require().NoError(db.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderLogEntryDTO{}))
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.db.Exec("TRUNCATE TABLE orders, order_log_entries").Error)

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ValidOrder_Success() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("05-25-001")
	suite.tracker.On("TrackAggregate", "05-25-001", testOrder).Once()

	err := suite.repository.Add(ctx, testOrder)
	suite.Require().NoError(err)

	suite.assertOrderCount(1)
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_ExistingOrder_RoundTrips() {
	ctx := context.Background()

	original := suite.createTestOrder("05-25-001")
	suite.tracker.On("TrackAggregate", "05-25-001", original).Once()
	suite.Require().NoError(suite.repository.Add(ctx, original))

	retrieved, err := suite.repository.Get(ctx, original.Code())
	suite.Require().NoError(err)

	suite.Equal(original.Code(), retrieved.Code())
	suite.Equal("Maria", retrieved.CustomerName())
	suite.Equal("round", retrieved.Spec().Shape())
	suite.Equal("20cm", retrieved.Spec().Size())
	suite.Equal("vanilla", retrieved.Spec().Flavor())
	suite.Len(retrieved.Spec().Tiers(), 2)
	suite.Equal(order.Incomplete, retrieved.Status())
	suite.Nil(retrieved.TripID())

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_NonExistentOrder_ReturnsNotFoundError() {
	ctx := context.Background()

	code, err := kernel.OrderCodeFromString("12-25-999")
	suite.Require().NoError(err)

	retrieved, err := suite.repository.Get(ctx, code)
	suite.Nil(retrieved)
	suite.Require().Error(err)

	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)

	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAppendLog_EntriesSurviveReload() {
	ctx := context.Background()

	testOrder := suite.createTestOrder("05-25-001")
	suite.tracker.On("TrackAggregate", "05-25-001", mock.Anything)
	suite.Require().NoError(suite.repository.Add(ctx, testOrder))

	event, err := testOrder.ChangeStatus(order.InQueue, "nina", "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Update(ctx, testOrder))
	suite.Require().NoError(suite.repository.AppendLog(ctx, testOrder.Code(), event))

	retrieved, err := suite.repository.Get(ctx, testOrder.Code())
	suite.Require().NoError(err)

	suite.Equal(order.InQueue, retrieved.Status())
	suite.Require().Len(retrieved.Logs(), 1)
	suite.Equal(order.Incomplete, retrieved.Logs()[0].PreviousStatus)
	suite.Equal(order.InQueue, retrieved.Logs()[0].NewStatus)
	suite.Equal("nina", retrieved.Logs()[0].Actor)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllProductionRelevant_FiltersByStatus() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("string"), mock.Anything)

	queued := suite.createTestOrder("05-25-001")
	_, err := queued.ChangeStatus(order.InQueue, "nina", "", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.repository.Add(ctx, queued))

	incomplete := suite.createTestOrder("05-25-002")
	suite.Require().NoError(suite.repository.Add(ctx, incomplete))

	relevant, err := suite.repository.GetAllProductionRelevant(ctx)
	suite.Require().NoError(err)

	suite.Require().Len(relevant, 1)
	suite.Equal(queued.Code(), relevant[0].Code())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextCode_EmptyMonth_StartsAtOne() {
	ctx := context.Background()

	code, err := suite.repository.NextCode(ctx, 7, 25)
	suite.Require().NoError(err)
	suite.Equal("07-25-001", code.String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestNextCode_ContinuesSequencePerMonth() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("string"), mock.Anything)

	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("05-25-001")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("05-25-007")))
	suite.Require().NoError(suite.repository.Add(ctx, suite.createTestOrder("04-25-011")))

	code, err := suite.repository.NextCode(ctx, 5, 25)
	suite.Require().NoError(err)
	suite.Equal("05-25-008", code.String())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetAllByTrip_ReturnsMirroredOrders() {
	ctx := context.Background()
	suite.tracker.On("TrackAggregate", mock.AnythingOfType("string"), mock.Anything)

	tripID := kernel.NewUUID()

	onTrip := suite.createTestOrder("05-25-001")
	suite.Require().NoError(onTrip.AssignToTrip(tripID, 1))
	suite.Require().NoError(suite.repository.Add(ctx, onTrip))

	offTrip := suite.createTestOrder("05-25-002")
	suite.Require().NoError(suite.repository.Add(ctx, offTrip))

	members, err := suite.repository.GetAllByTrip(ctx, tripID)
	suite.Require().NoError(err)

	suite.Require().Len(members, 1)
	suite.Equal(onTrip.Code(), members[0].Code())
	suite.Require().NotNil(members[0].TripID())
	suite.Equal(tripID, *members[0].TripID())
	suite.Require().NotNil(members[0].TripSequence())
	suite.Equal(1, *members[0].TripSequence())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_NonExistentOrder_ReturnsError() {
	ctx := context.Background()

	missing := suite.createTestOrder("05-25-001")

	err := suite.repository.Update(ctx, missing)
	suite.Require().ErrorIs(err, gorm.ErrRecordNotFound)
	suite.tracker.AssertExpectations(suite.T())
}

// createTestOrder creates a basic test order with default values.
func (suite *OrderRepositoryIntegrationTestSuite) createTestOrder(codeStr string) *order.Order {
	code, err := kernel.OrderCodeFromString(codeStr)
	suite.Require().NoError(err)

	spec, err := order.NewCakeSpec("round", "20cm", "vanilla", []order.Tier{
		{Number: 1, Detail: "white fondant"},
		{Number: 2, Detail: "sugar flowers"},
	})
	suite.Require().NoError(err)

	testOrder, err := order.NewOrder(code, "Maria", spec, time.Now().UTC().AddDate(0, 0, 4))
	suite.Require().NoError(err)
	return testOrder
}

// assertOrderCount verifies the number of orders in the database.
func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int) {
	var count int64
	err := suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error
	suite.Require().NoError(err)
	suite.Equal(int64(expected), count)
}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
