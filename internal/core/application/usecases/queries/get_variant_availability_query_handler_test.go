package queries_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"shop/internal/adapters/out/postgres/inventoryrepo"
	"shop/internal/core/application/usecases/queries"
	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type MockQueryHoldStore struct{ mock.Mock }

func (m *MockQueryHoldStore) Hold(_ context.Context, _ string, _ kernel.UUID, _ kernel.UUID, _ int) (int, error) {
	return 0, errors.New("not implemented in mock")
}

func (m *MockQueryHoldStore) Held(ctx context.Context, sessionID string, variantID kernel.UUID, branchID kernel.UUID) (int, error) {
	args := m.Called(ctx, sessionID, variantID, branchID)
	return args.Int(0), args.Error(1)
}

func (m *MockQueryHoldStore) Release(_ context.Context, _ string, _ kernel.UUID, _ kernel.UUID) error {
	return errors.New("not implemented in mock")
}

type GetVariantAvailabilityQueryHandlerTestSuite struct {
	suite.Suite
	container     *postgres.PostgresContainer
	db            *gorm.DB
	inventoryRepo *inventoryrepo.GormInventoryRepository
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) SetupSuite() {
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

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	suite.Require().NoError(err)
	suite.db = db

	err = db.AutoMigrate(&inventoryrepo.VariantDTO{}, &inventoryrepo.BranchStockDTO{})
	suite.Require().NoError(err)

	suite.inventoryRepo = inventoryrepo.NewGormInventoryRepository(db)
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) TearDownSuite() {
	if suite.container != nil {
		err := suite.container.Terminate(context.Background())
		suite.Require().NoError(err)
	}
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE variants, branch_stocks").Error
	suite.Require().NoError(err)
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) TestHandle_WithoutSession_MirrorsRawStock() {
	ctx := context.Background()

	variantID := kernel.NewUUID()
	branchA := suite.mustUUID("11111111-1111-1111-1111-111111111111")
	branchB := suite.mustUUID("22222222-2222-2222-2222-222222222222")
	suite.seedVariant(ctx, variantID, map[kernel.UUID]int{branchA: 3, branchB: 5})

	holds := new(MockQueryHoldStore)
	handler := queries.NewGetVariantAvailabilityQueryHandler(suite.db, holds)

	query, err := queries.NewGetVariantAvailabilityQuery(variantID, "")
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)

	suite.True(result.VariantID.IsEqual(variantID))
	suite.Require().Len(result.Branches, 2)

	// Rows come back ordered by branch id.
	suite.True(result.Branches[0].BranchID.IsEqual(branchA))
	suite.Equal(3, result.Branches[0].Available)
	suite.Equal(0, result.Branches[0].Held)
	suite.Equal(3, result.Branches[0].Effective)

	suite.True(result.Branches[1].BranchID.IsEqual(branchB))
	suite.Equal(5, result.Branches[1].Available)
	suite.Equal(5, result.Branches[1].Effective)

	holds.AssertNotCalled(suite.T(), "Held")
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) TestHandle_WithSession_SubtractsHolds() {
	ctx := context.Background()

	variantID := kernel.NewUUID()
	branchA := suite.mustUUID("11111111-1111-1111-1111-111111111111")
	branchB := suite.mustUUID("22222222-2222-2222-2222-222222222222")
	suite.seedVariant(ctx, variantID, map[kernel.UUID]int{branchA: 4, branchB: 2})

	holds := new(MockQueryHoldStore)
	holds.On("Held", ctx, "session-42", variantID, branchA).Return(1, nil).Once()
	holds.On("Held", ctx, "session-42", variantID, branchB).Return(5, nil).Once()

	handler := queries.NewGetVariantAvailabilityQueryHandler(suite.db, holds)

	query, err := queries.NewGetVariantAvailabilityQuery(variantID, "session-42")
	suite.Require().NoError(err)

	result, err := handler.Handle(ctx, query)
	suite.Require().NoError(err)
	suite.Require().Len(result.Branches, 2)

	suite.Equal(4, result.Branches[0].Available)
	suite.Equal(1, result.Branches[0].Held)
	suite.Equal(3, result.Branches[0].Effective)

	// A hold larger than the stock never reports negative availability.
	suite.Equal(2, result.Branches[1].Available)
	suite.Equal(5, result.Branches[1].Held)
	suite.Equal(0, result.Branches[1].Effective)

	holds.AssertExpectations(suite.T())
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) TestHandle_UnknownVariant_ReturnsNotFound() {
	handler := queries.NewGetVariantAvailabilityQueryHandler(suite.db, new(MockQueryHoldStore))

	query, err := queries.NewGetVariantAvailabilityQuery(kernel.NewUUID(), "")
	suite.Require().NoError(err)

	_, err = handler.Handle(context.Background(), query)

	suite.Require().Error(err)
	var notFoundErr *errs.ObjectNotFoundError
	suite.Require().ErrorAs(err, &notFoundErr)
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) TestHandle_InvalidQuery_ReturnsError() {
	handler := queries.NewGetVariantAvailabilityQueryHandler(suite.db, new(MockQueryHoldStore))

	_, err := handler.Handle(context.Background(), queries.GetVariantAvailabilityQuery{})

	suite.Require().Error(err)
	suite.Contains(err.Error(), "must be created via NewGetVariantAvailabilityQuery constructor")
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) seedVariant(
	ctx context.Context, variantID kernel.UUID, stock map[kernel.UUID]int,
) {
	price, err := kernel.NewMoney(1500)
	suite.Require().NoError(err)

	cells := make([]inventory.BranchStock, 0, len(stock))
	for branchID, available := range stock {
		cell, cellErr := inventory.NewBranchStock(branchID, available)
		suite.Require().NoError(cellErr)
		cells = append(cells, cell)
	}

	variant, err := inventory.NewVariant(variantID, "SKU-001", "Blue T-Shirt M", price, cells)
	suite.Require().NoError(err)
	suite.Require().NoError(suite.inventoryRepo.Add(ctx, variant))
}

func (suite *GetVariantAvailabilityQueryHandlerTestSuite) mustUUID(s string) kernel.UUID {
	id, err := kernel.UUIDFromString(s)
	suite.Require().NoError(err)
	return id
}

func TestGetVariantAvailabilityQueryHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(GetVariantAvailabilityQueryHandlerTestSuite))
}
