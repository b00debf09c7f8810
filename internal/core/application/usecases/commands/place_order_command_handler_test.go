package commands_test

import (
	"context"
	"errors"
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/inventory"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"
	"shop/internal/core/domain/services"
	"shop/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockPlaceInventoryRepo struct{ mock.Mock }

func (m *MockPlaceInventoryRepo) GetVariant(ctx context.Context, id kernel.UUID) (*inventory.Variant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Variant), args.Error(1)
}

func (m *MockPlaceInventoryRepo) ReserveStock(
	ctx context.Context, variantID kernel.UUID, branchID kernel.UUID, quantity int,
) error {
	args := m.Called(ctx, variantID, branchID, quantity)
	return args.Error(0)
}

func (m *MockPlaceInventoryRepo) RestoreStock(
	ctx context.Context, variantID kernel.UUID, branchID kernel.UUID, quantity int,
) error {
	args := m.Called(ctx, variantID, branchID, quantity)
	return args.Error(0)
}

type MockPlaceOrderRepo struct{ mock.Mock }

func (m *MockPlaceOrderRepo) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}
func (m *MockPlaceOrderRepo) Update(_ context.Context, _ *order.Order, _ int) error { return nil }
func (m *MockPlaceOrderRepo) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPlaceOrderRepo) GetAllActive(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}
func (m *MockPlaceOrderRepo) GetAllAwaitingCarrierSync(_ context.Context) ([]*order.Order, error) {
	return nil, errors.New("not implemented in mock")
}

type MockPlaceOrderUoW struct{ mock.Mock }

func (m *MockPlaceOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlaceOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlaceOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
func (m *MockPlaceOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockPlaceOrderUoWFactory struct{ mock.Mock }

func (m *MockPlaceOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

func placeVariant(t *testing.T, id kernel.UUID, branchID kernel.UUID, available int, price int64) *inventory.Variant {
	t.Helper()
	cell, err := inventory.NewBranchStock(branchID, available)
	require.NoError(t, err)
	variant, err := inventory.NewVariant(id, "SKU-"+id.String()[:8], "Variant", validMoney(t, price), []inventory.BranchStock{cell})
	require.NoError(t, err)
	return variant
}

func placeCmd(t *testing.T, items []commands.OrderItemSpec) commands.PlaceOrderCommand {
	t.Helper()
	cmd, err := commands.NewPlaceOrderCommand(
		kernel.NewUUID(), items, validAddress(t),
		validMoney(t, 100), validMoney(t, 300), validMoney(t, 0), "",
	)
	require.NoError(t, err)
	return cmd
}

func TestPlaceOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	variantA := kernel.NewUUID()
	variantB := kernel.NewUUID()
	branchA := kernel.NewUUID()
	branchB := kernel.NewUUID()

	cmd := placeCmd(t, []commands.OrderItemSpec{
		{VariantID: variantA, Quantity: 2},
		{VariantID: variantB, Quantity: 1},
	})

	inventoryRepo := new(MockPlaceInventoryRepo)
	orderRepo := new(MockPlaceOrderRepo)
	uow := new(MockPlaceOrderUoW)
	mock.InOrder(
		inventoryRepo.On("GetVariant", ctx, variantA).Return(placeVariant(t, variantA, branchA, 5, 1500), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantA, branchA, 2).Return(nil).Once(),
		inventoryRepo.On("GetVariant", ctx, variantB).Return(placeVariant(t, variantB, branchB, 3, 200), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantB, branchB, 1).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(inventoryRepo, services.NewBranchAllocator(), factory)
	placed, err := h.Handle(ctx, cmd)
	require.NoError(t, err)
	require.NotNil(t, placed)

	assert.Equal(t, order.Pending, placed.Status())
	require.Len(t, placed.Items(), 2)
	assert.True(t, placed.Items()[0].BranchID().IsEqual(branchA))
	assert.True(t, placed.Items()[1].BranchID().IsEqual(branchB))
	// 2*1500 + 1*200 + tax 100 + fee 300
	assert.Equal(t, int64(3600), placed.FinalPrice().Amount())

	inventoryRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	ctx := t.Context()
	cmd := commands.PlaceOrderCommand{} // not constructed properly

	h := commands.NewPlaceOrderCommandHandler(
		new(MockPlaceInventoryRepo), services.NewBranchAllocator(), new(MockPlaceOrderUoWFactory),
	)
	_, err := h.Handle(ctx, cmd)
	require.Error(t, err)
}

func TestPlaceOrderCommandHandler_Handle_InsufficientStockCompensates(t *testing.T) {
	ctx := t.Context()

	variantA := kernel.NewUUID()
	variantB := kernel.NewUUID()
	branchA := kernel.NewUUID()
	branchB := kernel.NewUUID()

	cmd := placeCmd(t, []commands.OrderItemSpec{
		{VariantID: variantA, Quantity: 2},
		{VariantID: variantB, Quantity: 4},
	})

	inventoryRepo := new(MockPlaceInventoryRepo)
	mock.InOrder(
		inventoryRepo.On("GetVariant", ctx, variantA).Return(placeVariant(t, variantA, branchA, 5, 1500), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantA, branchA, 2).Return(nil).Once(),
		// No branch can cover 4 units, allocation fails.
		inventoryRepo.On("GetVariant", ctx, variantB).Return(placeVariant(t, variantB, branchB, 3, 200), nil).Once(),
		inventoryRepo.On("RestoreStock", ctx, variantA, branchA, 2).Return(nil).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(inventoryRepo, services.NewBranchAllocator(), new(MockPlaceOrderUoWFactory))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)

	var stockErr *inventory.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.True(t, stockErr.VariantID.IsEqual(variantB))

	inventoryRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_ReserveRaceCompensates(t *testing.T) {
	ctx := t.Context()

	variantA := kernel.NewUUID()
	variantB := kernel.NewUUID()
	branchA := kernel.NewUUID()
	branchB := kernel.NewUUID()

	cmd := placeCmd(t, []commands.OrderItemSpec{
		{VariantID: variantA, Quantity: 1},
		{VariantID: variantB, Quantity: 1},
	})

	// The decision was made on a snapshot; the authoritative decrement loses
	// the race and the earlier reservation is rolled back.
	raceErr := &inventory.InsufficientStockError{VariantID: variantB, Requested: 1}

	inventoryRepo := new(MockPlaceInventoryRepo)
	mock.InOrder(
		inventoryRepo.On("GetVariant", ctx, variantA).Return(placeVariant(t, variantA, branchA, 5, 1500), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantA, branchA, 1).Return(nil).Once(),
		inventoryRepo.On("GetVariant", ctx, variantB).Return(placeVariant(t, variantB, branchB, 1, 200), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantB, branchB, 1).Return(raceErr).Once(),
		inventoryRepo.On("RestoreStock", ctx, variantA, branchA, 1).Return(nil).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(inventoryRepo, services.NewBranchAllocator(), new(MockPlaceOrderUoWFactory))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	inventoryRepo.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_AddErrorCompensates(t *testing.T) {
	ctx := t.Context()

	variantA := kernel.NewUUID()
	branchA := kernel.NewUUID()

	cmd := placeCmd(t, []commands.OrderItemSpec{{VariantID: variantA, Quantity: 2}})

	inventoryRepo := new(MockPlaceInventoryRepo)
	orderRepo := new(MockPlaceOrderRepo)
	uow := new(MockPlaceOrderUoW)
	mock.InOrder(
		inventoryRepo.On("GetVariant", ctx, variantA).Return(placeVariant(t, variantA, branchA, 5, 1500), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantA, branchA, 2).Return(nil).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		inventoryRepo.On("RestoreStock", ctx, variantA, branchA, 2).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockPlaceOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	h := commands.NewPlaceOrderCommandHandler(inventoryRepo, services.NewBranchAllocator(), factory)
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	inventoryRepo.AssertExpectations(t)
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestPlaceOrderCommandHandler_Handle_FailedCompensationIsJoined(t *testing.T) {
	ctx := t.Context()

	variantA := kernel.NewUUID()
	variantB := kernel.NewUUID()
	branchA := kernel.NewUUID()
	branchB := kernel.NewUUID()

	cmd := placeCmd(t, []commands.OrderItemSpec{
		{VariantID: variantA, Quantity: 1},
		{VariantID: variantB, Quantity: 9},
	})

	restoreErr := errors.New("restore failed")

	inventoryRepo := new(MockPlaceInventoryRepo)
	mock.InOrder(
		inventoryRepo.On("GetVariant", ctx, variantA).Return(placeVariant(t, variantA, branchA, 5, 1500), nil).Once(),
		inventoryRepo.On("ReserveStock", ctx, variantA, branchA, 1).Return(nil).Once(),
		inventoryRepo.On("GetVariant", ctx, variantB).Return(placeVariant(t, variantB, branchB, 1, 200), nil).Once(),
		inventoryRepo.On("RestoreStock", ctx, variantA, branchA, 1).Return(restoreErr).Once(),
	)

	h := commands.NewPlaceOrderCommandHandler(inventoryRepo, services.NewBranchAllocator(), new(MockPlaceOrderUoWFactory))
	_, err := h.Handle(ctx, cmd)

	require.Error(t, err)
	require.ErrorIs(t, err, inventory.ErrInsufficientStock)
	require.ErrorIs(t, err, restoreErr)
	inventoryRepo.AssertExpectations(t)
}
