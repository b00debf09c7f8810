package commands_test

import (
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"
	"shop/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChangeOrderStatusCommand_ValidInput(t *testing.T) {
	id := kernel.NewUUID()
	cmd, err := commands.NewChangeOrderStatusCommand(id, order.Cancelled, "customer request")
	require.NoError(t, err)
	assert.Equal(t, id, cmd.OrderID())
	assert.Equal(t, order.Cancelled, cmd.TargetStatus())
	assert.Equal(t, "customer request", cmd.Reason())
}

func TestNewChangeOrderStatusCommand_InvalidOrderID(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.UUID{}, order.Confirmed, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewChangeOrderStatusCommand_InvalidStatus(t *testing.T) {
	_, err := commands.NewChangeOrderStatusCommand(kernel.NewUUID(), order.Unknown, "")
	require.Error(t, err)
}

func TestChangeOrderStatusCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.ChangeOrderStatusCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrChangeOrderStatusCommandIsNotConstructed)
}
