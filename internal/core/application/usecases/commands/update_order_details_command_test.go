package commands_test

import (
	"testing"

	"shop/internal/core/application/usecases/commands"
	"shop/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUpdateOrderDetailsCommand_NotePatch(t *testing.T) {
	id := kernel.NewUUID()
	note := "ring twice"

	cmd, err := commands.NewUpdateOrderDetailsCommand(id, &note, nil)
	require.NoError(t, err)

	assert.Equal(t, id, cmd.OrderID())
	require.NotNil(t, cmd.Note())
	assert.Equal(t, "ring twice", *cmd.Note())
	assert.Nil(t, cmd.Address())
}

func TestNewUpdateOrderDetailsCommand_AddressPatch(t *testing.T) {
	address := validAddress(t)

	cmd, err := commands.NewUpdateOrderDetailsCommand(kernel.NewUUID(), nil, &address)
	require.NoError(t, err)

	assert.Nil(t, cmd.Note())
	require.NotNil(t, cmd.Address())
	assert.Equal(t, "Jane Doe", cmd.Address().Recipient())
}

func TestNewUpdateOrderDetailsCommand_NothingToUpdate(t *testing.T) {
	_, err := commands.NewUpdateOrderDetailsCommand(kernel.NewUUID(), nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, commands.ErrNothingToUpdate)
}

func TestNewUpdateOrderDetailsCommand_InvalidOrderID(t *testing.T) {
	note := "x"
	_, err := commands.NewUpdateOrderDetailsCommand(kernel.UUID{}, &note, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
}

func TestNewUpdateOrderDetailsCommand_InvalidAddress(t *testing.T) {
	address := kernel.Address{}
	_, err := commands.NewUpdateOrderDetailsCommand(kernel.NewUUID(), nil, &address)
	require.Error(t, err)
}

func TestUpdateOrderDetailsCommand_Validate_NotConstructed(t *testing.T) {
	cmd := commands.UpdateOrderDetailsCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrUpdateOrderDetailsCommandIsNotConstructed)
}
