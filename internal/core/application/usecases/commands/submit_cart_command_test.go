package commands_test

import (
	"testing"

	"tableside/internal/core/application/usecases/commands"
	"tableside/internal/core/domain/model/kernel"
	"tableside/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSubmitCartCommand_Success(t *testing.T) {
	lines := []commands.CartLine{
		{MenuItemID: kernel.NewUUID(), Quantity: 1},
		{MenuItemID: kernel.NewUUID(), Quantity: 3},
	}

	cmd, err := commands.NewSubmitCartCommand(5, lines)
	require.NoError(t, err)
	assert.NoError(t, cmd.Validate())
	assert.Equal(t, 5, cmd.TableNumber())
	assert.Equal(t, lines, cmd.Lines())
}

func TestNewSubmitCartCommand_InvalidTableNumber(t *testing.T) {
	lines := []commands.CartLine{{MenuItemID: kernel.NewUUID(), Quantity: 1}}

	for _, tableNumber := range []int{0, -1} {
		_, err := commands.NewSubmitCartCommand(tableNumber, lines)
		require.ErrorIs(t, err, commands.ErrTableNumberIsInvalid)
	}
}

func TestNewSubmitCartCommand_EmptyCart(t *testing.T) {
	_, err := commands.NewSubmitCartCommand(1, nil)
	require.ErrorIs(t, err, commands.ErrCartIsEmpty)

	_, err = commands.NewSubmitCartCommand(1, []commands.CartLine{})
	require.ErrorIs(t, err, commands.ErrCartIsEmpty)
}

func TestNewSubmitCartCommand_InvalidQuantity(t *testing.T) {
	lines := []commands.CartLine{
		{MenuItemID: kernel.NewUUID(), Quantity: 2},
		{MenuItemID: kernel.NewUUID(), Quantity: 0},
	}

	_, err := commands.NewSubmitCartCommand(1, lines)
	require.ErrorIs(t, err, order.ErrQuantityIsInvalid)
}

func TestNewSubmitCartCommand_InvalidMenuItemID(t *testing.T) {
	lines := []commands.CartLine{{MenuItemID: kernel.UUID{}, Quantity: 1}}

	_, err := commands.NewSubmitCartCommand(1, lines)
	require.Error(t, err)
}

func TestSubmitCartCommand_Validate_NotConstructed(t *testing.T) {
	var cmd commands.SubmitCartCommand
	require.ErrorIs(t, cmd.Validate(), commands.ErrSubmitCartCommandIsNotConstructed)
}
