package queries_test

import (
	"testing"

	"tableside/internal/core/application/usecases/queries"
	"tableside/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOrderQuery_Success(t *testing.T) {
	id := kernel.NewUUID()

	query, err := queries.NewGetOrderQuery(id)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.True(t, id.IsEqual(query.OrderID()))
}

func TestNewGetOrderQuery_InvalidOrderID(t *testing.T) {
	_, err := queries.NewGetOrderQuery(kernel.UUID{})
	require.Error(t, err)
}

func TestGetOrderQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetOrderQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOrderQueryIsNotConstructed)
}
