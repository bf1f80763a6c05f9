package queries_test

import (
	"testing"

	"tableside/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGetOpenOrderQuery_Success(t *testing.T) {
	query, err := queries.NewGetOpenOrderQuery(12)
	require.NoError(t, err)
	assert.NoError(t, query.Validate())
	assert.Equal(t, 12, query.TableNumber())
}

func TestNewGetOpenOrderQuery_InvalidTableNumber(t *testing.T) {
	for _, tableNumber := range []int{0, -3} {
		_, err := queries.NewGetOpenOrderQuery(tableNumber)
		require.ErrorIs(t, err, queries.ErrQueryTableNumberIsInvalid)
	}
}

func TestGetOpenOrderQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetOpenOrderQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetOpenOrderQueryIsNotConstructed)
}
