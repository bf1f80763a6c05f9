package queries_test

import (
	"testing"

	"tableside/internal/core/application/usecases/queries"

	"github.com/stretchr/testify/require"
)

func TestNewGetSalesReportQuery(t *testing.T) {
	query := queries.NewGetSalesReportQuery()
	require.NoError(t, query.Validate())
}

func TestGetSalesReportQuery_Validate_NotConstructed(t *testing.T) {
	var query queries.GetSalesReportQuery
	require.ErrorIs(t, query.Validate(), queries.ErrGetSalesReportQueryIsNotConstructed)
}
