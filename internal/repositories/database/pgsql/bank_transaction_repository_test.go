package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	portsrepo "github.com/dieselinternacionalmx-netizen/lectorfacturav2/internal/core/ports/repositories"
)

func TestBuildListTransactionsQuery(t *testing.T) {
	t.Run("unallocated filter states the deposit contract", func(t *testing.T) {
		query, args := buildListTransactionsQuery(portsrepo.TransactionFilter{Unallocated: true})

		assert.Contains(t, query, "amount > 0")
		assert.Contains(t, query, "allocated_amount < ABS(amount)")
		assert.Empty(t, args)
	})

	t.Run("agent filter binds a contains pattern", func(t *testing.T) {
		agent := "ACME"
		query, args := buildListTransactionsQuery(portsrepo.TransactionFilter{Agent: &agent})

		assert.Contains(t, query, "agent ILIKE $1")
		assert.NotContains(t, query, "amount > 0")
		assert.Equal(t, []interface{}{"%ACME%"}, args)
	})

	t.Run("no filters lists everything newest first", func(t *testing.T) {
		query, args := buildListTransactionsQuery(portsrepo.TransactionFilter{})

		assert.NotContains(t, query, "AND")
		assert.Contains(t, query, "ORDER BY txn_date DESC")
		assert.Empty(t, args)
	})
}
