package store

import (
	"errors"
	"fmt"
	"testing"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"karma/pkg/types"
)

func TestBuildUpdateClause(t *testing.T) {
	clause := buildUpdateClause([]string{"id", "name", "created_at", "city"}, "id", "created_at")
	assert.Equal(t, "name = EXCLUDED.name, city = EXCLUDED.city", clause)
}

func TestIsUniqueViolation(t *testing.T) {
	dup := fmt.Errorf("insert: %w", &pgconn.PgError{Code: uniqueViolationCode})
	assert.True(t, isUniqueViolation(dup))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestColumnsIncludeLocation(t *testing.T) {
	for _, columns := range [][]string{userColumns, nonprofitColumns, opportunityColumns} {
		assert.Contains(t, columns, "latitude")
		assert.Contains(t, columns, "longitude")
	}
}

func TestRecurringStatusCondition(t *testing.T) {
	query, args, err := psql().
		Update(recurringDonationTableName).
		Set("status", string(types.RecurringStatusActive)).
		Where(sq.Eq{"id": "r1", "status": stringSlice(types.RecurringStatusActive.Sources())}).
		ToSql()
	require.NoError(t, err)

	assert.Contains(t, query, "status IN ($")
	assert.Contains(t, args, string(types.RecurringStatusPaused))
	assert.NotContains(t, args, string(types.RecurringStatusCancelled))
}
