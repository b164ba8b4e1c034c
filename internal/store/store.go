package store

import (
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate is returned when an insert collides with a unique constraint.
var ErrDuplicate = errors.New("record already exists")

const uniqueViolationCode = "23505"

func psql() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}

// buildUpdateClause creates the SET clause for ON CONFLICT DO UPDATE
// e.g., "name = EXCLUDED.name, slug = EXCLUDED.slug, ..."
func buildUpdateClause(columns []string, skip ...string) string {
	parts := make([]string, 0, len(columns))

columns:
	for _, column := range columns {
		for _, s := range skip {
			if column == s {
				continue columns
			}
		}
		parts = append(parts, fmt.Sprintf("%s = EXCLUDED.%s", column, column))
	}

	return strings.Join(parts, ", ")
}

func stringSlice[T ~string](in []T) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = string(v)
	}
	return out
}

func joinColumns(columns []string) string {
	return strings.Join(columns, ", ")
}
