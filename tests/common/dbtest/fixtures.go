//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"booking-engine/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

// Querier is satisfied by *pgxpool.Pool and pgx.Tx.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func CreateTestResource(t *testing.T, db Querier, b *builder.ResourceBuilder) uuid.UUID {
	t.Helper()

	res := b.BuildDomain()
	_, err := db.Exec(context.Background(), `
		INSERT INTO resources (id, name, kind, capacity, max_party_size, unit_rate, currency, timezone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)`,
		res.ID(), res.Name(), string(res.Kind()), res.Capacity(), res.MaxPartySize(),
		res.UnitRate().Amount().String(), res.UnitRate().Currency(), res.Timezone(), res.CreatedAt())
	require.NoError(t, err)

	return res.ID()
}

func CountActiveRecords(t *testing.T, db Querier, resourceID uuid.UUID) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM availability_records WHERE resource_id = $1 AND state = 'active'", resourceID).Scan(&n)
	require.NoError(t, err)
	return n
}

func CountOutboxEvents(t *testing.T, db Querier, name string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM outbox_events WHERE event_name = $1", name).Scan(&n)
	require.NoError(t, err)
	return n
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	_, err := pool.Exec(ctx, sqlAny.(string))
	return err
}
