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

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const (
	DefaultOrganizationName = "Default Gas Co"
	OtherOrganizationName   = "Other Gas Co"
)

func CreateTestOrganization(t *testing.T, db DBLike, name string) uuid.UUID {
	t.Helper()

	orgID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx, "INSERT INTO organizations (id, name) VALUES ($1, $2) ON CONFLICT (name) DO NOTHING", orgID, name)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM organizations WHERE name = $1", name).Scan(&orgID)
	}

	return orgID
}

func DefaultOrganizationID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()
	return CreateTestOrganization(t, db, DefaultOrganizationName)
}

// CreateTestBottle inserts a bottle row and returns its id.
func CreateTestBottle(t *testing.T, db DBLike, orgID uuid.UUID, barcode, status string, updatedAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO bottles (id, organization_id, serial_number, barcode_number, status, location, fill_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, 'Warehouse A', 0, $6, $6)`,
		id, orgID, "SN-"+barcode, barcode, status, updatedAt)
	require.NoError(t, err)
	return id
}

func CreateTestCustomer(t *testing.T, db DBLike, orgID uuid.UUID, name, phone string, updatedAt time.Time) uuid.UUID {
	t.Helper()

	id := uuid.New()
	_, err := db.Exec(context.Background(), `
		INSERT INTO customers (id, organization_id, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $5)`,
		id, orgID, name, phone, updatedAt)
	require.NoError(t, err)
	return id
}

func CountRows(t *testing.T, db DBLike, table string) int {
	t.Helper()

	var n int
	err := db.QueryRow(context.Background(), "SELECT count(*) FROM "+table).Scan(&n)
	require.NoError(t, err)
	return n
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO organizations (id, name) VALUES
		    (gen_random_uuid(), $1),
		    (gen_random_uuid(), $2)
		ON CONFLICT (name) DO NOTHING;
	`, DefaultOrganizationName, OtherOrganizationName)
	if err != nil {
		return err
	}

	return nil
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
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
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
