package repository

import (
	"fmt"
	"strings"

	"cylinder-sync/internal/domain/reconcile"

	"github.com/jackc/pgx/v5"
)

// tableSpec describes how one entity kind is laid out in its table. Every
// table starts with id and organization_id and ends with created_at and
// updated_at; columns lists what sits in between.
type tableSpec struct {
	table   string
	columns []string
	// onInsertConflict, when set, turns a plain insert into an idempotent one.
	onInsertConflict string
	args             func(e reconcile.Entity) ([]any, bool)
	scan             func(row pgx.Row) (reconcile.Entity, error)
}

func (t tableSpec) returning() string {
	return "id::text, organization_id::text, " + strings.Join(t.columns, ", ") + ", created_at, updated_at"
}

func (t tableSpec) selectSQL() string {
	return fmt.Sprintf("SELECT %s FROM %s WHERE id = $1::uuid AND organization_id = $2::uuid", t.returning(), t.table)
}

func (t tableSpec) insertSQL() string {
	n := len(t.columns)
	placeholders := make([]string, 0, n+4)
	placeholders = append(placeholders, "$1::uuid", "$2::uuid")
	for i := range n {
		placeholders = append(placeholders, fmt.Sprintf("$%d", i+3))
	}
	placeholders = append(placeholders,
		fmt.Sprintf("COALESCE($%d::timestamptz, now())", n+3),
		fmt.Sprintf("$%d::timestamptz", n+4))

	return fmt.Sprintf("INSERT INTO %s (id, organization_id, %s, created_at, updated_at) VALUES (%s)",
		t.table, strings.Join(t.columns, ", "), strings.Join(placeholders, ", "))
}

func (t tableSpec) createSQL() string {
	sql := t.insertSQL()
	if t.onInsertConflict != "" {
		sql += " " + t.onInsertConflict
	}
	return sql + " RETURNING " + t.returning()
}

// upsertSQL updates the row in place, refusing rows of another organization.
func (t tableSpec) upsertSQL() string {
	sets := make([]string, 0, len(t.columns)+1)
	for _, c := range t.columns {
		sets = append(sets, c+" = EXCLUDED."+c)
	}
	sets = append(sets, "updated_at = EXCLUDED.updated_at")

	return fmt.Sprintf("%s ON CONFLICT (id) DO UPDATE SET %s WHERE %s.organization_id = EXCLUDED.organization_id RETURNING %s",
		t.insertSQL(), strings.Join(sets, ", "), t.table, t.returning())
}

var tables = map[reconcile.Kind]tableSpec{
	reconcile.KindAsset:           bottlesTable,
	reconcile.KindCustomer:        customersTable,
	reconcile.KindScanEvent:       scansTable,
	reconcile.KindRentalAgreement: rentalsTable,
}
