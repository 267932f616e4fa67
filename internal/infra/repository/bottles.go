package repository

import (
	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var bottlesTable = tableSpec{
	table:   "bottles",
	columns: []string{"serial_number", "barcode_number", "status", "location", "assigned_customer", "fill_count"},
	args: func(e reconcile.Entity) ([]any, bool) {
		a, ok := e.(*reconcile.Asset)
		if !ok {
			return nil, false
		}
		return []any{
			a.ID,
			a.OrganizationID,
			pgconv.StringToPgtype(a.SerialNumber),
			pgconv.StringToPgtype(a.Barcode),
			pgconv.StringToPgtype(a.Status),
			pgconv.StringToPgtype(a.Location),
			pgconv.StringToPgtype(a.AssignedCustomer),
			int32(a.FillCount),
			pgconv.TimePtrToPgtype(a.CreatedAt),
			pgconv.TimePtrToPgtype(a.UpdatedAt),
		}, true
	},
	scan: func(row pgx.Row) (reconcile.Entity, error) {
		var (
			a                                           reconcile.Asset
			serial, barcode, status, location, assigned pgtype.Text
			fillCount                                   pgtype.Int4
			createdAt, updatedAt                        pgtype.Timestamptz
		)
		if err := row.Scan(&a.ID, &a.OrganizationID, &serial, &barcode, &status, &location, &assigned, &fillCount, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		a.SerialNumber = pgconv.StringFromPgtype(serial)
		a.Barcode = pgconv.StringFromPgtype(barcode)
		a.Status = pgconv.StringFromPgtype(status)
		a.Location = pgconv.StringFromPgtype(location)
		a.AssignedCustomer = pgconv.StringFromPgtype(assigned)
		a.FillCount = pgconv.IntFromPgtype(fillCount)
		a.CreatedAt = pgconv.TimePtrFromPgtype(createdAt)
		a.UpdatedAt = pgconv.TimePtrFromPgtype(updatedAt)
		return &a, nil
	},
}
