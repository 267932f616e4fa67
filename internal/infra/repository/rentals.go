package repository

import (
	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var rentalsTable = tableSpec{
	table:   "rentals",
	columns: []string{"customer_id", "bottle_barcode", "status", "rental_type", "rental_amount", "start_date", "end_date"},
	args: func(e reconcile.Entity) ([]any, bool) {
		r, ok := e.(*reconcile.RentalAgreement)
		if !ok {
			return nil, false
		}
		return []any{
			r.ID,
			r.OrganizationID,
			pgconv.StringToPgtype(r.CustomerID),
			pgconv.StringToPgtype(r.BottleBarcode),
			pgconv.StringToPgtype(r.Status),
			pgconv.StringToPgtype(r.RentalType),
			r.RentalAmount,
			pgconv.TimePtrToPgtype(r.StartDate),
			pgconv.TimePtrToPgtype(r.EndDate),
			pgconv.TimePtrToPgtype(r.CreatedAt),
			pgconv.TimePtrToPgtype(r.UpdatedAt),
		}, true
	},
	scan: func(row pgx.Row) (reconcile.Entity, error) {
		var (
			r                                        reconcile.RentalAgreement
			customerID, barcode, status, rentalType  pgtype.Text
			amount                                   pgtype.Float8
			startDate, endDate, createdAt, updatedAt pgtype.Timestamptz
		)
		if err := row.Scan(&r.ID, &r.OrganizationID, &customerID, &barcode, &status, &rentalType, &amount,
			&startDate, &endDate, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CustomerID = pgconv.StringFromPgtype(customerID)
		r.BottleBarcode = pgconv.StringFromPgtype(barcode)
		r.Status = pgconv.StringFromPgtype(status)
		r.RentalType = pgconv.StringFromPgtype(rentalType)
		r.RentalAmount = pgconv.Float64FromPgtype(amount)
		r.StartDate = pgconv.TimePtrFromPgtype(startDate)
		r.EndDate = pgconv.TimePtrFromPgtype(endDate)
		r.CreatedAt = pgconv.TimePtrFromPgtype(createdAt)
		r.UpdatedAt = pgconv.TimePtrFromPgtype(updatedAt)
		return &r, nil
	},
}
