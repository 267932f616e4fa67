package repository

import (
	"strings"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

// ScanModeReturn marks a bottle coming back from a customer.
const ScanModeReturn = "RETURN"

const markBottleEmptySQL = `UPDATE bottles SET status = 'empty', updated_at = $3::timestamptz
WHERE barcode_number = $1 AND organization_id = $2::uuid`

var scansTable = tableSpec{
	table: "bottle_scans",
	columns: []string{
		"bottle_barcode", "order_number", "mode", "customer_id", "customer_name", "location", "user_id", `"timestamp"`,
	},
	// a resubmitted scan returns the row already stored
	onInsertConflict: "ON CONFLICT ON CONSTRAINT uq_bottle_scans_dedupe DO UPDATE SET updated_at = bottle_scans.updated_at",
	args: func(e reconcile.Entity) ([]any, bool) {
		s, ok := e.(*reconcile.ScanEvent)
		if !ok {
			return nil, false
		}
		scannedAt := s.ScannedAt
		if scannedAt.IsZero() {
			scannedAt = s.Version()
		}
		return []any{
			s.ID,
			s.OrganizationID,
			s.BottleBarcode,
			s.OrderNumber,
			s.Mode,
			pgconv.StringToPgtype(s.CustomerID),
			pgconv.StringToPgtype(s.CustomerName),
			pgconv.StringToPgtype(s.Location),
			pgconv.StringToPgtype(s.UserID),
			pgconv.TimeToPgtype(scannedAt),
			pgconv.TimePtrToPgtype(s.CreatedAt),
			pgconv.TimePtrToPgtype(s.UpdatedAt),
		}, true
	},
	scan: func(row pgx.Row) (reconcile.Entity, error) {
		var (
			s                                          reconcile.ScanEvent
			customerID, customerName, location, userID pgtype.Text
			scannedAt, createdAt, updatedAt            pgtype.Timestamptz
		)
		if err := row.Scan(&s.ID, &s.OrganizationID, &s.BottleBarcode, &s.OrderNumber, &s.Mode,
			&customerID, &customerName, &location, &userID, &scannedAt, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		s.CustomerID = pgconv.StringFromPgtype(customerID)
		s.CustomerName = pgconv.StringFromPgtype(customerName)
		s.Location = pgconv.StringFromPgtype(location)
		s.UserID = pgconv.StringFromPgtype(userID)
		s.ScannedAt = pgconv.TimeFromPgtype(scannedAt)
		s.CreatedAt = pgconv.TimePtrFromPgtype(createdAt)
		s.UpdatedAt = pgconv.TimePtrFromPgtype(updatedAt)
		return &s, nil
	},
}

func isReturnScan(e reconcile.Entity) (*reconcile.ScanEvent, bool) {
	s, ok := e.(*reconcile.ScanEvent)
	if !ok || !strings.EqualFold(s.Mode, ScanModeReturn) {
		return nil, false
	}
	return s, true
}
