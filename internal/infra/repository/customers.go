package repository

import (
	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/pgconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

var customersTable = tableSpec{
	table:   "customers",
	columns: []string{"name", "customer_list_id", "phone", "email", "address"},
	args: func(e reconcile.Entity) ([]any, bool) {
		c, ok := e.(*reconcile.Customer)
		if !ok {
			return nil, false
		}
		return []any{
			c.ID,
			c.OrganizationID,
			c.Name,
			pgconv.StringToPgtype(c.CustomerListID),
			pgconv.StringToPgtype(c.Phone),
			pgconv.StringToPgtype(c.Email),
			pgconv.StringToPgtype(c.Address),
			pgconv.TimePtrToPgtype(c.CreatedAt),
			pgconv.TimePtrToPgtype(c.UpdatedAt),
		}, true
	},
	scan: func(row pgx.Row) (reconcile.Entity, error) {
		var (
			c                             reconcile.Customer
			listID, phone, email, address pgtype.Text
			createdAt, updatedAt          pgtype.Timestamptz
		)
		if err := row.Scan(&c.ID, &c.OrganizationID, &c.Name, &listID, &phone, &email, &address, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		c.CustomerListID = pgconv.StringFromPgtype(listID)
		c.Phone = pgconv.StringFromPgtype(phone)
		c.Email = pgconv.StringFromPgtype(email)
		c.Address = pgconv.StringFromPgtype(address)
		c.CreatedAt = pgconv.TimePtrFromPgtype(createdAt)
		c.UpdatedAt = pgconv.TimePtrFromPgtype(updatedAt)
		return &c, nil
	},
}
