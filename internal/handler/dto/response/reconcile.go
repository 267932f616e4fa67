package response

import (
	"time"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type ReconcileResponse struct {
	Kind     string              `json:"kind" yaml:"kind"`
	Strategy string              `json:"strategy" yaml:"strategy"`
	Summary  map[string]int      `json:"summary" yaml:"summary"`
	Items    []BatchItemResponse `json:"items" yaml:"items"`
}

type BatchItemResponse struct {
	ID                string          `json:"id" yaml:"id"`
	Action            string          `json:"action,omitempty" yaml:"action,omitempty"`
	Fallback          string          `json:"fallback,omitempty" yaml:"fallback,omitempty"`
	Status            string          `json:"status" yaml:"status"`
	Entity            *EntityResponse `json:"entity,omitempty" yaml:"entity,omitempty"`
	RetryAfterSeconds int             `json:"retry_after,omitempty" yaml:"retry_after,omitempty"`
	Error             string          `json:"error,omitempty" yaml:"error,omitempty"`
}

// EntityResponse mirrors the request payload; only the fields of the batch kind are set.
type EntityResponse struct {
	ID             string     `json:"id" yaml:"id"`
	OrganizationID string     `json:"organization_id" yaml:"organization_id"`
	CreatedAt      *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt      *time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`

	SerialNumber     string `json:"serial_number,omitempty" yaml:"serial_number,omitempty"`
	Barcode          string `json:"barcode_number,omitempty" yaml:"barcode_number,omitempty"`
	Status           string `json:"status,omitempty" yaml:"status,omitempty"`
	Location         string `json:"location,omitempty" yaml:"location,omitempty"`
	AssignedCustomer string `json:"assigned_customer,omitempty" yaml:"assigned_customer,omitempty"`
	FillCount        int    `json:"fill_count,omitempty" yaml:"fill_count,omitempty"`

	Name           string `json:"name,omitempty" yaml:"name,omitempty"`
	CustomerListID string `json:"customer_list_id,omitempty" yaml:"customer_list_id,omitempty"`
	Phone          string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Email          string `json:"email,omitempty" yaml:"email,omitempty"`
	Address        string `json:"address,omitempty" yaml:"address,omitempty"`

	BottleBarcode string     `json:"bottle_barcode,omitempty" yaml:"bottle_barcode,omitempty"`
	OrderNumber   string     `json:"order_number,omitempty" yaml:"order_number,omitempty"`
	Mode          string     `json:"mode,omitempty" yaml:"mode,omitempty"`
	CustomerID    string     `json:"customer_id,omitempty" yaml:"customer_id,omitempty"`
	CustomerName  string     `json:"customer_name,omitempty" yaml:"customer_name,omitempty"`
	UserID        string     `json:"user_id,omitempty" yaml:"user_id,omitempty"`
	Timestamp     *time.Time `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`

	RentalType   string     `json:"rental_type,omitempty" yaml:"rental_type,omitempty"`
	RentalAmount float64    `json:"rental_amount,omitempty" yaml:"rental_amount,omitempty"`
	StartDate    *time.Time `json:"start_date,omitempty" yaml:"start_date,omitempty"`
	EndDate      *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
}

var summaryStatuses = []commands.ItemStatus{
	commands.StatusApplied,
	commands.StatusAdoptedRemote,
	commands.StatusCreated,
	commands.StatusInSync,
	commands.StatusDeferred,
	commands.StatusFailed,
	commands.StatusSkipped,
}

func FromBatchResult(r *commands.BatchResult) (*ReconcileResponse, error) {
	resp := &ReconcileResponse{
		Kind:     r.Kind.String(),
		Strategy: string(r.Strategy),
		Summary:  make(map[string]int, len(summaryStatuses)),
		Items:    make([]BatchItemResponse, len(r.Items)),
	}
	for _, st := range summaryStatuses {
		resp.Summary[string(st)] = r.Count(st)
	}

	for i, it := range r.Items {
		item := BatchItemResponse{
			ID:                it.ID,
			Action:            string(it.Action),
			Fallback:          string(it.Fallback),
			Status:            string(it.Status),
			RetryAfterSeconds: it.RetryAfterSeconds,
			Error:             it.Error,
		}
		if !reconcile.IsNil(it.Entity) {
			entity, err := FromEntity(it.Entity)
			if err != nil {
				return nil, err
			}
			item.Entity = entity
		}
		resp.Items[i] = item
	}
	return resp, nil
}

func FromEntity(e reconcile.Entity) (*EntityResponse, error) {
	out := &EntityResponse{}
	if err := copier.Copy(out, e); err != nil {
		return nil, err
	}
	meta := e.Metadata()
	out.ID = meta.ID
	out.OrganizationID = meta.OrganizationID
	out.CreatedAt = meta.CreatedAt
	out.UpdatedAt = meta.UpdatedAt
	if scan, ok := e.(*reconcile.ScanEvent); ok && !scan.ScannedAt.IsZero() {
		ts := scan.ScannedAt
		out.Timestamp = &ts
	}
	return out, nil
}
