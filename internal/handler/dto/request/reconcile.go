package request

import (
	"strings"
	"time"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

// ReconcileRequest is one batch of locally cached mutations of a single kind.
// It is accepted as JSON over HTTP and as YAML or JSON by the CLI.
type ReconcileRequest struct {
	Kind     string          `json:"kind" yaml:"kind" binding:"required"`
	Strategy string          `json:"strategy" yaml:"strategy"`
	Entities []EntityPayload `json:"entities" yaml:"entities" binding:"required,min=1,max=500,dive"`
}

// EntityPayload is the flat wire shape shared by every kind; fields that do
// not belong to the batch kind are ignored.
type EntityPayload struct {
	ID        string     `json:"id" yaml:"id"`
	CreatedAt *time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" yaml:"updated_at"`

	// bottles
	SerialNumber     string `json:"serial_number" yaml:"serial_number"`
	Barcode          string `json:"barcode_number" yaml:"barcode_number"`
	Status           string `json:"status" yaml:"status"`
	Location         string `json:"location" yaml:"location"`
	AssignedCustomer string `json:"assigned_customer" yaml:"assigned_customer"`
	FillCount        int    `json:"fill_count" yaml:"fill_count" binding:"min=0"`

	// customers
	Name           string `json:"name" yaml:"name"`
	CustomerListID string `json:"customer_list_id" yaml:"customer_list_id"`
	Phone          string `json:"phone" yaml:"phone"`
	Email          string `json:"email" yaml:"email"`
	Address        string `json:"address" yaml:"address"`

	// bottle_scans
	BottleBarcode string     `json:"bottle_barcode" yaml:"bottle_barcode"`
	OrderNumber   string     `json:"order_number" yaml:"order_number"`
	Mode          string     `json:"mode" yaml:"mode"`
	CustomerID    string     `json:"customer_id" yaml:"customer_id"`
	CustomerName  string     `json:"customer_name" yaml:"customer_name"`
	UserID        string     `json:"user_id" yaml:"user_id"`
	Timestamp     *time.Time `json:"timestamp" yaml:"timestamp"`

	// rentals
	RentalType   string     `json:"rental_type" yaml:"rental_type"`
	RentalAmount float64    `json:"rental_amount" yaml:"rental_amount"`
	StartDate    *time.Time `json:"start_date" yaml:"start_date"`
	EndDate      *time.Time `json:"end_date" yaml:"end_date"`
}

// ToBatch converts the request into a batch for organizationID. An empty
// strategy takes defaultStrategy; an unrecognized one is passed through so
// resolution degrades to server_wins and reports the fallback.
func (r *ReconcileRequest) ToBatch(callerID, organizationID string, defaultStrategy reconcile.Strategy) (commands.BatchRequest, error) {
	kind, err := reconcile.ParseKind(r.Kind)
	if err != nil {
		return commands.BatchRequest{}, err
	}

	strategy := defaultStrategy
	if s := strings.TrimSpace(r.Strategy); s != "" {
		if parsed, err := reconcile.ParseStrategy(s); err == nil {
			strategy = parsed
		} else {
			strategy = reconcile.Strategy(s)
		}
	}

	entities := make([]reconcile.Entity, 0, len(r.Entities))
	for i := range r.Entities {
		e, err := r.Entities[i].ToDomain(kind, organizationID)
		if err != nil {
			return commands.BatchRequest{}, err
		}
		entities = append(entities, e)
	}

	return commands.BatchRequest{
		CallerID:       callerID,
		OrganizationID: organizationID,
		Kind:           kind,
		Strategy:       strategy,
		Entities:       entities,
	}, nil
}

// ToDomain builds the entity of the given kind. The organization always comes
// from the caller, never from the payload.
func (p *EntityPayload) ToDomain(kind reconcile.Kind, organizationID string) (reconcile.Entity, error) {
	var e reconcile.Entity
	switch kind {
	case reconcile.KindAsset:
		e = &reconcile.Asset{}
	case reconcile.KindCustomer:
		e = &reconcile.Customer{}
	case reconcile.KindScanEvent:
		scan := &reconcile.ScanEvent{}
		if p.Timestamp != nil {
			scan.ScannedAt = *p.Timestamp
		}
		e = scan
	case reconcile.KindRentalAgreement:
		e = &reconcile.RentalAgreement{}
	default:
		return nil, errs.Wrap(errs.ErrUnknownKind, kind.String())
	}

	if err := copier.Copy(e, p); err != nil {
		return nil, errs.Wrap(err, "copy "+kind.String()+" payload")
	}
	setOrganization(e, organizationID)
	return e, nil
}

func setOrganization(e reconcile.Entity, organizationID string) {
	switch v := e.(type) {
	case *reconcile.Asset:
		v.OrganizationID = organizationID
	case *reconcile.Customer:
		v.OrganizationID = organizationID
	case *reconcile.ScanEvent:
		v.OrganizationID = organizationID
	case *reconcile.RentalAgreement:
		v.OrganizationID = organizationID
	}
}
