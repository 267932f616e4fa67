package reconcile

import (
	"time"

	"cylinder-sync/internal/pkg/patch"
)

// Entity is implemented only by the snapshot types of this package.
type Entity interface {
	Kind() Kind
	Metadata() Meta
	sealed()
}

// Meta is the part of every row the reconciler relies on.
type Meta struct {
	ID             string
	OrganizationID string
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

// Version is updated_at, falling back to created_at; zero if both are missing.
func (m Meta) Version() time.Time {
	return patch.Coalesce(patch.FirstNonNil(m.UpdatedAt, m.CreatedAt), time.Time{})
}

// VersionMillis is Version at the millisecond resolution used for comparisons.
func (m Meta) VersionMillis() int64 {
	v := m.Version()
	if v.IsZero() {
		return 0
	}
	return v.UnixMilli()
}

type Asset struct {
	Meta
	SerialNumber     string
	Barcode          string
	Status           string
	Location         string
	AssignedCustomer string
	FillCount        int
}

type Customer struct {
	Meta
	Name           string
	CustomerListID string
	Phone          string
	Email          string
	Address        string
}

type ScanEvent struct {
	Meta
	BottleBarcode string
	OrderNumber   string
	Mode          string
	CustomerID    string
	CustomerName  string
	Location      string
	UserID        string
	ScannedAt     time.Time
}

type RentalAgreement struct {
	Meta
	CustomerID    string
	BottleBarcode string
	Status        string
	RentalType    string
	RentalAmount  float64
	StartDate     *time.Time
	EndDate       *time.Time
}

func (*Asset) Kind() Kind           { return KindAsset }
func (*Customer) Kind() Kind        { return KindCustomer }
func (*ScanEvent) Kind() Kind       { return KindScanEvent }
func (*RentalAgreement) Kind() Kind { return KindRentalAgreement }

func (a *Asset) Metadata() Meta           { return a.Meta }
func (c *Customer) Metadata() Meta        { return c.Meta }
func (s *ScanEvent) Metadata() Meta       { return s.Meta }
func (r *RentalAgreement) Metadata() Meta { return r.Meta }

func (*Asset) sealed()           {}
func (*Customer) sealed()        {}
func (*ScanEvent) sealed()       {}
func (*RentalAgreement) sealed() {}

// scanTime is when the scan happened; rows written before scanned_at existed
// only carry the meta timestamps.
func (s *ScanEvent) scanTime() time.Time {
	if !s.ScannedAt.IsZero() {
		return s.ScannedAt
	}
	return s.Version()
}

// IsNil reports whether e is nil or a typed nil pointer.
func IsNil(e Entity) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *Asset:
		return v == nil
	case *Customer:
		return v == nil
	case *ScanEvent:
		return v == nil
	case *RentalAgreement:
		return v == nil
	default:
		return false
	}
}
