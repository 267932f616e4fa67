//go:build unit || e2e

package builder

import (
	"time"

	"cylinder-sync/internal/domain/reconcile"
	reqdto "cylinder-sync/internal/handler/dto/request"

	"github.com/google/uuid"
)

// BaseTime is the reference clock reading used by entity builders.
var BaseTime = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func At(offset time.Duration) *time.Time {
	t := BaseTime.Add(offset)
	return &t
}

// ================================================================================
// Asset
// ================================================================================

type AssetBuilder struct {
	ID               string
	OrganizationID   string
	SerialNumber     string
	Barcode          string
	Status           string
	Location         string
	AssignedCustomer string
	FillCount        int
	CreatedAt        *time.Time
	UpdatedAt        *time.Time
}

func NewAssetBuilder() *AssetBuilder {
	return &AssetBuilder{
		ID:               uuid.NewString(),
		OrganizationID:   uuid.NewString(),
		SerialNumber:     "SN-000123",
		Barcode:          "654321987",
		Status:           "full",
		Location:         "Warehouse A",
		AssignedCustomer: "",
		FillCount:        3,
		CreatedAt:        At(-24 * time.Hour),
		UpdatedAt:        At(0),
	}
}

func (b *AssetBuilder) With(mutate func(*AssetBuilder)) *AssetBuilder {
	mutate(b)
	return b
}

func (b *AssetBuilder) BuildDomain() *reconcile.Asset {
	return &reconcile.Asset{
		Meta: reconcile.Meta{
			ID:             b.ID,
			OrganizationID: b.OrganizationID,
			CreatedAt:      b.CreatedAt,
			UpdatedAt:      b.UpdatedAt,
		},
		SerialNumber:     b.SerialNumber,
		Barcode:          b.Barcode,
		Status:           b.Status,
		Location:         b.Location,
		AssignedCustomer: b.AssignedCustomer,
		FillCount:        b.FillCount,
	}
}

func (b *AssetBuilder) BuildPayload() reqdto.EntityPayload {
	return reqdto.EntityPayload{
		ID:               b.ID,
		CreatedAt:        b.CreatedAt,
		UpdatedAt:        b.UpdatedAt,
		SerialNumber:     b.SerialNumber,
		Barcode:          b.Barcode,
		Status:           b.Status,
		Location:         b.Location,
		AssignedCustomer: b.AssignedCustomer,
		FillCount:        b.FillCount,
	}
}

// ================================================================================
// Customer
// ================================================================================

type CustomerBuilder struct {
	ID             string
	OrganizationID string
	Name           string
	CustomerListID string
	Phone          string
	Email          string
	Address        string
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func NewCustomerBuilder() *CustomerBuilder {
	return &CustomerBuilder{
		ID:             uuid.NewString(),
		OrganizationID: uuid.NewString(),
		Name:           "Acme Welding",
		CustomerListID: "80000001-1234567890",
		Phone:          "555-0100",
		Email:          "orders@acme.example",
		Address:        "1 Industrial Way",
		CreatedAt:      At(-24 * time.Hour),
		UpdatedAt:      At(0),
	}
}

func (b *CustomerBuilder) With(mutate func(*CustomerBuilder)) *CustomerBuilder {
	mutate(b)
	return b
}

func (b *CustomerBuilder) BuildDomain() *reconcile.Customer {
	return &reconcile.Customer{
		Meta: reconcile.Meta{
			ID:             b.ID,
			OrganizationID: b.OrganizationID,
			CreatedAt:      b.CreatedAt,
			UpdatedAt:      b.UpdatedAt,
		},
		Name:           b.Name,
		CustomerListID: b.CustomerListID,
		Phone:          b.Phone,
		Email:          b.Email,
		Address:        b.Address,
	}
}

func (b *CustomerBuilder) BuildPayload() reqdto.EntityPayload {
	return reqdto.EntityPayload{
		ID:             b.ID,
		CreatedAt:      b.CreatedAt,
		UpdatedAt:      b.UpdatedAt,
		Name:           b.Name,
		CustomerListID: b.CustomerListID,
		Phone:          b.Phone,
		Email:          b.Email,
		Address:        b.Address,
	}
}

// ================================================================================
// ScanEvent
// ================================================================================

type ScanBuilder struct {
	ID             string
	OrganizationID string
	BottleBarcode  string
	OrderNumber    string
	Mode           string
	CustomerID     string
	CustomerName   string
	Location       string
	UserID         string
	ScannedAt      time.Time
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func NewScanBuilder() *ScanBuilder {
	return &ScanBuilder{
		ID:             uuid.NewString(),
		OrganizationID: uuid.NewString(),
		BottleBarcode:  "654321987",
		OrderNumber:    "SO-1001",
		Mode:           "SHIP",
		CustomerID:     "80000001-1234567890",
		CustomerName:   "Acme Welding",
		Location:       "Dock 2",
		UserID:         uuid.NewString(),
		ScannedAt:      BaseTime,
		CreatedAt:      At(0),
		UpdatedAt:      At(0),
	}
}

func (b *ScanBuilder) With(mutate func(*ScanBuilder)) *ScanBuilder {
	mutate(b)
	return b
}

func (b *ScanBuilder) BuildDomain() *reconcile.ScanEvent {
	return &reconcile.ScanEvent{
		Meta: reconcile.Meta{
			ID:             b.ID,
			OrganizationID: b.OrganizationID,
			CreatedAt:      b.CreatedAt,
			UpdatedAt:      b.UpdatedAt,
		},
		BottleBarcode: b.BottleBarcode,
		OrderNumber:   b.OrderNumber,
		Mode:          b.Mode,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		Location:      b.Location,
		UserID:        b.UserID,
		ScannedAt:     b.ScannedAt,
	}
}

func (b *ScanBuilder) BuildPayload() reqdto.EntityPayload {
	scannedAt := b.ScannedAt
	return reqdto.EntityPayload{
		ID:            b.ID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		BottleBarcode: b.BottleBarcode,
		OrderNumber:   b.OrderNumber,
		Mode:          b.Mode,
		CustomerID:    b.CustomerID,
		CustomerName:  b.CustomerName,
		Location:      b.Location,
		UserID:        b.UserID,
		Timestamp:     &scannedAt,
	}
}

// ================================================================================
// RentalAgreement
// ================================================================================

type RentalBuilder struct {
	ID             string
	OrganizationID string
	CustomerID     string
	BottleBarcode  string
	Status         string
	RentalType     string
	RentalAmount   float64
	StartDate      *time.Time
	EndDate        *time.Time
	CreatedAt      *time.Time
	UpdatedAt      *time.Time
}

func NewRentalBuilder() *RentalBuilder {
	return &RentalBuilder{
		ID:             uuid.NewString(),
		OrganizationID: uuid.NewString(),
		CustomerID:     "80000001-1234567890",
		BottleBarcode:  "654321987",
		Status:         "active",
		RentalType:     "monthly",
		RentalAmount:   12.5,
		StartDate:      At(-30 * 24 * time.Hour),
		CreatedAt:      At(-30 * 24 * time.Hour),
		UpdatedAt:      At(0),
	}
}

func (b *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(b)
	return b
}

func (b *RentalBuilder) BuildDomain() *reconcile.RentalAgreement {
	return &reconcile.RentalAgreement{
		Meta: reconcile.Meta{
			ID:             b.ID,
			OrganizationID: b.OrganizationID,
			CreatedAt:      b.CreatedAt,
			UpdatedAt:      b.UpdatedAt,
		},
		CustomerID:    b.CustomerID,
		BottleBarcode: b.BottleBarcode,
		Status:        b.Status,
		RentalType:    b.RentalType,
		RentalAmount:  b.RentalAmount,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
	}
}

func (b *RentalBuilder) BuildPayload() reqdto.EntityPayload {
	return reqdto.EntityPayload{
		ID:            b.ID,
		CreatedAt:     b.CreatedAt,
		UpdatedAt:     b.UpdatedAt,
		CustomerID:    b.CustomerID,
		BottleBarcode: b.BottleBarcode,
		Status:        b.Status,
		RentalType:    b.RentalType,
		RentalAmount:  b.RentalAmount,
		StartDate:     b.StartDate,
		EndDate:       b.EndDate,
	}
}

// ================================================================================
// Pairs
// ================================================================================

// AssetPair returns a local and a remote snapshot of the same asset; mutate
// the remote copy to diverge.
func AssetPair(mutateLocal, mutateRemote func(*AssetBuilder)) (*reconcile.Asset, *reconcile.Asset) {
	base := NewAssetBuilder()
	local, remote := *base, *base
	return local.With(mutateLocal).BuildDomain(), remote.With(mutateRemote).BuildDomain()
}

func CustomerPair(mutateLocal, mutateRemote func(*CustomerBuilder)) (*reconcile.Customer, *reconcile.Customer) {
	base := NewCustomerBuilder()
	local, remote := *base, *base
	return local.With(mutateLocal).BuildDomain(), remote.With(mutateRemote).BuildDomain()
}

func ScanPair(mutateLocal, mutateRemote func(*ScanBuilder)) (*reconcile.ScanEvent, *reconcile.ScanEvent) {
	base := NewScanBuilder()
	local, remote := *base, *base
	return local.With(mutateLocal).BuildDomain(), remote.With(mutateRemote).BuildDomain()
}

func RentalPair(mutateLocal, mutateRemote func(*RentalBuilder)) (*reconcile.RentalAgreement, *reconcile.RentalAgreement) {
	base := NewRentalBuilder()
	local, remote := *base, *base
	return local.With(mutateLocal).BuildDomain(), remote.With(mutateRemote).BuildDomain()
}

// Noop leaves a builder untouched.
func Noop[T any](*T) {}
