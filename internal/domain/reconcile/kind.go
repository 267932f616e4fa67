package reconcile

import (
	"strings"

	"cylinder-sync/internal/pkg/errs"
)

// Kind is the closed set of entity collections that take part in sync.
type Kind int

const (
	KindAsset Kind = iota + 1
	KindCustomer
	KindScanEvent
	KindRentalAgreement
)

// Kinds lists every supported kind in a stable order.
var Kinds = []Kind{KindAsset, KindCustomer, KindScanEvent, KindRentalAgreement}

func (k Kind) String() string {
	switch k {
	case KindAsset:
		return "asset"
	case KindCustomer:
		return "customer"
	case KindScanEvent:
		return "scan"
	case KindRentalAgreement:
		return "rental"
	default:
		return "unknown"
	}
}

// Table is the remote table holding rows of this kind.
func (k Kind) Table() string {
	switch k {
	case KindAsset:
		return "bottles"
	case KindCustomer:
		return "customers"
	case KindScanEvent:
		return "bottle_scans"
	case KindRentalAgreement:
		return "rentals"
	default:
		return ""
	}
}

func (k Kind) Valid() bool {
	return k >= KindAsset && k <= KindRentalAgreement
}

// ParseKind accepts wire names ("asset", "bottle", "scan", ...) and table names.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "asset", "bottle", "bottles", "cylinder":
		return KindAsset, nil
	case "customer", "customers":
		return KindCustomer, nil
	case "scan", "scan_event", "bottle_scans":
		return KindScanEvent, nil
	case "rental", "rental_agreement", "rentals":
		return KindRentalAgreement, nil
	default:
		return 0, errs.Wrap(errs.ErrUnknownKind, "parse kind "+s)
	}
}
