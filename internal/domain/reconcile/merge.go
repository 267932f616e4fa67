package reconcile

import (
	"time"

	"cylinder-sync/internal/pkg/patch"
)

// mergeAsset keeps the server's identity fields, takes the movement fields
// from the newer side and never lets the fill counter go backwards.
func mergeAsset(local, remote *Asset) Outcome {
	merged := *remote

	newer := remote
	if local.VersionMillis() > remote.VersionMillis() {
		newer = local
	}
	merged.Status = newer.Status
	merged.Location = newer.Location
	merged.AssignedCustomer = newer.AssignedCustomer

	// fill_count only grows; the newer side may not have seen the other's increment
	merged.FillCount = max(local.FillCount, remote.FillCount)

	if v := newer.Version(); !v.IsZero() {
		merged.UpdatedAt = timePtr(v)
	}

	return Outcome{Action: ActionMerge, Entity: &merged}
}

// mergeCustomer keeps centrally managed fields from the server and contact
// edits made on the device, whatever the clocks say.
func mergeCustomer(local, remote *Customer) Outcome {
	merged := *remote
	merged.Phone = patch.FirstNonEmpty(local.Phone, remote.Phone)
	merged.Email = patch.FirstNonEmpty(local.Email, remote.Email)
	merged.Address = patch.FirstNonEmpty(local.Address, remote.Address)

	return Outcome{Action: ActionMerge, Entity: &merged}
}

// mergeScan never combines fields. A retried submission of the same scan is
// dropped in favour of the server copy; a distinct scan is kept so the
// caller can insert it as a new row.
func mergeScan(c ConflictRecord) Outcome {
	local, remote := c.Local.(*ScanEvent), c.Remote.(*ScanEvent)
	if local.BottleBarcode == remote.BottleBarcode && absDuration(local.scanTime().Sub(remote.scanTime())) < DuplicateScanWindow {
		return useRemote(c)
	}
	return useLocal(c)
}

// mergeRental is plain last-writer-wins on the version timestamp.
func mergeRental(c ConflictRecord) Outcome {
	if c.Local.Metadata().VersionMillis() > c.Remote.Metadata().VersionMillis() {
		return useLocal(c)
	}
	return useRemote(c)
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}

func timePtr(t time.Time) *time.Time {
	return &t
}
