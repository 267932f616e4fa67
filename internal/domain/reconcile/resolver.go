package reconcile

import "time"

// DuplicateScanWindow is the span inside which two scans of the same barcode
// are the same physical scan submitted twice. The bound is exclusive.
const DuplicateScanWindow = 5 * time.Second

// Resolve decides which snapshot survives a conflict. It is pure and
// deterministic: the same record and strategy always yield the same outcome.
// Unknown strategies, AskUser and kinds without a merger degrade to the
// remote snapshot and report it through Outcome.Fallback.
func Resolve(c ConflictRecord, strategy Strategy) (Outcome, error) {
	if err := c.Validate(); err != nil {
		return Outcome{}, err
	}

	switch strategy {
	case StrategyClientWins:
		return useLocal(c), nil
	case StrategyServerWins:
		return useRemote(c), nil
	case StrategyMerge:
		return merge(c), nil
	case StrategyAskUser:
		return fallback(c, FallbackAskUser), nil
	default:
		return fallback(c, FallbackUnknownStrategy), nil
	}
}

func useLocal(c ConflictRecord) Outcome {
	return Outcome{Action: ActionUseLocal, Entity: c.Local}
}

func useRemote(c ConflictRecord) Outcome {
	return Outcome{Action: ActionUseRemote, Entity: c.Remote}
}

func fallback(c ConflictRecord, reason Fallback) Outcome {
	out := useRemote(c)
	out.Fallback = reason
	return out
}

// merge dispatches on the kind; snapshot types were checked by Validate.
func merge(c ConflictRecord) Outcome {
	switch c.Kind {
	case KindAsset:
		return mergeAsset(c.Local.(*Asset), c.Remote.(*Asset))
	case KindCustomer:
		return mergeCustomer(c.Local.(*Customer), c.Remote.(*Customer))
	case KindScanEvent:
		return mergeScan(c)
	case KindRentalAgreement:
		return mergeRental(c)
	default:
		return fallback(c, FallbackUnknownKind)
	}
}
