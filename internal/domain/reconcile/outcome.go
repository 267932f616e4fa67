package reconcile

import (
	"strings"

	"cylinder-sync/internal/pkg/errs"
)

type Strategy string

const (
	StrategyClientWins Strategy = "client_wins"
	StrategyServerWins Strategy = "server_wins"
	StrategyMerge      Strategy = "merge"
	StrategyAskUser    Strategy = "ask_user"
)

func ParseStrategy(s string) (Strategy, error) {
	switch st := Strategy(strings.ToLower(strings.TrimSpace(s))); st {
	case StrategyClientWins, StrategyServerWins, StrategyMerge, StrategyAskUser:
		return st, nil
	default:
		return "", errs.Wrap(errs.ErrUnknownStrategy, "parse strategy "+s)
	}
}

type Action string

const (
	ActionUseLocal  Action = "use_local"
	ActionUseRemote Action = "use_remote"
	ActionMerge     Action = "merge"
	ActionSkip      Action = "skip"
)

// Fallback names a documented degradation to ServerWins.
type Fallback string

const (
	FallbackNone            Fallback = ""
	FallbackAskUser         Fallback = "ask_user"
	FallbackUnknownStrategy Fallback = "unknown_strategy"
	FallbackUnknownKind     Fallback = "unknown_kind"
)

// Outcome is the decision for one ConflictRecord. Entity is nil only for ActionSkip.
type Outcome struct {
	Action   Action
	Entity   Entity
	Fallback Fallback
}

func Skip() Outcome {
	return Outcome{Action: ActionSkip}
}
