package queries

//go:generate mockgen -source=limits.go -destination=../../../tests/mock/queries/limits.go -package=queriesmock

import (
	"sort"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/usecase/governor"
)

type LimitStatusView struct {
	Operation      string `json:"operation"`
	Class          string `json:"class"`
	Limit          int    `json:"limit"`
	WindowSeconds  int    `json:"window_seconds"`
	Remaining      int    `json:"remaining"`
	ResetInSeconds int    `json:"reset_in"`
}

type PolicyView struct {
	Class         string `json:"class" yaml:"class"`
	MaxRequests   int    `json:"max_requests" yaml:"max_requests"`
	WindowSeconds int    `json:"window_seconds" yaml:"window_seconds"`
}

type LimitQueries interface {
	GetLimitStatus(callerID, operation string, class ratelimit.Class) LimitStatusView
	ListPolicies() []PolicyView
}

type limitQueriesImpl struct {
	governor *governor.Governor
}

func NewLimitQueries(gov *governor.Governor) LimitQueries {
	return &limitQueriesImpl{governor: gov}
}

// GetLimitStatus reports the caller's budget without consuming it.
func (q *limitQueriesImpl) GetLimitStatus(callerID, operation string, class ratelimit.Class) LimitStatusView {
	policy := q.governor.Table().Lookup(class)
	st := q.governor.Status(callerID, operation, class)
	return LimitStatusView{
		Operation:      operation,
		Class:          string(class),
		Limit:          policy.MaxRequests,
		WindowSeconds:  int(policy.Window.Seconds()),
		Remaining:      st.Remaining,
		ResetInSeconds: st.ResetInSeconds,
	}
}

// ListPolicies returns the effective policy table sorted by class.
func (q *limitQueriesImpl) ListPolicies() []PolicyView {
	policies := q.governor.Table().Policies()
	views := make([]PolicyView, 0, len(policies))
	for class, p := range policies {
		views = append(views, PolicyView{
			Class:         string(class),
			MaxRequests:   p.MaxRequests,
			WindowSeconds: int(p.Window.Seconds()),
		})
	}
	sort.Slice(views, func(i, j int) bool { return views[i].Class < views[j].Class })
	return views
}
