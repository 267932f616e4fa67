package ratelimit

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"cylinder-sync/internal/pkg/errs"
)

// Class names a budget in the policy table.
type Class string

const (
	ClassAuth          Class = "auth"
	ClassLogin         Class = "login"
	ClassPasswordReset Class = "passwordReset"
	ClassRead          Class = "read"
	ClassSearch        Class = "search"
	ClassWrite         Class = "write"
	ClassScan          Class = "scan"
	ClassDelete        Class = "delete"
	ClassDefault       Class = "default"
)

type Policy struct {
	MaxRequests int
	Window      time.Duration
}

func (p Policy) String() string {
	return fmt.Sprintf("%d/%s", p.MaxRequests, p.Window)
}

// Table maps classes to policies. Lookup is total: anything not listed
// resolves to the default class.
type Table struct {
	policies map[Class]Policy
}

func DefaultPolicies() map[Class]Policy {
	return map[Class]Policy{
		ClassAuth:          {MaxRequests: 5, Window: time.Minute},
		ClassLogin:         {MaxRequests: 5, Window: time.Minute},
		ClassPasswordReset: {MaxRequests: 3, Window: 5 * time.Minute},
		ClassRead:          {MaxRequests: 100, Window: time.Minute},
		ClassSearch:        {MaxRequests: 30, Window: time.Minute},
		ClassWrite:         {MaxRequests: 30, Window: time.Minute},
		ClassScan:          {MaxRequests: 60, Window: time.Minute},
		ClassDelete:        {MaxRequests: 10, Window: time.Minute},
		ClassDefault:       {MaxRequests: 50, Window: time.Minute},
	}
}

func DefaultTable() *Table {
	t, _ := NewTable(DefaultPolicies())
	return t
}

func NewTable(policies map[Class]Policy) (*Table, error) {
	copied := make(map[Class]Policy, len(policies)+1)
	for class, p := range policies {
		if p.MaxRequests <= 0 || p.Window <= 0 {
			return nil, errs.Wrap(errs.ErrInvalidPolicy, "class "+string(class)+": "+p.String())
		}
		copied[class] = p
	}
	if _, ok := copied[ClassDefault]; !ok {
		copied[ClassDefault] = DefaultPolicies()[ClassDefault]
	}
	return &Table{policies: copied}, nil
}

// WithOverrides returns a copy of t with the given "max/window" overrides applied,
// e.g. {"write": "40/1m"}.
func (t *Table) WithOverrides(overrides map[string]string) (*Table, error) {
	merged := make(map[Class]Policy, len(t.policies)+len(overrides))
	for class, p := range t.policies {
		merged[class] = p
	}
	for class, raw := range overrides {
		p, err := ParsePolicy(raw)
		if err != nil {
			return nil, errs.Wrap(err, "override for class "+class)
		}
		merged[Class(strings.TrimSpace(class))] = p
	}
	return NewTable(merged)
}

func (t *Table) Lookup(class Class) Policy {
	if p, ok := t.policies[class]; ok {
		return p
	}
	return t.policies[ClassDefault]
}

// Policies returns a copy of the table contents.
func (t *Table) Policies() map[Class]Policy {
	out := make(map[Class]Policy, len(t.policies))
	for class, p := range t.policies {
		out[class] = p
	}
	return out
}

// LongestWindow is the largest window of any class.
func (t *Table) LongestWindow() time.Duration {
	var longest time.Duration
	for _, p := range t.policies {
		longest = max(longest, p.Window)
	}
	return longest
}

// ParsePolicy parses "<max>/<duration>", e.g. "30/60s".
func ParsePolicy(raw string) (Policy, error) {
	maxPart, windowPart, ok := strings.Cut(strings.TrimSpace(raw), "/")
	if !ok {
		return Policy{}, errs.Wrap(errs.ErrInvalidPolicy, "expected <max>/<window>, got "+raw)
	}
	n, err := strconv.Atoi(strings.TrimSpace(maxPart))
	if err != nil {
		return Policy{}, errs.Wrap(errs.ErrInvalidPolicy, "max requests "+maxPart)
	}
	window, err := time.ParseDuration(strings.TrimSpace(windowPart))
	if err != nil {
		return Policy{}, errs.Wrap(errs.ErrInvalidPolicy, "window "+windowPart)
	}
	p := Policy{MaxRequests: n, Window: window}
	if p.MaxRequests <= 0 || p.Window <= 0 {
		return Policy{}, errs.Wrap(errs.ErrInvalidPolicy, raw)
	}
	return p, nil
}
