//go:build unit

package ratelimit_test

import (
	"testing"
	"time"

	"cylinder-sync/internal/domain/ratelimit"
	"cylinder-sync/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

func TestWindow_Admit(t *testing.T) {
	write := ratelimit.DefaultTable().Lookup(ratelimit.ClassWrite)

	t.Run("first call opens the window", func(t *testing.T) {
		var w ratelimit.Window
		d := w.Admit(t0, write)

		assert.True(t, d.Allowed)
		assert.Equal(t, write.MaxRequests-1, d.Remaining)
		assert.Equal(t, 1, w.Count)
		assert.Equal(t, t0, w.WindowStart)
		assert.Equal(t, t0, w.LastSeen)
	})

	t.Run("budget counts down then denies", func(t *testing.T) {
		var w ratelimit.Window
		for i := 1; i <= write.MaxRequests; i++ {
			d := w.Admit(t0, write)
			require.True(t, d.Allowed, "call %d", i)
			require.Equal(t, write.MaxRequests-i, d.Remaining, "call %d", i)
		}

		d := w.Admit(t0.Add(10*time.Second), write)
		assert.False(t, d.Allowed)
		assert.Equal(t, 0, d.Remaining)
		assert.Equal(t, 50, d.RetryAfterSeconds)
		assert.Equal(t, write.MaxRequests, w.Count, "denied calls are not counted")
	})

	t.Run("retry after rounds up partial seconds", func(t *testing.T) {
		p := ratelimit.Policy{MaxRequests: 1, Window: time.Minute}
		var w ratelimit.Window
		w.Admit(t0, p)

		d := w.Admit(t0.Add(59*time.Second+999*time.Millisecond), p)
		assert.False(t, d.Allowed)
		assert.Equal(t, 1, d.RetryAfterSeconds)
	})

	t.Run("window resets once its full length has elapsed", func(t *testing.T) {
		p := ratelimit.Policy{MaxRequests: 2, Window: time.Minute}
		var w ratelimit.Window
		w.Admit(t0, p)
		w.Admit(t0, p)
		require.False(t, w.Admit(t0.Add(59*time.Second), p).Allowed)

		d := w.Admit(t0.Add(time.Minute), p)
		assert.True(t, d.Allowed)
		assert.Equal(t, p.MaxRequests-1, d.Remaining)
		assert.Equal(t, t0.Add(time.Minute), w.WindowStart)
	})

	t.Run("boundary burst is accepted", func(t *testing.T) {
		p := ratelimit.Policy{MaxRequests: 3, Window: time.Minute}
		var w ratelimit.Window
		admitted := 0
		for _, at := range []time.Duration{0, 59 * time.Second, 59 * time.Second, 60 * time.Second, 60 * time.Second, 60 * time.Second} {
			if w.Admit(t0.Add(at), p).Allowed {
				admitted++
			}
		}
		assert.Equal(t, 2*p.MaxRequests, admitted)
	})

	t.Run("peek does not consume budget", func(t *testing.T) {
		p := ratelimit.Policy{MaxRequests: 5, Window: time.Minute}
		var w ratelimit.Window
		left, resetIn := w.Peek(t0, p)
		assert.Equal(t, 5, left)
		assert.Zero(t, resetIn)

		w.Admit(t0, p)
		left, resetIn = w.Peek(t0.Add(20*time.Second), p)
		assert.Equal(t, 4, left)
		assert.Equal(t, 40*time.Second, resetIn)
		assert.Equal(t, 1, w.Count)
	})
}

func TestTable(t *testing.T) {
	t.Run("lookup is total", func(t *testing.T) {
		table := ratelimit.DefaultTable()
		assert.Equal(t, ratelimit.Policy{MaxRequests: 5, Window: time.Minute}, table.Lookup(ratelimit.ClassAuth))
		assert.Equal(t, ratelimit.Policy{MaxRequests: 100, Window: time.Minute}, table.Lookup(ratelimit.ClassRead))
		assert.Equal(t, ratelimit.Policy{MaxRequests: 60, Window: time.Minute}, table.Lookup(ratelimit.ClassScan))
		assert.Equal(t, table.Lookup(ratelimit.ClassDefault), table.Lookup("made-up"))
	})

	t.Run("default class is always present", func(t *testing.T) {
		table, err := ratelimit.NewTable(map[ratelimit.Class]ratelimit.Policy{
			ratelimit.ClassWrite: {MaxRequests: 1, Window: time.Second},
		})
		require.NoError(t, err)
		assert.Equal(t, 50, table.Lookup("anything").MaxRequests)
	})

	t.Run("overrides replace single classes", func(t *testing.T) {
		table, err := ratelimit.DefaultTable().WithOverrides(map[string]string{"write": "40/2m", "bulk": "5/10s"})
		require.NoError(t, err)
		assert.Equal(t, ratelimit.Policy{MaxRequests: 40, Window: 2 * time.Minute}, table.Lookup(ratelimit.ClassWrite))
		assert.Equal(t, ratelimit.Policy{MaxRequests: 5, Window: 10 * time.Second}, table.Lookup("bulk"))
		assert.Equal(t, 5*time.Minute, table.LongestWindow())
	})

	t.Run("invalid overrides are rejected", func(t *testing.T) {
		for _, raw := range []string{"40", "x/1m", "10/soon", "0/1m", "5/-1s"} {
			_, err := ratelimit.DefaultTable().WithOverrides(map[string]string{"write": raw})
			require.ErrorIs(t, err, errs.ErrInvalidPolicy, raw)
		}
	})
}
