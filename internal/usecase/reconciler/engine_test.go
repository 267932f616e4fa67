//go:build unit

package reconciler_test

import (
	"context"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	domreconcile "cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/pkg/config"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/internal/usecase/reconciler"
	"cylinder-sync/tests/common/builder"
	sharedmock "cylinder-sync/tests/mock/shared"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const orgID = "7d4f9c1e-1111-4a5b-9c0d-000000000001"

func inOrg(b *builder.AssetBuilder) { b.OrganizationID = orgID }

func newEngine(t *testing.T, mutate func(*config.Config)) (*reconciler.Engine, *sharedmock.MockRemoteReader) {
	t.Helper()
	ctrl := gomock.NewController(t)
	reader := sharedmock.NewMockRemoteReader(ctrl)
	cfg := config.NewTestConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return reconciler.NewEngine(reader, cfg, logger), reader
}

// remoteByID serves remote snapshots from a map and reports everything else as not found.
func remoteByID(remotes map[string]domreconcile.Entity) func(context.Context, domreconcile.Kind, string, string) (domreconcile.Entity, error) {
	return func(_ context.Context, _ domreconcile.Kind, id, _ string) (domreconcile.Entity, error) {
		if e, ok := remotes[id]; ok {
			return e, nil
		}
		return nil, errs.Wrap(domreconcile.ErrRemoteNotFound, id)
	}
}

func TestEngine_Detect(t *testing.T) {
	t.Run("sorts entities and keeps input order", func(t *testing.T) {
		engine, reader := newEngine(t, nil)

		l1, r1 := builder.AssetPair(func(b *builder.AssetBuilder) { inOrg(b); b.UpdatedAt = builder.At(time.Minute) }, inOrg)
		l2, r2 := builder.AssetPair(inOrg, inOrg)
		l3, r3 := builder.AssetPair(inOrg, func(b *builder.AssetBuilder) { inOrg(b); b.UpdatedAt = builder.At(2 * time.Minute) })
		l4 := builder.NewAssetBuilder().With(inOrg).BuildDomain()
		l5 := builder.NewAssetBuilder().With(func(b *builder.AssetBuilder) { inOrg(b); b.ID = "" }).BuildDomain()

		reader.EXPECT().FetchByIdentity(gomock.Any(), domreconcile.KindAsset, gomock.Any(), orgID).
			DoAndReturn(remoteByID(map[string]domreconcile.Entity{l1.ID: r1, l2.ID: r2, l3.ID: r3})).
			Times(4)

		report, err := engine.Detect(context.Background(), []domreconcile.Entity{l1, l2, l3, l4, l5}, domreconcile.KindAsset, orgID)
		require.NoError(t, err)

		require.Len(t, report.Conflicts, 2)
		assert.Equal(t, l1.ID, report.Conflicts[0].ID)
		assert.Same(t, l1, report.Conflicts[0].Local)
		assert.Same(t, r1, report.Conflicts[0].Remote)
		assert.Equal(t, l3.ID, report.Conflicts[1].ID)
		assert.Equal(t, []string{l2.ID}, report.InSync)
		assert.Equal(t, []domreconcile.Entity{l4, l5}, report.Missing)
		assert.Empty(t, report.Failed)
	})

	t.Run("read failure skips only that entity", func(t *testing.T) {
		engine, reader := newEngine(t, nil)

		bad := builder.NewAssetBuilder().With(inOrg).BuildDomain()
		l, r := builder.AssetPair(inOrg, func(b *builder.AssetBuilder) { inOrg(b); b.UpdatedAt = builder.At(time.Second) })

		reader.EXPECT().FetchByIdentity(gomock.Any(), domreconcile.KindAsset, bad.ID, orgID).
			Return(nil, assert.AnError)
		reader.EXPECT().FetchByIdentity(gomock.Any(), domreconcile.KindAsset, l.ID, orgID).
			Return(r, nil)

		report, err := engine.Detect(context.Background(), []domreconcile.Entity{bad, l}, domreconcile.KindAsset, orgID)
		require.NoError(t, err)

		require.Len(t, report.Conflicts, 1)
		assert.Equal(t, l.ID, report.Conflicts[0].ID)
		require.Len(t, report.Failed, 1)
		assert.Equal(t, bad.ID, report.Failed[0].ID)
		assert.ErrorIs(t, report.Failed[0].Err, errs.ErrRemoteRead)
	})

	t.Run("slow read times out and is reported as failed", func(t *testing.T) {
		engine, reader := newEngine(t, func(c *config.Config) { c.Sync.ReadTimeout = 20 * time.Millisecond })

		l := builder.NewAssetBuilder().With(inOrg).BuildDomain()
		reader.EXPECT().FetchByIdentity(gomock.Any(), gomock.Any(), l.ID, orgID).
			DoAndReturn(func(ctx context.Context, _ domreconcile.Kind, _, _ string) (domreconcile.Entity, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			})

		report, err := engine.Detect(context.Background(), []domreconcile.Entity{l}, domreconcile.KindAsset, orgID)
		require.NoError(t, err)
		assert.Empty(t, report.Conflicts)
		require.Len(t, report.Failed, 1)
		assert.ErrorIs(t, report.Failed[0].Err, errs.ErrRemoteRead)
	})

	t.Run("cancelled caller gets partial result and context error", func(t *testing.T) {
		engine, reader := newEngine(t, nil)
		reader.EXPECT().FetchByIdentity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		l := builder.NewAssetBuilder().With(inOrg).BuildDomain()
		report, err := engine.Detect(ctx, []domreconcile.Entity{l}, domreconcile.KindAsset, orgID)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, report.Conflicts)
		assert.Empty(t, report.Failed)
	})

	t.Run("reads are bounded by MaxConcurrentReads", func(t *testing.T) {
		engine, reader := newEngine(t, func(c *config.Config) { c.Sync.MaxConcurrentReads = 2 })

		var inFlight, peak atomic.Int32
		reader.EXPECT().FetchByIdentity(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(context.Context, domreconcile.Kind, string, string) (domreconcile.Entity, error) {
				n := inFlight.Add(1)
				for {
					p := peak.Load()
					if n <= p || peak.CompareAndSwap(p, n) {
						break
					}
				}
				time.Sleep(5 * time.Millisecond)
				inFlight.Add(-1)
				return nil, domreconcile.ErrRemoteNotFound
			}).Times(10)

		locals := make([]domreconcile.Entity, 10)
		for i := range locals {
			locals[i] = builder.NewAssetBuilder().With(inOrg).BuildDomain()
		}

		report, err := engine.Detect(context.Background(), locals, domreconcile.KindAsset, orgID)
		require.NoError(t, err)
		assert.Len(t, report.Missing, 10)
		assert.LessOrEqual(t, peak.Load(), int32(2))
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		engine, reader := newEngine(t, nil)

		l, r := builder.CustomerPair(func(b *builder.CustomerBuilder) { b.Phone = "" }, func(b *builder.CustomerBuilder) {
			b.UpdatedAt = builder.At(time.Hour)
		})
		before := *l
		reader.EXPECT().FetchByIdentity(gomock.Any(), domreconcile.KindCustomer, l.ID, l.OrganizationID).Return(r, nil)

		conflicts, err := engine.DetectConflicts(context.Background(), []domreconcile.Entity{l}, domreconcile.KindCustomer, l.OrganizationID)
		require.NoError(t, err)
		require.Len(t, conflicts, 1)

		_, err = engine.Resolve(context.Background(), conflicts[0], domreconcile.StrategyMerge)
		require.NoError(t, err)
		if diff := cmp.Diff(before, *l); diff != "" {
			t.Errorf("local entity mutated (-before +after):\n%s", diff)
		}
	})
}

type promptFunc func(context.Context, domreconcile.ConflictRecord) (domreconcile.Strategy, error)

func (f promptFunc) Choose(ctx context.Context, c domreconcile.ConflictRecord) (domreconcile.Strategy, error) {
	return f(ctx, c)
}

func TestEngine_Resolve(t *testing.T) {
	l, r := builder.RentalPair(func(b *builder.RentalBuilder) { b.UpdatedAt = builder.At(time.Hour) }, builder.Noop[builder.RentalBuilder])
	record, err := domreconcile.NewConflictRecord(domreconcile.KindRentalAgreement, l, r)
	require.NoError(t, err)

	tests := []struct {
		name         string
		prompter     reconciler.Prompter
		strategy     domreconcile.Strategy
		wantAction   domreconcile.Action
		wantFallback domreconcile.Fallback
		wantEntity   domreconcile.Entity
	}{
		{
			name:       "merge picks later rental",
			strategy:   domreconcile.StrategyMerge,
			wantAction: domreconcile.ActionUseLocal,
			wantEntity: l,
		},
		{
			name:         "ask user without prompter falls back to server",
			strategy:     domreconcile.StrategyAskUser,
			wantAction:   domreconcile.ActionUseRemote,
			wantFallback: domreconcile.FallbackAskUser,
			wantEntity:   r,
		},
		{
			name: "prompter choice is applied",
			prompter: promptFunc(func(context.Context, domreconcile.ConflictRecord) (domreconcile.Strategy, error) {
				return domreconcile.StrategyClientWins, nil
			}),
			strategy:   domreconcile.StrategyAskUser,
			wantAction: domreconcile.ActionUseLocal,
			wantEntity: l,
		},
		{
			name: "prompter failure keeps fallback",
			prompter: promptFunc(func(context.Context, domreconcile.ConflictRecord) (domreconcile.Strategy, error) {
				return "", assert.AnError
			}),
			strategy:     domreconcile.StrategyAskUser,
			wantAction:   domreconcile.ActionUseRemote,
			wantFallback: domreconcile.FallbackAskUser,
			wantEntity:   r,
		},
		{
			name:         "unknown strategy falls back to server",
			strategy:     domreconcile.Strategy("coin_flip"),
			wantAction:   domreconcile.ActionUseRemote,
			wantFallback: domreconcile.FallbackUnknownStrategy,
			wantEntity:   r,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, _ := newEngine(t, nil)
			if tt.prompter != nil {
				engine.WithPrompter(tt.prompter)
			}

			out, err := engine.Resolve(context.Background(), record, tt.strategy)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAction, out.Action)
			assert.Equal(t, tt.wantFallback, out.Fallback)
			assert.Same(t, tt.wantEntity, out.Entity)
		})
	}

	t.Run("malformed record is rejected", func(t *testing.T) {
		engine, _ := newEngine(t, nil)

		_, err := engine.Resolve(context.Background(), domreconcile.ConflictRecord{ID: l.ID, Kind: domreconcile.KindRentalAgreement, Local: l}, domreconcile.StrategyServerWins)
		assert.ErrorIs(t, err, errs.ErrInvalidConflict)
	})
}
