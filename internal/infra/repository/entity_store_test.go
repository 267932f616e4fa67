//go:build unit

package repository

import (
	"context"
	"io"
	"log/slog"
	"reflect"
	"strings"
	"testing"
	"time"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/infra"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/tests/common/builder"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDBTX struct {
	mock.Mock
}

func (m *MockDBTX) Exec(ctx context.Context, query string, args ...any) (pgconn.CommandTag, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgconn.CommandTag), mockArgs.Error(1)
}

func (m *MockDBTX) Query(ctx context.Context, query string, args ...any) (pgx.Rows, error) {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Rows), mockArgs.Error(1)
}

func (m *MockDBTX) QueryRow(ctx context.Context, query string, args ...any) pgx.Row {
	mockArgs := m.Called(ctx, query, args)
	return mockArgs.Get(0).(pgx.Row)
}

func (m *MockDBTX) Begin(ctx context.Context) (pgx.Tx, error) {
	mockArgs := m.Called(ctx)
	return mockArgs.Get(0).(pgx.Tx), mockArgs.Error(1)
}

// fakeRow scans fixed values into the destinations in order.
type fakeRow struct {
	values []any
	err    error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	for i, d := range dest {
		reflect.ValueOf(d).Elem().Set(reflect.ValueOf(r.values[i]))
	}
	return nil
}

func text(s string) pgtype.Text { return pgtype.Text{String: s, Valid: true} }

func ts(t time.Time) pgtype.Timestamptz { return pgtype.Timestamptz{Time: t, Valid: true} }

func newStore(m *MockDBTX) *EntityStore {
	return NewEntityStoreWithDB(m, m, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func sqlHas(fragment string) any {
	return mock.MatchedBy(func(q string) bool { return strings.Contains(q, fragment) })
}

func TestEntityStore_FetchByIdentity(t *testing.T) {
	id, org := uuid.NewString(), uuid.NewString()

	t.Run("maps bottle row", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, sqlHas("FROM bottles WHERE id = $1::uuid AND organization_id = $2::uuid"), []any{id, org}).
			Return(fakeRow{values: []any{
				id, org, text("SN-1"), text("654321987"), text("full"), pgtype.Text{}, pgtype.Text{},
				pgtype.Int4{Int32: 4, Valid: true}, ts(builder.BaseTime), pgtype.Timestamptz{},
			}})

		e, err := newStore(m).FetchByIdentity(context.Background(), reconcile.KindAsset, id, org)
		require.NoError(t, err)

		a := e.(*reconcile.Asset)
		assert.Equal(t, id, a.ID)
		assert.Equal(t, "654321987", a.Barcode)
		assert.Equal(t, "", a.Location)
		assert.Equal(t, 4, a.FillCount)
		assert.Nil(t, a.UpdatedAt)
		assert.Equal(t, builder.BaseTime, a.Version())
		m.AssertExpectations(t)
	})

	t.Run("missing row is remote not found", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := newStore(m).FetchByIdentity(context.Background(), reconcile.KindCustomer, id, org)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
		assert.True(t, errs.Is(err, reconcile.ErrRemoteNotFound))
	})

	t.Run("offline identity never reaches the database", func(t *testing.T) {
		m := new(MockDBTX)

		_, err := newStore(m).FetchByIdentity(context.Background(), reconcile.KindRentalAgreement, "local-17", org)
		assert.True(t, errs.Is(err, reconcile.ErrRemoteNotFound))
		m.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("driver failure is db failure", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(fakeRow{err: assert.AnError})

		_, err := newStore(m).FetchByIdentity(context.Background(), reconcile.KindScanEvent, id, org)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		assert.True(t, errs.Is(err, errs.ErrDatabaseOperationFailed))
		assert.False(t, errs.Is(err, reconcile.ErrRemoteNotFound))
	})
}

func TestEntityStore_Write(t *testing.T) {
	customer := builder.NewCustomerBuilder().BuildDomain()

	t.Run("upserts within organization", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, sqlHas("ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name"), mock.MatchedBy(func(args []any) bool {
			return len(args) == 9 && args[0] == customer.ID && args[1] == customer.OrganizationID
		})).Return(fakeRow{values: []any{
			customer.ID, customer.OrganizationID, customer.Name, text(customer.CustomerListID), text(customer.Phone),
			text(customer.Email), text(customer.Address), ts(*customer.CreatedAt), ts(*customer.UpdatedAt),
		}})

		stored, err := newStore(m).Write(context.Background(), customer)
		require.NoError(t, err)
		assert.Equal(t, customer, stored)
		m.AssertExpectations(t)
	})

	t.Run("row of another organization is not found", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).Return(fakeRow{err: pgx.ErrNoRows})

		_, err := newStore(m).Write(context.Background(), customer)
		assert.True(t, infra.IsKind(err, infra.KindNotFound))
	})

	t.Run("rejects non uuid identity", func(t *testing.T) {
		m := new(MockDBTX)
		bad := builder.NewCustomerBuilder().With(func(b *builder.CustomerBuilder) { b.ID = "local-1" }).BuildDomain()

		_, err := newStore(m).Write(context.Background(), bad)
		assert.ErrorIs(t, err, errs.ErrDomainValidation)
		m.AssertNotCalled(t, "QueryRow", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestEntityStore_Insert(t *testing.T) {
	t.Run("assigns identity to pending entity", func(t *testing.T) {
		m := new(MockDBTX)
		pending := builder.NewRentalBuilder().With(func(b *builder.RentalBuilder) { b.ID = "" }).BuildDomain()

		var assigned string
		m.On("QueryRow", mock.Anything, sqlHas("INSERT INTO rentals"), mock.MatchedBy(func(args []any) bool {
			id, _ := args[0].(string)
			assigned = id
			return isUUID(id)
		})).Return(fakeRow{values: []any{
			"00000000-0000-4000-8000-000000000001", pending.OrganizationID, text(pending.CustomerID), text(pending.BottleBarcode),
			text(pending.Status), text(pending.RentalType), pgtype.Float8{Float64: pending.RentalAmount, Valid: true},
			ts(*pending.StartDate), pgtype.Timestamptz{}, ts(*pending.CreatedAt), ts(*pending.UpdatedAt),
		}})

		stored, err := newStore(m).Insert(context.Background(), pending)
		require.NoError(t, err)
		assert.NotEmpty(t, assigned)
		assert.Empty(t, pending.ID)
		assert.Equal(t, 12.5, stored.(*reconcile.RentalAgreement).RentalAmount)
	})

	t.Run("duplicate identity", func(t *testing.T) {
		m := new(MockDBTX)
		m.On("QueryRow", mock.Anything, mock.Anything, mock.Anything).
			Return(fakeRow{err: &pgconn.PgError{Code: "23505"}})

		_, err := newStore(m).Insert(context.Background(), builder.NewAssetBuilder().BuildDomain())
		assert.True(t, infra.IsKind(err, infra.KindDuplicateKey))
	})

	t.Run("scan insert is idempotent on resubmission", func(t *testing.T) {
		m := new(MockDBTX)
		scan := builder.NewScanBuilder().BuildDomain()
		m.On("QueryRow", mock.Anything, sqlHas("ON CONFLICT ON CONSTRAINT uq_bottle_scans_dedupe"), mock.Anything).
			Return(fakeRow{err: assert.AnError})

		_, err := newStore(m).Insert(context.Background(), scan)
		assert.True(t, infra.IsKind(err, infra.KindDBFailure))
		m.AssertNotCalled(t, "Begin", mock.Anything)
	})
}

func TestTableSpec_SQL(t *testing.T) {
	assert.Equal(t,
		"SELECT id::text, organization_id::text, name, customer_list_id, phone, email, address, created_at, updated_at FROM customers WHERE id = $1::uuid AND organization_id = $2::uuid",
		customersTable.selectSQL())
	assert.Equal(t,
		"INSERT INTO customers (id, organization_id, name, customer_list_id, phone, email, address, created_at, updated_at) VALUES ($1::uuid, $2::uuid, $3, $4, $5, $6, $7, COALESCE($8::timestamptz, now()), $9::timestamptz)",
		customersTable.insertSQL())
	assert.Contains(t, scansTable.upsertSQL(), `"timestamp" = EXCLUDED."timestamp"`)
	assert.Contains(t, scansTable.upsertSQL(), "WHERE bottle_scans.organization_id = EXCLUDED.organization_id")
}
