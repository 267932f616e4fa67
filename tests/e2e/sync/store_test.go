//go:build e2e

package sync_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"cylinder-sync/internal/domain/reconcile"
	"cylinder-sync/internal/infra/repository"
	"cylinder-sync/internal/pkg/errs"
	"cylinder-sync/tests/common/builder"
	"cylinder-sync/tests/common/dbtest"
	"cylinder-sync/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type EntityStoreSuite struct {
	e2e.SharedSuite
	store *repository.EntityStore
}

func (s *EntityStoreSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.store = repository.NewEntityStore(s.DB, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func (s *EntityStoreSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestEntityStoreSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(EntityStoreSuite))
}

func (s *EntityStoreSuite) TestRoundTrip() {
	s.Run("Normal case: rental with open end date survives write and fetch", func() {
		t := s.T()
		ctx := context.Background()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)

		rental := builder.NewRentalBuilder().With(func(b *builder.RentalBuilder) {
			b.ID = uuid.NewString()
			b.OrganizationID = orgID.String()
			b.EndDate = nil
		}).BuildDomain()

		written, err := s.store.Write(ctx, rental)
		require.NoError(t, err)

		fetched, err := s.store.FetchByIdentity(ctx, reconcile.KindRentalAgreement, rental.ID, orgID.String())
		require.NoError(t, err)

		if diff := cmp.Diff(written, fetched); diff != "" {
			t.Errorf("fetched rental mismatch (-written +fetched):\n%s", diff)
		}
		got := fetched.(*reconcile.RentalAgreement)
		s.Nil(got.EndDate)
		s.Equal(rental.RentalAmount, got.RentalAmount)
		s.True(got.UpdatedAt.Equal(*rental.UpdatedAt))
	})

	s.Run("Normal case: write replaces the stored row", func() {
		t := s.T()
		ctx := context.Background()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		id := dbtest.CreateTestBottle(t, s.DB, orgID, "700800900", "full", builder.BaseTime)

		asset := builder.NewAssetBuilder().With(func(b *builder.AssetBuilder) {
			b.ID = id.String()
			b.OrganizationID = orgID.String()
			b.Barcode = "700800900"
			b.Status = "at_customer"
			b.FillCount = 7
			b.UpdatedAt = builder.At(time.Hour)
		}).BuildDomain()

		_, err := s.store.Write(ctx, asset)
		require.NoError(t, err)

		fetched, err := s.store.FetchByIdentity(ctx, reconcile.KindAsset, id.String(), orgID.String())
		require.NoError(t, err)
		got := fetched.(*reconcile.Asset)
		s.Equal("at_customer", got.Status)
		s.Equal(7, got.FillCount)
		s.Equal(1, dbtest.CountRows(t, s.DB, "bottles"))
	})

	s.Run("Abnormal case: another organization's row is reported as not found", func() {
		t := s.T()
		ctx := context.Background()
		otherOrg := dbtest.CreateTestOrganization(t, s.DB, dbtest.OtherOrganizationName)
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		id := dbtest.CreateTestCustomer(t, s.DB, otherOrg, "Foreign Gas", "555-0001", builder.BaseTime)

		_, err := s.store.FetchByIdentity(ctx, reconcile.KindCustomer, id.String(), orgID.String())
		s.True(errs.Is(err, errs.ErrRemoteNotFound))

		customer := builder.NewCustomerBuilder().With(func(b *builder.CustomerBuilder) {
			b.ID = id.String()
			b.OrganizationID = orgID.String()
		}).BuildDomain()
		_, err = s.store.Write(ctx, customer)
		s.True(errs.Is(err, errs.ErrRemoteNotFound))
	})
}

func (s *EntityStoreSuite) TestInsertScan() {
	s.Run("Normal case: non-return scans leave the bottle alone", func() {
		t := s.T()
		ctx := context.Background()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		dbtest.CreateTestBottle(t, s.DB, orgID, "123123123", "full", builder.BaseTime)

		scan := builder.NewScanBuilder().With(func(b *builder.ScanBuilder) {
			b.ID = ""
			b.OrganizationID = orgID.String()
			b.BottleBarcode = "123123123"
			b.Mode = "SHIP"
		}).BuildDomain()

		stored, err := s.store.Insert(ctx, scan)
		require.NoError(t, err)
		s.NotEmpty(stored.Metadata().ID)

		var status string
		require.NoError(t, s.DB.QueryRow(ctx, "SELECT status FROM bottles WHERE barcode_number = $1", "123123123").Scan(&status))
		s.Equal("full", status)
	})
}
