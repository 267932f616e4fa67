//go:build e2e

package sync_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"cylinder-sync/internal/handler/dto/request"
	"cylinder-sync/internal/handler/dto/response"
	"cylinder-sync/internal/usecase/queries"
	"cylinder-sync/tests/common/authtest"
	"cylinder-sync/tests/common/builder"
	"cylinder-sync/tests/common/dbtest"
	"cylinder-sync/tests/common/httptest"
	"cylinder-sync/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	reconcileURL = "/api/sync/reconcile"
	limitsURL    = "/api/sync/limits"
)

type SyncSuite struct {
	e2e.SharedSuite
}

func (s *SyncSuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSyncSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SyncSuite))
}

func (s *SyncSuite) token(t *testing.T, orgID uuid.UUID) string {
	t.Helper()
	return authtest.NewJWTHelper(s.Config.JWT).GenerateToken(t, uuid.New(), orgID)
}

// =============================================================================
// TestReconcile - conflict detection, resolution and write-back
// =============================================================================

func (s *SyncSuite) TestReconcile() {
	s.Run("Normal case: merge keeps server name and device contact edits", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		remoteAt := builder.BaseTime.Add(-time.Hour)
		customerID := dbtest.CreateTestCustomer(t, s.DB, orgID, "Acme Welding Ltd", "555-0100", remoteAt)

		local := builder.NewCustomerBuilder().With(func(b *builder.CustomerBuilder) {
			b.ID = customerID.String()
			b.Name = "acme (typo)"
			b.Phone = "555-0199"
		}).BuildPayload()

		body := request.ReconcileRequest{Kind: "customer", Strategy: "merge", Entities: []request.EntityPayload{local}}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, s.token(t, orgID))

		var resp response.ReconcileResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.Len(t, resp.Items, 1)
		s.Equal("applied", resp.Items[0].Status)
		s.Equal("merge", resp.Items[0].Action)
		s.Equal(1, resp.Summary["applied"])

		var name, phone string
		err := s.DB.QueryRow(context.Background(), "SELECT name, phone FROM customers WHERE id = $1", customerID).Scan(&name, &phone)
		require.NoError(t, err)
		s.Equal("Acme Welding Ltd", name)
		s.Equal("555-0199", phone)
	})

	s.Run("Normal case: server_wins adopts the remote row and writes nothing", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		bottleID := dbtest.CreateTestBottle(t, s.DB, orgID, "111222333", "full", builder.BaseTime)

		local := builder.NewAssetBuilder().With(func(b *builder.AssetBuilder) {
			b.ID = bottleID.String()
			b.Barcode = "111222333"
			b.Status = "empty"
			b.UpdatedAt = builder.At(-2 * time.Hour)
		}).BuildPayload()

		body := request.ReconcileRequest{Kind: "bottles", Strategy: "server_wins", Entities: []request.EntityPayload{local}}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, s.token(t, orgID))

		var resp response.ReconcileResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		require.Len(t, resp.Items, 1)
		s.Equal("adopted_remote", resp.Items[0].Status)
		require.NotNil(t, resp.Items[0].Entity)
		s.Equal("full", resp.Items[0].Entity.Status)

		var status string
		require.NoError(t, s.DB.QueryRow(context.Background(), "SELECT status FROM bottles WHERE id = $1", bottleID).Scan(&status))
		s.Equal("full", status)
	})

	s.Run("Normal case: unknown rows are created and equal versions are in sync", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		existingAt := builder.BaseTime
		bottleID := dbtest.CreateTestBottle(t, s.DB, orgID, "999000111", "full", existingAt)

		inSync := builder.NewAssetBuilder().With(func(b *builder.AssetBuilder) {
			b.ID = bottleID.String()
			b.UpdatedAt = &existingAt
		}).BuildPayload()
		created := builder.NewAssetBuilder().With(func(b *builder.AssetBuilder) {
			b.ID = ""
			b.Barcode = "555666777"
		}).BuildPayload()

		body := request.ReconcileRequest{Kind: "asset", Entities: []request.EntityPayload{inSync, created}}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, s.token(t, orgID))

		var resp response.ReconcileResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		s.Equal(map[string]int{
			"applied": 0, "adopted_remote": 0, "created": 1, "in_sync": 1,
			"deferred": 0, "failed": 0, "skipped": 0,
		}, resp.Summary)
		s.Equal(2, dbtest.CountRows(t, s.DB, "bottles"))
	})

	s.Run("Normal case: returned bottle scan marks the bottle empty once", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		dbtest.CreateTestBottle(t, s.DB, orgID, "444555666", "full", builder.BaseTime.Add(-24*time.Hour))

		scan := builder.NewScanBuilder().With(func(b *builder.ScanBuilder) {
			b.ID = ""
			b.BottleBarcode = "444555666"
			b.Mode = "RETURN"
		}).BuildPayload()
		body := request.ReconcileRequest{Kind: "scan", Entities: []request.EntityPayload{scan}}
		token := s.token(t, orgID)

		var first, second response.ReconcileResponse
		httptest.AssertSuccessResponse(t, httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, token), http.StatusOK, &first)
		httptest.AssertSuccessResponse(t, httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, token), http.StatusOK, &second)

		s.Equal("created", first.Items[0].Status)
		s.Equal("created", second.Items[0].Status)
		// the resubmission resolves to the stored row
		if diff := cmp.Diff(first.Items[0].Entity.ID, second.Items[0].Entity.ID); diff != "" {
			t.Errorf("scan id mismatch (-first +second):\n%s", diff)
		}
		s.Equal(1, dbtest.CountRows(t, s.DB, "bottle_scans"))

		var status string
		require.NoError(t, s.DB.QueryRow(context.Background(),
			"SELECT status FROM bottles WHERE barcode_number = $1", "444555666").Scan(&status))
		s.Equal("empty", status)
	})

	s.Run("Abnormal case: rows of another organization are never touched", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		otherOrg := dbtest.CreateTestOrganization(t, s.DB, dbtest.OtherOrganizationName)
		foreignID := dbtest.CreateTestCustomer(t, s.DB, otherOrg, "Foreign Gas", "555-0001", builder.BaseTime)

		local := builder.NewCustomerBuilder().With(func(b *builder.CustomerBuilder) {
			b.ID = foreignID.String()
			b.Phone = "555-9999"
			b.UpdatedAt = builder.At(time.Hour)
		}).BuildPayload()
		body := request.ReconcileRequest{Kind: "customer", Strategy: "client_wins", Entities: []request.EntityPayload{local}}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, s.token(t, orgID))

		var resp response.ReconcileResponse
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &resp)
		// invisible to this organization, so it is treated as new and the insert collides
		s.Equal("failed", resp.Items[0].Status)

		var phone string
		require.NoError(t, s.DB.QueryRow(context.Background(), "SELECT phone FROM customers WHERE id = $1", foreignID).Scan(&phone))
		s.Equal("555-0001", phone)
	})

	s.Run("Abnormal case: unauthenticated requests are rejected", func() {
		t := s.T()
		body := request.ReconcileRequest{Kind: "customer", Entities: []request.EntityPayload{builder.NewCustomerBuilder().BuildPayload()}}
		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, "")
		s.Equal(http.StatusUnauthorized, rec.Code)
	})
}

// =============================================================================
// TestRateLimits - per caller budgets on the sync endpoints
// =============================================================================

func (s *SyncSuite) TestRateLimits() {
	s.Run("Abnormal case: 31st reconcile within a minute is rejected", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		token := s.token(t, orgID)
		body := request.ReconcileRequest{Kind: "customer", Entities: []request.EntityPayload{
			builder.NewCustomerBuilder().With(func(b *builder.CustomerBuilder) { b.ID = "" }).BuildPayload(),
		}}

		for i := range 30 {
			rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, token)
			require.Equal(t, http.StatusOK, rec.Code, "request %d: %s", i+1, rec.Body.String())
		}

		rec := httptest.PerformRequest(t, s.Router, http.MethodPost, reconcileURL, body, token)
		s.Equal(http.StatusTooManyRequests, rec.Code)
		s.NotEmpty(rec.Header().Get("Retry-After"))
		s.Equal("0", rec.Header().Get("X-RateLimit-Remaining"))
	})

	s.Run("Normal case: limit status reports without consuming", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)
		token := s.token(t, orgID)

		var view queries.LimitStatusView
		for range 2 {
			rec := httptest.PerformRequest(t, s.Router, http.MethodGet, limitsURL+"/reconcile.write.customers?class=write", nil, token)
			httptest.AssertSuccessResponse(t, rec, http.StatusOK, &view)
		}
		s.Equal(30, view.Limit)
		s.Equal(30, view.Remaining)
		s.Equal(60, view.WindowSeconds)
	})

	s.Run("Normal case: policies are listed", func() {
		t := s.T()
		orgID := dbtest.DefaultOrganizationID(t, s.DB)

		var policies []queries.PolicyView
		rec := httptest.PerformRequest(t, s.Router, http.MethodGet, limitsURL, nil, s.token(t, orgID))
		httptest.AssertSuccessResponse(t, rec, http.StatusOK, &policies)
		s.Len(policies, 9)
	})
}
