package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/bozkayasalihx/roinstxs/internal/engine"
	"github.com/bozkayasalihx/roinstxs/internal/models"
)

func TestAdminHealth(t *testing.T) {
	h := AdminHandler(engine.New())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}
}

func TestAdminAccountsSnapshot(t *testing.T) {
	eng := engine.New()
	recs := []models.Record{
		{Kind: models.KindDeposit, TxID: 1, ClientID: 2, Amount: decimal.RequireFromString("7.5")},
		{Kind: models.KindDeposit, TxID: 2, ClientID: 1, Amount: decimal.RequireFromString("1")},
	}
	for _, rec := range recs {
		if err := eng.Apply(rec); err != nil {
			t.Fatalf("apply: %v", err)
		}
	}

	h := AdminHandler(eng)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/accounts", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rr.Code)
	}

	var snaps []models.AccountSnapshot
	if err := json.Unmarshal(rr.Body.Bytes(), &snaps); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if len(snaps) != 2 || snaps[0].ClientID != 1 || snaps[1].ClientID != 2 {
		t.Fatalf("snapshots = %+v, want clients 1 and 2 in order", snaps)
	}
	if !snaps[1].Available.Equal(decimal.RequireFromString("7.5")) {
		t.Errorf("client 2 available = %s, want 7.5", snaps[1].Available)
	}
}

func TestAdminAccountsRejectsNonGet(t *testing.T) {
	h := AdminHandler(engine.New())

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/accounts", nil))

	if rr.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rr.Code)
	}
}
