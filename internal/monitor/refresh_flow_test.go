package monitor

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/cursorbar/cursorbar/internal/statestore"
	"github.com/cursorbar/cursorbar/internal/usage"
)

// End-to-end refresh cycles against a fixture state DB and a fixture usage
// endpoint, exercising the real extractor and client.

func newStateDB(t *testing.T, rows map[string]string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.vscdb")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("opening fixture DB: %v", err)
	}
	defer db.Close()

	if _, err := db.Exec(`CREATE TABLE ItemTable (key TEXT PRIMARY KEY, value TEXT)`); err != nil {
		t.Fatalf("creating ItemTable: %v", err)
	}
	for k, v := range rows {
		if _, err := db.Exec(`INSERT INTO ItemTable (key, value) VALUES (?, ?)`, k, v); err != nil {
			t.Fatalf("inserting %q: %v", k, err)
		}
	}
	return path
}

// dbOnlySource reads the fixture DB without the browser-cookie fallback.
func dbOnlySource(path string) CredentialSource {
	return func(context.Context) (*statestore.Credential, statestore.Profile) {
		return statestore.ReadCredential([]string{path})
	}
}

func TestRefreshFlow_NoTokenRowYieldsSignedOut(t *testing.T) {
	path := newStateDB(t, map[string]string{
		"cursorAuth/cachedEmail": "dev@example.com",
	})

	m := New(usage.NewClient(), dbOnlySource(path), time.Minute)
	snap := m.Refresh(context.Background())

	if snap.State != StateSignedOut {
		t.Errorf("Expected StateSignedOut, got %v", snap.State)
	}
}

func TestRefreshFlow_ServerErrorYieldsError(t *testing.T) {
	path := newStateDB(t, map[string]string{
		"cursorAuth/accessToken": "user_42::tok_abc",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	m := New(&usage.Client{BaseURL: srv.URL}, dbOnlySource(path), time.Minute)
	snap := m.Refresh(context.Background())

	if snap.State != StateError {
		t.Errorf("Expected StateError for HTTP 500, got %v", snap.State)
	}
	if snap.Err == nil {
		t.Error("Expected the fetch error on the snapshot")
	}
}

func TestRefreshFlow_UsageFixtureYieldsPremiumRecord(t *testing.T) {
	path := newStateDB(t, map[string]string{
		"cursorAuth/accessToken": "user_42::tok_abc",
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("user"); got != "user_42" {
			t.Errorf("Expected user_42 as user param, got %q", got)
		}
		w.Write([]byte(`{"gpt-4":{"numRequests":450,"numTokens":0,"maxRequestUsage":500},"startOfMonth":"2024-01-01"}`))
	}))
	t.Cleanup(srv.Close)

	m := New(&usage.Client{BaseURL: srv.URL}, dbOnlySource(path), time.Minute)
	snap := m.Refresh(context.Background())

	if snap.State != StateOK {
		t.Fatalf("Expected StateOK, got %v (err=%v)", snap.State, snap.Err)
	}
	if len(snap.Report.Records) != 1 {
		t.Fatalf("Expected one record, got %d", len(snap.Report.Records))
	}
	rec := snap.Report.Records[0]
	if rec.DisplayName != "Premium" || rec.RequestsUsed != 450 || rec.RequestLimit != 500 || rec.PercentUsed != 90 {
		t.Errorf("Unexpected record %+v", rec)
	}
	if snap.Report.StartOfMonth != "2024-01-01" {
		t.Errorf("Expected billing cycle start echoed, got %q", snap.Report.StartOfMonth)
	}
}
