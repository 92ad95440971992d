package scheduler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"assessor_gateway/config"
	"assessor_gateway/storage"
)

func probeAgainst(t *testing.T, status int) *storage.Store {
	t.Helper()

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	}))
	t.Cleanup(ts.Close)

	store, err := storage.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	cfg := &config.Config{}
	cfg.Assessor.FormURL = ts.URL
	s := New(cfg, store, ts.Client())
	s.probe(context.Background())
	return store
}

func TestProbe_RecordsHealthySource(t *testing.T) {
	store := probeAgainst(t, http.StatusOK)

	check, err := store.LastSourceCheck()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if check == nil {
		t.Fatal("expected a recorded check")
	}
	if !check.OK || check.StatusCode != http.StatusOK {
		t.Fatalf("unexpected check: %+v", check)
	}
}

func TestProbe_RecordsOutage(t *testing.T) {
	store := probeAgainst(t, http.StatusServiceUnavailable)

	check, err := store.LastSourceCheck()
	if err != nil || check == nil {
		t.Fatalf("expected a recorded check, got check=%v err=%v", check, err)
	}
	if check.OK {
		t.Fatal("503 must not count as healthy")
	}
	if check.StatusCode != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: %d", check.StatusCode)
	}
}
