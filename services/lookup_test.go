package services

import (
	"context"
	"errors"
	"testing"

	"assessor_gateway/models"
)

type fakeFetcher struct {
	record models.PropertyRecord
	err    error
}

func (f *fakeFetcher) Lookup(ctx context.Context, query models.PropertyQuery) (models.PropertyRecord, error) {
	return f.record, f.err
}

func TestLookupService_RecordsCompletedRun(t *testing.T) {
	store := testStore(t)
	svc := NewLookupService(store, &fakeFetcher{record: models.PropertyRecord{Owner: "JOHN Q PUBLIC", TotalValue: "$350,000"}})

	query := models.PropertyQuery{Region: "Boston", StreetName: "Main St", AddressNumber: "123"}
	record, err := svc.Lookup(context.Background(), "req-1", query)
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if record.Owner != "JOHN Q PUBLIC" {
		t.Fatalf("unexpected record: %+v", record)
	}

	run, err := store.GetLookupRun("req-1")
	if err != nil {
		t.Fatalf("failed to load run: %v", err)
	}
	if run == nil {
		t.Fatal("expected an audit row")
	}
	if run.Status != models.RunStatusCompleted {
		t.Fatalf("expected completed status, got %s", run.Status)
	}
	if run.FieldsFound != 2 {
		t.Fatalf("expected 2 fields found, got %d", run.FieldsFound)
	}
	if run.Region != "Boston" || run.Street != "Main St" || run.Number != "123" {
		t.Fatalf("unexpected query audit: %+v", run)
	}
}

func TestLookupService_RecordsFailedRun(t *testing.T) {
	store := testStore(t)
	svc := NewLookupService(store, &fakeFetcher{err: errors.New("assessor site down")})

	query := models.PropertyQuery{Region: "Boston", StreetName: "Main St", AddressNumber: "123"}
	if _, err := svc.Lookup(context.Background(), "req-2", query); err == nil {
		t.Fatal("expected lookup error")
	}

	run, err := store.GetLookupRun("req-2")
	if err != nil || run == nil {
		t.Fatalf("expected audit row, got run=%v err=%v", run, err)
	}
	if run.Status != models.RunStatusFailed {
		t.Fatalf("expected failed status, got %s", run.Status)
	}
	if run.Error == "" {
		t.Fatal("expected error message in audit row")
	}
}
