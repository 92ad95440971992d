package services

import (
	"context"
	"log"
	"time"

	"assessor_gateway/models"
	"assessor_gateway/storage"
)

type recordFetcher interface {
	Lookup(ctx context.Context, query models.PropertyQuery) (models.PropertyRecord, error)
}

// LookupService fronts the browser controller and writes an audit row per
// lookup. Audit failures are logged and never fail the lookup itself.
type LookupService struct {
	store   *storage.Store
	fetcher recordFetcher
}

func NewLookupService(store *storage.Store, fetcher recordFetcher) *LookupService {
	return &LookupService{store: store, fetcher: fetcher}
}

func (s *LookupService) Lookup(ctx context.Context, requestID string, query models.PropertyQuery) (models.PropertyRecord, error) {
	run := &models.LookupRun{
		RequestID: requestID,
		Region:    query.Region,
		Street:    query.StreetName,
		Number:    query.AddressNumber,
		Status:    models.RunStatusStarted,
		StartedAt: time.Now(),
	}

	runID, err := s.store.CreateLookupRun(run)
	if err != nil {
		log.Printf("[%s] Warning: could not record lookup run: %v", requestID, err)
	}
	run.ID = runID

	record, lookupErr := s.fetcher.Lookup(ctx, query)

	run.Status = models.RunStatusCompleted
	if lookupErr != nil {
		run.Status = models.RunStatusFailed
		run.Error = lookupErr.Error()
	} else {
		run.FieldsFound = record.FieldCount()
	}
	now := time.Now()
	run.FinishedAt = &now
	run.DurationMS = now.Sub(run.StartedAt).Milliseconds()

	if run.ID != 0 {
		if err := s.store.FinishLookupRun(run); err != nil {
			log.Printf("[%s] Warning: could not finish lookup run: %v", requestID, err)
		}
	}

	return record, lookupErr
}
