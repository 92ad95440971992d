package scheduler

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/robfig/cron/v3"

	"assessor_gateway/config"
	"assessor_gateway/models"
	"assessor_gateway/storage"
)

// Scheduler runs periodic availability probes against the assessor site so
// an upstream outage is visible before lookups start failing.
type Scheduler struct {
	cfg    *config.Config
	store  *storage.Store
	client *http.Client
	cron   *cron.Cron
	ticker *time.Ticker
	stopCh chan struct{}
}

func New(cfg *config.Config, store *storage.Store, client *http.Client) *Scheduler {
	return &Scheduler{
		cfg:    cfg,
		store:  store,
		client: client,
		cron:   cron.New(),
		stopCh: make(chan struct{}),
	}
}

func (s *Scheduler) Start(ctx context.Context) error {
	if s.cfg.Healthcheck.Cron != "" {
		log.Printf("Starting source healthcheck with cron: %s", s.cfg.Healthcheck.Cron)
		_, err := s.cron.AddFunc(s.cfg.Healthcheck.Cron, func() {
			s.probe(ctx)
		})
		if err != nil {
			return fmt.Errorf("invalid cron expression: %w", err)
		}
		s.cron.Start()
	} else if s.cfg.Healthcheck.Interval > 0 {
		log.Printf("Starting source healthcheck with interval: %s", s.cfg.Healthcheck.Interval)
		s.ticker = time.NewTicker(s.cfg.Healthcheck.Interval)
		go func() {
			for {
				select {
				case <-s.ticker.C:
					s.probe(ctx)
				case <-s.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	} else {
		log.Println("No healthcheck schedule configured")
	}

	return nil
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
	if s.ticker != nil {
		s.ticker.Stop()
	}
	close(s.stopCh)
}

func (s *Scheduler) probe(ctx context.Context) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, s.cfg.Assessor.FormURL, nil)
	if err != nil {
		log.Printf("Healthcheck: failed to build request: %v", err)
		return
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	start := time.Now()
	resp, err := s.client.Do(req)
	latency := time.Since(start)

	check := &models.SourceCheck{
		CheckedAt: start,
		LatencyMS: latency.Milliseconds(),
	}

	if err != nil {
		log.Printf("Healthcheck: assessor site unreachable: %v", err)
	} else {
		resp.Body.Close()
		check.StatusCode = resp.StatusCode
		check.OK = resp.StatusCode >= 200 && resp.StatusCode < 400
		if check.OK {
			log.Printf("Healthcheck: assessor site up (%d, %dms)", resp.StatusCode, check.LatencyMS)
		} else {
			log.Printf("Healthcheck: assessor site returned %d", resp.StatusCode)
		}
	}

	if err := s.store.RecordSourceCheck(check); err != nil {
		log.Printf("Healthcheck: could not record check: %v", err)
	}
}
