package scraper

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSession counts Close calls so resource-release behavior can be
// asserted for every failure stage.
type fakeSession struct {
	navErr     error
	form       *fakeForm
	closeCalls int
}

func (s *fakeSession) Navigate(url string, timeout time.Duration) error {
	return s.navErr
}

func (s *fakeSession) Form() formPage {
	return s.form
}

func (s *fakeSession) Close() {
	s.closeCalls++
}

func newTestController(sess *fakeSession) *Controller {
	return &Controller{
		cfg:    testAssessorConfig(),
		launch: func() (browserSession, error) { return sess, nil },
	}
}

func TestLookup_Success(t *testing.T) {
	sess := &fakeSession{form: newFakeForm()}
	c := newTestController(sess)

	record, err := c.Lookup(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if record.Owner != "JOHN Q PUBLIC" {
		t.Fatalf("expected extracted owner, got %q", record.Owner)
	}
	if sess.closeCalls != 1 {
		t.Fatalf("expected exactly 1 close, got %d", sess.closeCalls)
	}
}

func TestLookup_ClosesOnNavigationFailure(t *testing.T) {
	sess := &fakeSession{navErr: errors.New("net::ERR_TIMED_OUT"), form: newFakeForm()}
	c := newTestController(sess)

	_, err := c.Lookup(context.Background(), testQuery())
	if err == nil {
		t.Fatal("expected navigation error")
	}
	var navErr *NavigationTimeoutError
	if !errors.As(err, &navErr) {
		t.Fatalf("expected *NavigationTimeoutError, got %T", err)
	}
	if sess.closeCalls != 1 {
		t.Fatalf("expected exactly 1 close, got %d", sess.closeCalls)
	}
}

func TestLookup_ClosesOnResolutionFailure(t *testing.T) {
	form := newFakeForm()
	form.controls = form.controls[:1]
	sess := &fakeSession{form: form}
	c := newTestController(sess)

	_, err := c.Lookup(context.Background(), testQuery())
	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected *ResolutionError, got %T: %v", err, err)
	}
	if sess.closeCalls != 1 {
		t.Fatalf("expected exactly 1 close, got %d", sess.closeCalls)
	}
}

func TestLookup_ClosesOnOptionFailure(t *testing.T) {
	form := newFakeForm()
	form.options["ddlCity"] = []Option{{Value: "", Label: "Loading..."}}
	sess := &fakeSession{form: form}
	c := newTestController(sess)

	_, err := c.Lookup(context.Background(), testQuery())
	var optErr *OptionNotFoundError
	if !errors.As(err, &optErr) {
		t.Fatalf("expected *OptionNotFoundError, got %T: %v", err, err)
	}
	if optErr.Role != RoleRegion {
		t.Fatalf("expected region role, got %s", optErr.Role)
	}
	if sess.closeCalls != 1 {
		t.Fatalf("expected exactly 1 close, got %d", sess.closeCalls)
	}
}

func TestLookup_ExtractionNeverFatal(t *testing.T) {
	form := newFakeForm()
	form.html = "<html><body><p>No parcels matched your search.</p></body></html>"
	sess := &fakeSession{form: form}
	c := newTestController(sess)

	record, err := c.Lookup(context.Background(), testQuery())
	if err != nil {
		t.Fatalf("empty extraction must not fail the lookup: %v", err)
	}
	if record.FieldCount() != 0 {
		t.Fatalf("expected empty record, got %d fields", record.FieldCount())
	}
	if sess.closeCalls != 1 {
		t.Fatalf("expected exactly 1 close, got %d", sess.closeCalls)
	}
}

func TestLookup_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	launched := false
	c := &Controller{
		cfg: testAssessorConfig(),
		launch: func() (browserSession, error) {
			launched = true
			return &fakeSession{form: newFakeForm()}, nil
		},
	}

	if _, err := c.Lookup(ctx, testQuery()); err == nil {
		t.Fatal("expected context error")
	}
	if launched {
		t.Fatal("no browser should launch for a cancelled request")
	}
}
