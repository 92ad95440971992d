package scraper

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/playwright-community/playwright-go"

	"assessor_gateway/config"
	"assessor_gateway/models"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// browserSession is one isolated browser owned by a single lookup. Close
// must be safe to call on every exit path and must never surface teardown
// errors over the failure that got us there.
type browserSession interface {
	Navigate(url string, timeout time.Duration) error
	Form() formPage
	Close()
}

// Controller owns the full lifecycle of one browser session per lookup.
// Sessions are never pooled or shared; each request gets a fresh isolated
// context and the browser is released exactly once regardless of outcome.
type Controller struct {
	cfg    *config.AssessorConfig
	launch func() (browserSession, error)
}

func NewController(cfg *config.AssessorConfig) *Controller {
	return &Controller{
		cfg:    cfg,
		launch: launchPlaywright,
	}
}

// Lookup drives the assessor form for one query and extracts whatever
// record fields the results page yields.
func (c *Controller) Lookup(ctx context.Context, query models.PropertyQuery) (models.PropertyRecord, error) {
	var record models.PropertyRecord

	if err := ctx.Err(); err != nil {
		return record, err
	}

	sess, err := c.launch()
	if err != nil {
		return record, fmt.Errorf("failed to launch browser: %w", err)
	}
	defer sess.Close()

	if err := sess.Navigate(c.cfg.FormURL, c.cfg.PageLoadTimeout); err != nil {
		return record, &NavigationTimeoutError{Stage: "form page load", Err: err}
	}

	fp := sess.Form()
	if err := driveForm(fp, query, c.cfg); err != nil {
		return record, err
	}

	html, err := fp.HTML()
	if err != nil {
		return record, err
	}

	record = ExtractRecord(html)
	log.Printf("Lookup %s / %s %s: extracted %d fields",
		query.Region, query.AddressNumber, query.StreetName, record.FieldCount())
	return record, nil
}

type playwrightSession struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	ctx     playwright.BrowserContext
	page    playwright.Page
}

func launchPlaywright() (browserSession, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
		Args: []string{
			"--disable-blink-features=AutomationControlled",
			"--disable-dev-shm-usage",
		},
	})
	if err != nil {
		pw.Stop()
		return nil, fmt.Errorf("failed to launch browser: %w", err)
	}

	bctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport:  &playwright.Size{Width: 1366, Height: 768},
		UserAgent: playwright.String(defaultUserAgent),
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		bctx.Close()
		browser.Close()
		pw.Stop()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}

	return &playwrightSession{pw: pw, browser: browser, ctx: bctx, page: page}, nil
}

func (s *playwrightSession) Navigate(url string, timeout time.Duration) error {
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   playwright.Float(float64(timeout.Milliseconds())),
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
	})
	return err
}

func (s *playwrightSession) Form() formPage {
	return &playwrightForm{page: s.page}
}

// Close tears everything down, swallowing errors: a release failure must
// never mask whatever error ended the lookup.
func (s *playwrightSession) Close() {
	if s.page != nil {
		s.page.Close()
	}
	if s.ctx != nil {
		s.ctx.Close()
	}
	if s.browser != nil {
		s.browser.Close()
	}
	if s.pw != nil {
		s.pw.Stop()
	}
}
