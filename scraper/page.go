package scraper

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

const optionPollInterval = 250 * time.Millisecond

// playwrightForm adapts a live playwright page to the formPage surface the
// driver works against.
type playwrightForm struct {
	page playwright.Page
}

func (f *playwrightForm) SelectControls() ([]ControlInfo, error) {
	selects, err := f.page.Locator("select").All()
	if err != nil {
		return nil, fmt.Errorf("failed to list select controls: %w", err)
	}

	controls := make([]ControlInfo, 0, len(selects))
	for i, sel := range selects {
		id, _ := sel.GetAttribute("id")
		name, _ := sel.GetAttribute("name")
		controls = append(controls, ControlInfo{
			Identifier: id,
			Name:       name,
			Position:   i,
		})
	}
	return controls, nil
}

// locate re-queries the control on every use. Option sets are repopulated
// server-side between steps, so a stale locator handle cannot be trusted.
func (f *playwrightForm) locate(ctrl ControlInfo) playwright.Locator {
	if ctrl.Identifier != "" {
		return f.page.Locator(fmt.Sprintf("select[id=%q]", ctrl.Identifier)).First()
	}
	if ctrl.Name != "" {
		return f.page.Locator(fmt.Sprintf("select[name=%q]", ctrl.Name)).First()
	}
	return f.page.Locator("select").Nth(ctrl.Position)
}

func (f *playwrightForm) Options(ctrl ControlInfo) ([]Option, error) {
	opts, err := f.locate(ctrl).Locator("option").All()
	if err != nil {
		return nil, fmt.Errorf("failed to read options of %s: %w", ctrl.Identifier, err)
	}

	options := make([]Option, 0, len(opts))
	for _, opt := range opts {
		value, _ := opt.GetAttribute("value")
		label, _ := opt.TextContent()
		options = append(options, Option{Value: value, Label: label})
	}
	return options, nil
}

func (f *playwrightForm) SelectValue(ctrl ControlInfo, value string) error {
	_, err := f.locate(ctrl).SelectOption(playwright.SelectOptionValues{
		Values: &[]string{value},
	})
	if err != nil {
		return fmt.Errorf("failed to select %q on %s: %w", value, ctrl.Identifier, err)
	}
	return nil
}

func (f *playwrightForm) WaitForOptions(ctrl ControlInfo, min int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		count, err := f.locate(ctrl).Locator("option").Count()
		if err == nil && count > min {
			return true
		}
		f.page.WaitForTimeout(float64(optionPollInterval.Milliseconds()))
	}
	return false
}

// Submit clicks the form's submit control if one is visible, otherwise
// falls back to an Enter keystroke (some assessor pages submit on accept).
func (f *playwrightForm) Submit() error {
	submitSelectors := []string{
		"input[type='submit']",
		"button[type='submit']",
		"input[type='image']",
		"button",
	}

	for _, sel := range submitSelectors {
		btn := f.page.Locator(sel).First()
		if visible, _ := btn.IsVisible(); visible {
			if err := btn.Click(); err != nil {
				return fmt.Errorf("failed to click submit control %s: %w", sel, err)
			}
			return nil
		}
	}

	if err := f.page.Keyboard().Press("Enter"); err != nil {
		return fmt.Errorf("failed to submit via keyboard: %w", err)
	}
	return nil
}

func (f *playwrightForm) WaitForResults(selector string, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		count, err := f.page.Locator(selector).Count()
		if err == nil && count > 0 {
			return true
		}
		f.page.WaitForTimeout(float64(optionPollInterval.Milliseconds()))
	}
	return false
}

func (f *playwrightForm) Sleep(d time.Duration) {
	f.page.WaitForTimeout(float64(d.Milliseconds()))
}

func (f *playwrightForm) HTML() (string, error) {
	content, err := f.page.Content()
	if err != nil {
		return "", fmt.Errorf("failed to read page content: %w", err)
	}
	return content, nil
}
