package scraper

import (
	"log"
	"time"

	"assessor_gateway/config"
	"assessor_gateway/models"
)

// formPage is the narrow surface the driver needs from a loaded form page.
// The playwright implementation lives in page.go; tests substitute a fake.
type formPage interface {
	SelectControls() ([]ControlInfo, error)
	Options(ctrl ControlInfo) ([]Option, error)
	SelectValue(ctrl ControlInfo, value string) error
	// WaitForOptions polls until the control holds more than min options or
	// the timeout elapses, reporting whether the threshold was reached.
	WaitForOptions(ctrl ControlInfo, min int, timeout time.Duration) bool
	Submit() error
	WaitForResults(selector string, timeout time.Duration) bool
	Sleep(d time.Duration)
	HTML() (string, error)
}

type driveStep struct {
	role   string
	target string
	ctrl   ControlInfo
	next   *ControlInfo
}

// driveForm applies the three selections in dependency order. Each upstream
// selection makes the server repopulate the next control, so after every
// select the driver waits (bounded) for the dependent option set to grow
// past its placeholder; a timed-out wait degrades to a grace delay because
// some repopulations leave no detectable DOM signal. The final step submits
// and settles the response page.
func driveForm(fp formPage, query models.PropertyQuery, cfg *config.AssessorConfig) error {
	controls, err := fp.SelectControls()
	if err != nil {
		return err
	}

	roles, err := ResolveRoles(controls, cfg.RegionWords, cfg.StreetWords, cfg.AddressWords)
	if err != nil {
		return err
	}

	steps := []driveStep{
		{role: RoleRegion, target: query.Region, ctrl: roles.Region, next: &roles.Street},
		{role: RoleStreet, target: query.StreetName, ctrl: roles.Street, next: &roles.Address},
		{role: RoleAddress, target: query.AddressNumber, ctrl: roles.Address},
	}

	for _, step := range steps {
		options, err := fp.Options(step.ctrl)
		if err != nil {
			return err
		}

		value, fellBack, ok := MatchOption(step.target, options)
		if !ok {
			return &OptionNotFoundError{Role: step.role, Target: step.target}
		}
		if fellBack {
			log.Printf("No %s option matches %q, falling back to first non-empty option %q",
				step.role, step.target, value)
		}

		if err := fp.SelectValue(step.ctrl, value); err != nil {
			return err
		}

		if step.next != nil {
			// More than one option means the placeholder-only state is gone.
			if !fp.WaitForOptions(*step.next, 1, cfg.OptionWait) {
				log.Printf("Timed out waiting for %s options after selecting %s, proceeding after grace delay",
					step.next.Identifier, step.role)
				fp.Sleep(cfg.GraceDelay)
			}
		}
	}

	if err := fp.Submit(); err != nil {
		return err
	}

	fp.Sleep(cfg.SettleDelay)
	if !fp.WaitForResults(cfg.ResultSelector, cfg.ResultWait) {
		log.Printf("Results container %q never appeared, extracting anyway", cfg.ResultSelector)
	}

	return nil
}
