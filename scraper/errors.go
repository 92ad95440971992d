package scraper

import "fmt"

// ResolutionError means the form page did not expose enough select controls
// to play the region/street/address roles.
type ResolutionError struct {
	Found int
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("expected 3 select controls on form page, found %d", e.Found)
}

// OptionNotFoundError means no option could be chosen for a role, not even
// the first-non-empty fallback (the option set was entirely empty-valued).
type OptionNotFoundError struct {
	Role   string
	Target string
}

func (e *OptionNotFoundError) Error() string {
	return fmt.Sprintf("no selectable option for %s %q", e.Role, e.Target)
}

// NavigationTimeoutError means the form page or a required element failed
// to appear within its bound.
type NavigationTimeoutError struct {
	Stage string
	Err   error
}

func (e *NavigationTimeoutError) Error() string {
	return fmt.Sprintf("navigation timeout during %s: %v", e.Stage, e.Err)
}

func (e *NavigationTimeoutError) Unwrap() error {
	return e.Err
}
