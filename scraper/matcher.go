package scraper

import "strings"

// Option is one (value, label) pair read live from a select control.
type Option struct {
	Value string
	Label string
}

// MatchOption resolves the option value to select for a free-text target.
// Precedence, first rule that matches wins:
//
//  1. exact case-insensitive label match
//  2. exact case-insensitive value match
//  3. label contains target
//  4. target contains label
//  5. first option with a non-empty value
//
// Rule 5 is a deterministic but arbitrary fallback: it keeps fuzzy
// municipal spellings resolving at the cost of possibly selecting the wrong
// parcel without any signal to the caller. Callers log when it fires.
// ok is false only when every option value is empty.
func MatchOption(target string, options []Option) (value string, fellBack bool, ok bool) {
	want := strings.ToLower(strings.TrimSpace(target))

	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt.Label)) == want {
			return opt.Value, false, true
		}
	}
	for _, opt := range options {
		if strings.ToLower(strings.TrimSpace(opt.Value)) == want {
			return opt.Value, false, true
		}
	}
	for _, opt := range options {
		label := strings.ToLower(strings.TrimSpace(opt.Label))
		if label != "" && strings.Contains(label, want) {
			return opt.Value, false, true
		}
	}
	for _, opt := range options {
		label := strings.ToLower(strings.TrimSpace(opt.Label))
		if label != "" && strings.Contains(want, label) {
			return opt.Value, false, true
		}
	}
	for _, opt := range options {
		if opt.Value != "" {
			return opt.Value, true, true
		}
	}

	return "", false, false
}
