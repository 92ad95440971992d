package scraper

import "testing"

func TestMatchOption_ExactLabelBeatsSubstring(t *testing.T) {
	options := []Option{
		{Value: "12", Label: "BOSTON"},
		{Value: "7", Label: "CAMBRIDGE"},
	}

	value, fellBack, ok := MatchOption("boston", options)
	if !ok {
		t.Fatal("expected a match")
	}
	if fellBack {
		t.Fatal("exact match should not report fallback")
	}
	if value != "12" {
		t.Fatalf("expected value 12, got %s", value)
	}
}

func TestMatchOption_ExactValue(t *testing.T) {
	options := []Option{
		{Value: "main", Label: "Main Street"},
		{Value: "elm", Label: "Elm Street"},
	}

	value, _, ok := MatchOption("ELM", options)
	if !ok || value != "elm" {
		t.Fatalf("expected elm, got %s (ok=%v)", value, ok)
	}
}

func TestMatchOption_LabelContainsTarget(t *testing.T) {
	options := []Option{
		{Value: "", Label: "Select a street..."},
		{Value: "44", Label: "MAIN ST"},
	}

	value, _, ok := MatchOption("main", options)
	if !ok || value != "44" {
		t.Fatalf("expected 44, got %s (ok=%v)", value, ok)
	}
}

func TestMatchOption_TargetContainsLabel(t *testing.T) {
	options := []Option{
		{Value: "", Label: "Select..."},
		{Value: "9", Label: "Main"},
	}

	value, _, ok := MatchOption("Main Street", options)
	if !ok || value != "9" {
		t.Fatalf("expected 9, got %s (ok=%v)", value, ok)
	}
}

func TestMatchOption_FallbackFirstNonEmpty(t *testing.T) {
	options := []Option{
		{Value: "", Label: "Select..."},
		{Value: "3", Label: "X St"},
	}

	value, fellBack, ok := MatchOption("nomatch", options)
	if !ok {
		t.Fatal("expected fallback match")
	}
	if !fellBack {
		t.Fatal("expected fallback to be reported")
	}
	if value != "3" {
		t.Fatalf("expected first non-empty value 3, got %q", value)
	}
}

func TestMatchOption_AllEmptyValues(t *testing.T) {
	options := []Option{
		{Value: "", Label: "Select..."},
		{Value: "", Label: "Loading..."},
	}

	if _, _, ok := MatchOption("anything", options); ok {
		t.Fatal("expected no match for entirely empty-valued options")
	}
}

func TestMatchOption_NoOptions(t *testing.T) {
	if _, _, ok := MatchOption("boston", nil); ok {
		t.Fatal("expected no match for empty option set")
	}
}
