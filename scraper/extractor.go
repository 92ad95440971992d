package scraper

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"assessor_gateway/models"
)

// Value shapes seen across assessor result pages. Currency keeps its $ and
// thousands commas; sale dates come through as 8 contiguous digits.
var (
	reCurrency = regexp.MustCompile(`\$[0-9][0-9,]*`)
	reAcres    = regexp.MustCompile(`(?i)[0-9]*\.?[0-9]+\s*Acres`)
	reDate8    = regexp.MustCompile(`\b[0-9]{8}\b`)
	reYear     = regexp.MustCompile(`\b(19|20)[0-9]{2}\b`)

	reWhitespace = regexp.MustCompile(`\s+`)

	// Whole-page fallbacks for the fields most likely to appear outside
	// tabular markup. Applied only when the table scan left them unset.
	rePageYearBuilt  = regexp.MustCompile(`(?i)year\s*built[:\s]*((19|20)[0-9]{2})`)
	rePageTotalValue = regexp.MustCompile(`(?i)total\s*value[:\s]*(\$[0-9][0-9,]*)`)
	rePageLotSize    = regexp.MustCompile(`(?i)lot\s*size[:\s]*([0-9]*\.?[0-9]+\s*acres)`)
)

// fieldRule is one entry of the ordered extraction table. A nil value shape
// means free text: the remainder of the label cell, or the next cell.
type fieldRule struct {
	label *regexp.Regexp
	value *regexp.Regexp
	field func(*models.PropertyRecord) *string
}

// Ordered: owner-address precedes owner so the longer label claims its cell
// first; both anchor on the colon so "Owner:" never matches "Owner Address:".
var fieldRules = []fieldRule{
	{regexp.MustCompile(`(?i)owner'?s?\s+address\s*:`), nil, func(r *models.PropertyRecord) *string { return &r.OwnerAddress }},
	{regexp.MustCompile(`(?i)\bowner\s*:`), nil, func(r *models.PropertyRecord) *string { return &r.Owner }},
	{regexp.MustCompile(`(?i)building\s+value\s*:?`), reCurrency, func(r *models.PropertyRecord) *string { return &r.BuildingValue }},
	{regexp.MustCompile(`(?i)land\s+value\s*:?`), reCurrency, func(r *models.PropertyRecord) *string { return &r.LandValue }},
	{regexp.MustCompile(`(?i)other\s+value\s*:?`), reCurrency, func(r *models.PropertyRecord) *string { return &r.OtherValue }},
	{regexp.MustCompile(`(?i)total\s+value\s*:?`), reCurrency, func(r *models.PropertyRecord) *string { return &r.TotalValue }},
	{regexp.MustCompile(`(?i)(assessment\s+year|fiscal\s+year|\bFY\b)\s*:?`), reYear, func(r *models.PropertyRecord) *string { return &r.AssessmentYear }},
	{regexp.MustCompile(`(?i)lot\s+size\s*:?`), reAcres, func(r *models.PropertyRecord) *string { return &r.LotSize }},
	{regexp.MustCompile(`(?i)last\s+sale\s+price\s*:?`), reCurrency, func(r *models.PropertyRecord) *string { return &r.LastSalePrice }},
	{regexp.MustCompile(`(?i)last\s+sale\s+date\s*:?`), reDate8, func(r *models.PropertyRecord) *string { return &r.LastSaleDate }},
	{regexp.MustCompile(`(?i)use\s+code\s*:?`), nil, func(r *models.PropertyRecord) *string { return &r.UseCode }},
	{regexp.MustCompile(`(?i)year\s+built\s*:?`), reYear, func(r *models.PropertyRecord) *string { return &r.YearBuilt }},
}

// ExtractRecord recovers a best-effort record from the response page. The
// page has no fixed schema, so every field is independently optional and a
// cell that yields nothing is simply skipped. A rule never overwrites a
// field an earlier (more specific) rule already filled.
func ExtractRecord(html string) models.PropertyRecord {
	var record models.PropertyRecord

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return record
	}

	doc.Find("td, th").Each(func(_ int, cell *goquery.Selection) {
		cellText := normalize(cell.Text())
		if cellText == "" {
			return
		}

		for _, rule := range fieldRules {
			dst := rule.field(&record)
			if *dst != "" {
				continue
			}

			loc := rule.label.FindStringIndex(cellText)
			if loc == nil {
				continue
			}

			if dst == &record.OwnerAddress {
				*dst = collectOwnerAddress(cell)
				return
			}

			if value := extractValue(cell, cellText[loc[1]:], rule.value); value != "" {
				*dst = value
			}
			return
		}
	})

	applyPageFallbacks(&record, normalize(doc.Text()))
	return record
}

// extractValue pulls the value for a matched label: first from the label
// cell's own remainder, then from the next cell, then from the parent row's
// text as a last resort for shaped values split across odd markup.
func extractValue(cell *goquery.Selection, remainder string, shape *regexp.Regexp) string {
	if shape == nil {
		if v := strings.TrimSpace(remainder); v != "" {
			return v
		}
		return normalize(cell.Next().Text())
	}

	if v := shape.FindString(remainder); v != "" {
		return v
	}
	if v := shape.FindString(normalize(cell.Next().Text())); v != "" {
		return v
	}
	return shape.FindString(normalize(cell.Parent().Text()))
}

// collectOwnerAddress joins the sibling cells after the label cell until a
// "Building Value" cell marks the start of the valuation columns.
func collectOwnerAddress(cell *goquery.Selection) string {
	var parts []string
	for sib := cell.Next(); sib.Length() > 0; sib = sib.Next() {
		text := normalize(sib.Text())
		if strings.Contains(strings.ToLower(text), "building value") {
			break
		}
		if text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, ", ")
}

func applyPageFallbacks(record *models.PropertyRecord, pageText string) {
	if record.YearBuilt == "" {
		if m := rePageYearBuilt.FindStringSubmatch(pageText); m != nil {
			record.YearBuilt = m[1]
		}
	}
	if record.TotalValue == "" {
		if m := rePageTotalValue.FindStringSubmatch(pageText); m != nil {
			record.TotalValue = m[1]
		}
	}
	if record.LotSize == "" {
		if m := rePageLotSize.FindStringSubmatch(pageText); m != nil {
			record.LotSize = m[1]
		}
	}
}

func normalize(s string) string {
	return strings.TrimSpace(reWhitespace.ReplaceAllString(s, " "))
}
