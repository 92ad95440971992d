package scraper

import "strings"

const (
	RoleRegion  = "region"
	RoleStreet  = "street"
	RoleAddress = "address"
)

// ControlInfo describes one select control as found on the live page.
// Instances are ephemeral; option sets change between steps, so only the
// identity fields are kept here and options are re-read per step.
type ControlInfo struct {
	Identifier string
	Name       string
	Position   int
}

// Roles maps each form role to its resolved control.
type Roles struct {
	Region  ControlInfo
	Street  ControlInfo
	Address ControlInfo
}

// roleRule is one entry of the prioritized classification table: the first
// unclaimed control satisfying the predicate takes the role. Positional
// assignment is applied afterwards as the explicit final rule, so markup
// that preserves either naming or ordering keeps resolving.
type roleRule struct {
	role  string
	match func(ControlInfo) bool
}

func keywordRule(role string, words []string) roleRule {
	return roleRule{
		role: role,
		match: func(c ControlInfo) bool {
			id := strings.ToLower(c.Identifier)
			name := strings.ToLower(c.Name)
			for _, w := range words {
				if strings.Contains(id, w) || strings.Contains(name, w) {
					return true
				}
			}
			return false
		},
	}
}

// ResolveRoles classifies the page's select controls into the three form
// roles. Keyword rules run in role order (region, street, address); any
// role still unassigned falls back to position (first control is region,
// second street, third address, skipping controls already claimed).
func ResolveRoles(controls []ControlInfo, regionWords, streetWords, addressWords []string) (Roles, error) {
	if len(controls) < 3 {
		return Roles{}, &ResolutionError{Found: len(controls)}
	}

	rules := []roleRule{
		keywordRule(RoleRegion, regionWords),
		keywordRule(RoleStreet, streetWords),
		keywordRule(RoleAddress, addressWords),
	}

	assigned := make(map[string]ControlInfo)
	claimed := make(map[int]bool)

	for _, rule := range rules {
		for _, c := range controls {
			if claimed[c.Position] {
				continue
			}
			if rule.match(c) {
				assigned[rule.role] = c
				claimed[c.Position] = true
				break
			}
		}
	}

	// Positional convention for whatever keyword matching left open.
	for i, role := range []string{RoleRegion, RoleStreet, RoleAddress} {
		if _, ok := assigned[role]; ok {
			continue
		}
		pick := controls[i]
		if claimed[pick.Position] {
			for _, c := range controls {
				if !claimed[c.Position] {
					pick = c
					break
				}
			}
		}
		assigned[role] = pick
		claimed[pick.Position] = true
	}

	return Roles{
		Region:  assigned[RoleRegion],
		Street:  assigned[RoleStreet],
		Address: assigned[RoleAddress],
	}, nil
}
