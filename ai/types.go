package ai

import "strings"

// RouteAll is the routing sentinel meaning "no specific service fits".
const RouteAll = "all"

// KnownRoles is the controlled vocabulary of service roles that may be
// derived from supplier documents. Detected roles that do not match an
// entry are discarded.
var KnownRoles = []string{
	"babysitter",
	"barber",
	"carpenter",
	"chef",
	"cleaner",
	"electrician",
	"gardener",
	"handyman",
	"locksmith",
	"mechanic",
	"mover",
	"painter",
	"photographer",
	"plumber",
	"roofer",
	"tailor",
	"tutor",
	"welder",
}

// MatchKnownRoles filters detected role names against the KnownRoles
// vocabulary. A detection matches when it is a case-insensitive substring
// of a known role; the canonical vocabulary entry is returned. Unmatched
// detections are discarded and duplicates collapse to one entry.
func MatchKnownRoles(detected []string) []string {
	var matched []string
	seen := make(map[string]bool, len(detected))

	for _, role := range detected {
		role = strings.ToLower(strings.TrimSpace(role))
		if role == "" {
			continue
		}
		for _, known := range KnownRoles {
			if strings.Contains(strings.ToLower(known), role) {
				if !seen[known] {
					seen[known] = true
					matched = append(matched, known)
				}
				break
			}
		}
	}

	return matched
}
