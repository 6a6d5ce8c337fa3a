// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sections

import "strings"

// MatchSectionName reports whether a parsed heading satisfies a
// caller-supplied section name. The match is case-insensitive and
// bidirectional on substrings: a caller asking for "Skills" accepts a
// heading of "Technical Skills", and a caller asking for "Technical
// Skills" accepts a heading of "Skills". This permissiveness is a
// deliberate policy choice to tolerate heading-name drift between the
// generation step and the caller's selection, and it is intentionally
// the single place that policy lives.
func MatchSectionName(heading, desired string) bool {
	h := strings.ToLower(strings.TrimSpace(heading))
	d := strings.ToLower(strings.TrimSpace(desired))
	if h == "" || d == "" {
		return false
	}
	return strings.Contains(h, d) || strings.Contains(d, h)
}
