// Package slug derives stable filesystem-safe keys from free-text
// titles. Every stage that has to agree on which artifact belongs to
// which content item goes through Make.
package slug

import "strings"

// Make converts a title into a key of lowercase [a-z0-9äö] runs
// separated by single hyphens, with no leading or trailing hyphen.
// Deterministic and idempotent. Two titles normalizing to the same
// key is an accepted collision (last writer wins).
func Make(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		ok := (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == 'ä' || r == 'ö'
		if !ok {
			if b.Len() > 0 {
				pendingSep = true
			}
			continue
		}
		if pendingSep {
			b.WriteByte('-')
			pendingSep = false
		}
		b.WriteRune(r)
	}
	return b.String()
}
