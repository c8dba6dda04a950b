package validator

import "strings"

// ContainsNoindex reports whether a robots directive value carries a noindex
// instruction. The same case-insensitive containment check is used for the
// X-Robots-Tag header and for meta robots/googlebot content, so the two
// detection paths can never diverge.
func ContainsNoindex(value string) bool {
	return strings.Contains(strings.ToLower(value), "noindex")
}
