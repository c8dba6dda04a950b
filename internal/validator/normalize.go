package validator

import (
	"fmt"
	"net/url"
	"strings"
)

// input is one deduplicated entry ready for dispatch.
type input struct {
	key       string
	malformed bool
}

// NormalizeURL standardizes a URL so equivalent spellings share one key.
// It lowercases the scheme and host, removes default ports, drops the
// fragment, and sorts query parameters. Path case is preserved: dedup, cache
// keys, and the reconciliation check all compare this form case-sensitively,
// since origin servers treat path case as significant.
func NormalizeURL(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("parse url: %w", err)
	}
	if !u.IsAbs() || u.Host == "" {
		return "", fmt.Errorf("not an absolute url: %q", rawURL)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)

	if u.Scheme == "http" && strings.HasSuffix(u.Host, ":80") {
		u.Host = strings.TrimSuffix(u.Host, ":80")
	}
	if u.Scheme == "https" && strings.HasSuffix(u.Host, ":443") {
		u.Host = strings.TrimSuffix(u.Host, ":443")
	}

	u.Fragment = ""

	q := u.Query()
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// normalizeInputs trims, drops blanks, deduplicates, and splits the raw list
// into well-formed keys and malformed entries. Input order is preserved.
// Malformed entries keep their trimmed raw text as the key so they still
// appear in the report.
func normalizeInputs(raw []string) []input {
	seen := make(map[string]struct{}, len(raw))
	inputs := make([]input, 0, len(raw))
	for _, r := range raw {
		trimmed := strings.TrimSpace(r)
		if trimmed == "" {
			continue
		}
		key, err := NormalizeURL(trimmed)
		malformed := err != nil
		if malformed {
			key = trimmed
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		inputs = append(inputs, input{key: key, malformed: malformed})
	}
	return inputs
}
