// Package validator contains tests for input normalization.
package validator

import "testing"

// TestNormalizeURLCanonicalizes checks scheme/host lowering, default port and
// fragment stripping, and query sorting.
func TestNormalizeURLCanonicalizes(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTP://Example.COM/Path", "http://example.com/Path"},
		{"strips default http port", "http://example.com:80/a", "http://example.com/a"},
		{"strips default https port", "https://example.com:443/a", "https://example.com/a"},
		{"keeps custom port", "http://example.com:8080/a", "http://example.com:8080/a"},
		{"drops fragment", "http://example.com/a#section", "http://example.com/a"},
		{"sorts query params", "http://example.com/a?b=2&a=1", "http://example.com/a?a=1&b=2"},
		{"preserves path case", "http://example.com/About/Team", "http://example.com/About/Team"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeURL(tc.in)
			if err != nil {
				t.Fatalf("NormalizeURL(%q) error = %v", tc.in, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeURL(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

// TestNormalizeURLRejectsMalformed ensures non-absolute or hostless strings
// are reported as malformed.
func TestNormalizeURLRejectsMalformed(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"not a url",
		"example.com/no-scheme",
		"/relative/path",
		"http://",
		"",
	} {
		if _, err := NormalizeURL(raw); err == nil {
			t.Errorf("NormalizeURL(%q) expected error, got nil", raw)
		}
	}
}

// TestNormalizeInputsDedupes verifies trimming, blank filtering, and
// normalized-key deduplication while preserving input order.
func TestNormalizeInputsDedupes(t *testing.T) {
	t.Parallel()

	inputs := normalizeInputs([]string{
		"  http://example.com/a  ",
		"http://EXAMPLE.com/a",
		"",
		"   ",
		"http://example.com/b",
		"http://example.com/a",
	})

	if len(inputs) != 2 {
		t.Fatalf("expected 2 distinct inputs, got %d: %+v", len(inputs), inputs)
	}
	if inputs[0].key != "http://example.com/a" || inputs[1].key != "http://example.com/b" {
		t.Fatalf("unexpected keys: %+v", inputs)
	}
}

// TestNormalizeInputsPathCaseDistinct confirms path case is significant for
// deduplication.
func TestNormalizeInputsPathCaseDistinct(t *testing.T) {
	t.Parallel()

	inputs := normalizeInputs([]string{"http://example.com/a", "http://example.com/A"})
	if len(inputs) != 2 {
		t.Fatalf("expected path-case variants to stay distinct, got %+v", inputs)
	}
}

// TestNormalizeInputsMarksMalformed checks malformed entries keep their
// trimmed raw text as key.
func TestNormalizeInputsMarksMalformed(t *testing.T) {
	t.Parallel()

	inputs := normalizeInputs([]string{" not a url "})
	if len(inputs) != 1 {
		t.Fatalf("expected 1 input, got %d", len(inputs))
	}
	if !inputs[0].malformed || inputs[0].key != "not a url" {
		t.Fatalf("unexpected input: %+v", inputs[0])
	}
}
