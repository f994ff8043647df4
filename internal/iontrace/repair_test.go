package iontrace_test

import (
	"encoding/json"
	"testing"

	"irgraph/internal/iontrace"
)

const wellFormed = `{"functions": [{"name": "f", "passes": [{"name": "p", "mir": {"blocks": [{"number": 0, "attributes": [], "successors": [1], "instructions": []}]}, "lir": {"blocks": []}}]}]}`

// TestRepair_BalancedUnchanged tests that an already-balanced document
// comes back as the identical string.
func TestRepair_BalancedUnchanged(t *testing.T) {
	if got := iontrace.Repair(wellFormed); got != wellFormed {
		t.Errorf("balanced document was modified:\n%s", got)
	}
}

// TestRepair_Idempotent tests that repairing a repaired document is a
// no-op.
func TestRepair_Idempotent(t *testing.T) {
	truncated := wellFormed[:40]
	once := iontrace.Repair(truncated)
	twice := iontrace.Repair(once)
	if once != twice {
		t.Errorf("repair is not idempotent:\nonce:  %s\ntwice: %s", once, twice)
	}
}

// TestRepair_TruncationBalancesEveryOffset tests that truncation at
// any byte offset outside a string literal yields a structurally
// balanced document. Mid-string truncation is excluded by contract.
func TestRepair_TruncationBalancesEveryOffset(t *testing.T) {
	inString, escaped := false, false
	for off := 0; off <= len(wellFormed); off++ {
		if !inString {
			repaired := iontrace.Repair(wellFormed[:off])
			if !balanced(repaired) {
				t.Fatalf("offset %d: repaired document is unbalanced: %s", off, repaired)
			}
		}
		if off == len(wellFormed) {
			break
		}
		c := wellFormed[off]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
		} else if c == '"' {
			inString = true
		}
	}
}

// TestRepair_TruncationParses tests realistic crash points: truncation
// right after a complete value decodes as partial but valid JSON.
func TestRepair_TruncationParses(t *testing.T) {
	cases := []struct {
		name string
		cut  string
	}{
		{"after array value", `{"functions": [{"name": "f", "passes": [{"name": "p", "mir": {"blocks": [{"number": 0`},
		{"after closed object", `{"functions": [{"name": "f", "passes": [{"name": "p"}`},
		{"inside empty list", `{"functions": [`},
		{"after string value", `{"functions": [{"name": "f"`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repaired := iontrace.Repair(tc.cut)
			var v any
			if err := json.Unmarshal([]byte(repaired), &v); err != nil {
				t.Errorf("repaired document does not parse: %v\n%s", err, repaired)
			}
		})
	}
}

// TestRepair_QuoteAwareness tests that bracket-looking characters
// inside string literals are not treated as structural.
func TestRepair_QuoteAwareness(t *testing.T) {
	in := `{"name": "}{][", "passes": [{"x": 1`
	got := iontrace.Repair(in)
	want := in + `}]}`
	if got != want {
		t.Errorf("quote-aware repair mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

// TestRepair_EscapedQuote tests that an escaped quote does not end the
// string, so brackets after it stay non-structural.
func TestRepair_EscapedQuote(t *testing.T) {
	in := `{"name": "x\"{y", "blocks": [`
	got := iontrace.Repair(in)
	want := in + `]}`
	if got != want {
		t.Errorf("escaped-quote repair mismatch:\ngot:  %s\nwant: %s", got, want)
	}
}

// TestRepair_PopIgnoresBracketType tests that a closing bracket pops
// the stack without type matching.
func TestRepair_PopIgnoresBracketType(t *testing.T) {
	in := `{]`
	got := iontrace.Repair(in)
	if got != in {
		t.Errorf("mismatched close should still pop: got %s", got)
	}
}

// balanced re-scans a document the way Repair does and reports whether
// every opened bracket was closed.
func balanced(s string) bool {
	depth := 0
	inString := false
	escaped := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{', '[':
			depth++
		case '}', ']':
			depth--
		}
	}
	return depth == 0
}
