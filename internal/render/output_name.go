package render

import (
	"fmt"
	"strings"
)

// IR kind tags used in default output names.
const (
	KindMIR = "mir"
	KindLIR = "lir"
)

// outputName is the deterministic default file name for one emitted
// graph. Indices are zero-padded so a directory listing sorts in
// processing order. Function and pass index come in as explicit
// parameters, never ambient counters, to keep this pure.
func outputName(funcIndex, passIndex int, passName, kind string) string {
	return fmt.Sprintf("func%02d-pass%02d-%s-%s.gv", funcIndex, passIndex, sanitizeName(passName), kind)
}

// sanitizeName reduces a pass name to a filename-safe token.
func sanitizeName(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r == ' ':
			return '-'
		default:
			return -1
		}
	}, s)
}
