package iontrace

import "strings"

// Repair restores structural balance to trace text that may have been
// truncated mid-write. It scans the text once, tracking whether it is
// inside a quoted string (any unescaped double quote toggles the state;
// escape sequences are otherwise not interpreted) and stacking every
// opening bracket seen outside a string. Closing brackets pop the stack
// without type matching. Whatever remains open afterwards is closed,
// innermost first.
//
// The result is structurally balanced, not necessarily semantically
// valid; decoding may still fail on the repaired text, and that failure
// is the caller's to report. Balanced input is returned unchanged.
func Repair(text string) string {
	var stack []byte
	inString := false
	escaped := false
	for i := 0; i < len(text); i++ {
		c := text[i]
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
			stack = append(stack, c)
		case '}', ']':
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
	}
	if len(stack) == 0 {
		return text
	}

	var b strings.Builder
	b.Grow(len(text) + len(stack))
	b.WriteString(text)
	for i := len(stack) - 1; i >= 0; i-- {
		switch stack[i] {
		case '{':
			b.WriteByte('}')
		case '[':
			b.WriteByte(']')
		}
	}
	return b.String()
}
