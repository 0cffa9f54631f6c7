package command

import (
	"strings"
)

// Expand substitutes user-supplied arguments into the command body.
//
// $ARGUMENTS is replaced with the full argument string. $1 through $9
// are replaced with the corresponding whitespace-split argument, or the
// empty string when fewer arguments were given. A "$" followed by more
// digits ($10, $123) is not a placeholder and passes through untouched,
// so dollar amounts in a body survive expansion. When the body contains
// no placeholder at all and arguments are non-empty, they are appended
// as a trailing line so the invocation never silently drops user input.
func Expand(body, arguments string) string {
	arguments = strings.TrimSpace(arguments)

	hasPlaceholder := strings.Contains(body, "$ARGUMENTS")
	out := strings.ReplaceAll(body, "$ARGUMENTS", arguments)

	out, replaced := expandPositionals(out, strings.Fields(arguments))
	hasPlaceholder = hasPlaceholder || replaced

	if !hasPlaceholder && arguments != "" {
		out = strings.TrimRight(out, "\n") + "\n\n" + arguments + "\n"
	}

	return out
}

// expandPositionals replaces $1..$9 in s with the matching field. The
// digit after a placeholder must not be another digit: "$10" stays
// literal.
func expandPositionals(s string, fields []string) (string, bool) {
	if !strings.ContainsRune(s, '$') {
		return s, false
	}

	var b strings.Builder
	b.Grow(len(s))
	replaced := false

	for i := 0; i < len(s); {
		if s[i] == '$' && i+1 < len(s) && isPositionalDigit(s[i+1]) &&
			(i+2 >= len(s) || !isDigit(s[i+2])) {
			n := int(s[i+1] - '0')
			if n <= len(fields) {
				b.WriteString(fields[n-1])
			}
			replaced = true
			i += 2
			continue
		}
		b.WriteByte(s[i])
		i++
	}

	return b.String(), replaced
}

func isPositionalDigit(c byte) bool { return c >= '1' && c <= '9' }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
