package scaffold

import "strings"

const maxSlugLen = 50

// Slugify turns a human title into a filesystem-safe name for a new
// command, agent, or PRP file. Lowercase alphanumerics with single
// hyphens, truncated at a word boundary when too long.
func Slugify(title string) string {
	if strings.TrimSpace(title) == "" {
		return "untitled"
	}

	s := strings.ToLower(strings.TrimSpace(title))

	var b strings.Builder
	prevHyphen := false
	for _, r := range s {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			prevHyphen = false
		case r == ' ' || r == '_' || r == '-' || r == '/':
			if !prevHyphen {
				b.WriteByte('-')
				prevHyphen = true
			}
		}
	}

	slug := strings.Trim(b.String(), "-")
	if slug == "" {
		return "untitled"
	}
	if len(slug) <= maxSlugLen {
		return slug
	}

	truncated := slug[:maxSlugLen]
	if lastHyphen := strings.LastIndex(truncated, "-"); lastHyphen > maxSlugLen/2 {
		truncated = truncated[:lastHyphen]
	}
	return strings.TrimRight(truncated, "-")
}
