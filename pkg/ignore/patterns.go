package ignore

import (
	"regexp"
	"strings"
)

// parsePatternLine turns one ignore line into an anchored regular expression and a negation flag.
// Returns nil for blank lines and comments.
func parsePatternLine(line string) (*regexp.Regexp, bool) {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return nil, false
	}

	negate := false
	if strings.HasPrefix(trimmed, "!") {
		negate = true
		trimmed = strings.TrimPrefix(trimmed, "!")
	}

	// Escaped leading '#' and '!'.
	if strings.HasPrefix(trimmed, `\#`) || strings.HasPrefix(trimmed, `\!`) {
		trimmed = trimmed[1:]
	}

	dirOnly := strings.HasSuffix(trimmed, "/")
	body := strings.Trim(trimmed, "/")
	if body == "" {
		return nil, false
	}
	// A slash at the start or in the middle ties the pattern to the root.
	rooted := strings.HasPrefix(trimmed, "/") || strings.Contains(body, "/")

	compiled, err := regexp.Compile(anchorPattern(globToRegex(body), rooted, dirOnly))
	if err != nil {
		return nil, false
	}
	return compiled, negate
}

// globToRegex converts '*', '?' and '**' wildcards and escapes everything else.
func globToRegex(glob string) string {
	var b strings.Builder
	for i := 0; i < len(glob); i++ {
		c := glob[i]
		switch c {
		case '*':
			if i+1 < len(glob) && glob[i+1] == '*' {
				i++
				if i+1 < len(glob) && glob[i+1] == '/' {
					i++
					b.WriteString(`(?:.*/)?`)
				} else {
					b.WriteString(`.*`)
				}
				continue
			}
			b.WriteString(`[^/]*`)
		case '?':
			b.WriteString(`[^/]`)
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return b.String()
}

// anchorPattern anchors the regex to a whole path. Unrooted patterns may match at any depth.
// Directory-only patterns need a trailing slash, which MatchesDir supplies.
func anchorPattern(pattern string, rooted, dirOnly bool) string {
	if dirOnly {
		pattern += `/.*$`
	} else {
		pattern += `(?:/.*)?$`
	}
	if rooted {
		return "^" + pattern
	}
	return "^(?:.*/)?" + pattern
}
