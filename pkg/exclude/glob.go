package exclude

import (
	"regexp"
	"strings"
)

// neverMatch is a fragment that cannot match any input. Unparseable glob
// patterns degrade to this instead of aborting compilation.
const neverMatch = `[^\s\S]`

// translateGlob converts a shell-style glob (*, ?, character classes)
// into an unanchored regular expression fragment, fnmatch-style.
func translateGlob(glob string) string {
	var sb strings.Builder
	i, n := 0, len(glob)
	for i < n {
		c := glob[i]
		i++
		switch c {
		case '*':
			sb.WriteString(`.*`)
		case '?':
			sb.WriteString(`.`)
		case '[':
			j := i
			if j < n && glob[j] == '!' {
				j++
			}
			if j < n && glob[j] == ']' {
				j++
			}
			for j < n && glob[j] != ']' {
				j++
			}
			if j >= n {
				// Unterminated class is a literal bracket.
				sb.WriteString(`\[`)
				continue
			}
			stuff := strings.ReplaceAll(glob[i:j], `\`, `\\`)
			i = j + 1
			if strings.HasPrefix(stuff, "!") {
				stuff = "^" + stuff[1:]
			} else if strings.HasPrefix(stuff, "^") {
				stuff = `\` + stuff
			}
			sb.WriteString("[" + stuff + "]")
		default:
			sb.WriteString(regexp.QuoteMeta(string(c)))
		}
	}
	return sb.String()
}

// globFragment translates a glob and validates the result, falling back
// to a never-matching fragment when the translation does not compile.
func globFragment(glob string) (string, bool) {
	fragment := translateGlob(glob)
	if _, err := regexp.Compile("^(?:" + fragment + ")$"); err != nil {
		return neverMatch, false
	}
	return fragment, true
}
