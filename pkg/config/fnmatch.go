package config

import (
	"regexp"
	"strings"

	"github.com/arthur-debert/scaraplate/pkg/errors"
)

// Match reports whether path matches the shell-style pattern. `*` matches
// any run of characters including `/`, `?` matches one character, and
// `[seq]` / `[!seq]` match a character in or not in seq. A `[` without a
// closing `]` is literal. An invalid pattern matches nothing.
func Match(pattern, path string) bool {
	re, err := compilePattern(pattern)
	if err != nil {
		return false
	}
	return re.MatchString(path)
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	re, err := regexp.Compile(translatePattern(pattern))
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigValid, "invalid pattern %q", pattern).
			WithDetail("pattern", pattern)
	}
	return re, nil
}

// translatePattern turns a shell-style pattern into an anchored regular
// expression.
func translatePattern(pattern string) string {
	var b strings.Builder
	b.WriteString(`(?s)^`)

	runes := []rune(pattern)
	for i := 0; i < len(runes); i++ {
		c := runes[i]
		switch c {
		case '*':
			// runs of stars are equivalent to one
			for i+1 < len(runes) && runes[i+1] == '*' {
				i++
			}
			b.WriteString(`.*`)
		case '?':
			b.WriteString(`.`)
		case '[':
			end := closingBracket(runes, i)
			if end < 0 {
				b.WriteString(`\[`)
				continue
			}
			b.WriteString(bracketClass(runes[i+1 : end]))
			i = end
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
		}
	}

	b.WriteString(`$`)
	return b.String()
}

// closingBracket returns the index of the `]` closing the set opened at
// start, or -1. A `]` right after `[` or `[!` belongs to the set.
func closingBracket(runes []rune, start int) int {
	j := start + 1
	if j < len(runes) && runes[j] == '!' {
		j++
	}
	if j < len(runes) && runes[j] == ']' {
		j++
	}
	for ; j < len(runes); j++ {
		if runes[j] == ']' {
			return j
		}
	}
	return -1
}

func bracketClass(set []rune) string {
	var b strings.Builder
	b.WriteByte('[')
	if len(set) > 0 && set[0] == '!' {
		b.WriteByte('^')
		set = set[1:]
	} else if len(set) > 0 && set[0] == '^' {
		b.WriteString(`\^`)
		set = set[1:]
	}
	for _, c := range set {
		switch c {
		case '\\', '[', ']':
			b.WriteByte('\\')
		}
		b.WriteRune(c)
	}
	b.WriteByte(']')
	return b.String()
}
