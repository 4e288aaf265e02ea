package requirements

import (
	"sort"
	"strings"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// Requirement is a dependency specifier split into its parts. Raw keeps
// the original text, which is what gets written back to disk.
type Requirement struct {
	Raw       string
	Name      string
	Extras    []string
	Specifier string
	URL       string
	Marker    string
}

// ParseRequirement decomposes a single specifier such as
// `requests[security]>=2.8.1; python_version < "2.7"`.
func ParseRequirement(spec string) (Requirement, error) {
	req := Requirement{Raw: strings.TrimSpace(spec)}
	l := newLexer(spec)

	tok := l.next()
	if tok.kind != tokIdent || !isAlnum(tok.text[0]) {
		return req, errors.Newf(errors.ErrInvalidInput, "requirement %q does not start with a package name", req.Raw)
	}
	req.Name = tok.text

	// Everything after the name and extras is scanned on a fresh lexer
	// so specifier and marker text can be sliced out verbatim.
	rest := l.rest()
	l = newLexer(rest)
	tok = l.next()

	if tok.kind == tokLBracket {
		for {
			tok = l.next()
			switch tok.kind {
			case tokIdent:
				req.Extras = append(req.Extras, tok.text)
				continue
			case tokComma:
				continue
			case tokRBracket:
			default:
				return req, errors.Newf(errors.ErrInvalidInput, "unterminated extras in requirement %q", req.Raw)
			}
			break
		}
		rest = l.rest()
		l = newLexer(rest)
		tok = l.next()
	}

	body := rest
	if i := strings.IndexByte(rest, ';'); i >= 0 {
		body = rest[:i]
		req.Marker = strings.TrimSpace(rest[i+1:])
	}

	if tok.kind == tokAt {
		req.URL = strings.TrimSpace(body[tok.pos+1:])
	} else {
		req.Specifier = strings.TrimSpace(body)
	}

	return req, nil
}

// Fold case-folds s for case-insensitive comparison and ordering.
// A Caser holds state, so each call gets its own.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Name returns the normalized package name of a specifier: the leading
// identifier, case-folded, with extras, version constraints, URLs and
// environment markers ignored. Specifiers that do not start with a name
// normalize to their whole folded text.
func Name(spec string) string {
	req, err := ParseRequirement(spec)
	if err != nil {
		return Fold(strings.TrimSpace(spec))
	}
	return Fold(req.Name)
}

// Parse splits a requirements field into individual specifiers. A
// multi-line field holds one specifier per line; a single-line field is
// comma-separated, with pieces that cannot start a specifier (such as the
// `<2` of `foo>=1,<2`) glued back onto the previous one. Blank entries and
// comment lines are dropped.
func Parse(field string) []string {
	var parts []string
	if strings.Contains(field, "\n") {
		parts = strings.Split(field, "\n")
	} else {
		parts = splitCommas(field)
	}

	parts = lo.Map(parts, func(s string, _ int) string { return strings.TrimSpace(s) })
	return lo.Filter(parts, func(s string, _ int) bool {
		return s != "" && !strings.HasPrefix(s, "#")
	})
}

func splitCommas(field string) []string {
	var out []string
	for _, piece := range splitTopLevel(field) {
		trimmed := strings.TrimSpace(piece)
		if len(out) > 0 && trimmed != "" && !isAlnum(trimmed[0]) {
			out[len(out)-1] += "," + piece
			continue
		}
		out = append(out, piece)
	}
	return out
}

// splitTopLevel splits s on commas that are not inside the brackets of
// an extras list.
func splitTopLevel(s string) []string {
	var (
		pieces []string
		depth  int
		start  int
	)
	lex := newLexer(s)
	for tok := lex.next(); tok.kind != tokEOF; tok = lex.next() {
		switch tok.kind {
		case tokLBracket:
			depth++
		case tokRBracket:
			if depth > 0 {
				depth--
			}
		case tokComma:
			if depth == 0 {
				pieces = append(pieces, s[start:tok.pos])
				start = tok.pos + 1
			}
		}
	}
	return append(pieces, s[start:])
}

// Dump formats specifiers as a multi-line field value: an empty first line
// followed by one specifier per line, matching the setup.cfg layout
//
//	install_requires =
//		foo
//		bar
func Dump(reqs []string) string {
	if len(reqs) == 0 {
		return ""
	}
	return "\n" + strings.Join(reqs, "\n")
}

// Merge combines two requirement lists. Every entry of target is kept
// verbatim, so its pins and extras win; entries of template whose
// normalized name does not appear in target are appended. The result is
// sorted case-insensitively by full specifier text.
func Merge(target, template []string) []string {
	existing := lo.SliceToMap(target, func(r string) (string, struct{}) {
		return Name(r), struct{}{}
	})

	merged := make([]string, 0, len(target)+len(template))
	merged = append(merged, target...)
	for _, r := range template {
		if _, ok := existing[Name(r)]; !ok {
			merged = append(merged, r)
		}
	}

	SortFolded(merged)
	return merged
}

// SortFolded sorts s in place by case-folded value, keeping the relative
// order of entries that fold to the same key.
func SortFolded(s []string) {
	keys := make(map[string]string, len(s))
	for _, v := range s {
		keys[v] = Fold(v)
	}
	sort.SliceStable(s, func(i, j int) bool {
		return keys[s[i]] < keys[s[j]]
	})
}
