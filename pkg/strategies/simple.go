package strategies

import (
	"bytes"
	"io"
	"sort"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/text/cases"
)

// Overwrite always replaces the target file with the template one.
type Overwrite struct{}

func (Overwrite) Apply(in Input) (io.Reader, error) {
	return in.Template, nil
}

// IfMissing writes the template file only when the target does not
// exist; an existing target is never touched again.
type IfMissing struct{}

func (IfMissing) Apply(in Input) (io.Reader, error) {
	if in.Target == nil {
		return in.Template, nil
	}
	return in.Target, nil
}

// SortedUniqueLines combines the lines of both files, drops duplicates
// and blank lines, and sorts the rest case-insensitively. Lines that
// differ only in case are ordered by their exact text so the result does
// not depend on input order.
type SortedUniqueLines struct{}

func (SortedUniqueLines) Apply(in Input) (io.Reader, error) {
	tmpl, err := readAll(in.Template, "template")
	if err != nil {
		return nil, err
	}
	lines := splitLines(string(tmpl))

	if in.Target != nil {
		target, err := readAll(in.Target, "target")
		if err != nil {
			return nil, err
		}
		lines = append(lines, splitLines(string(target))...)
	}

	lines = lo.Uniq(lines)
	lines = lo.Filter(lines, func(line string, _ int) bool { return line != "" })

	caser := cases.Fold()
	folded := lo.SliceToMap(lines, func(line string) (string, string) {
		return line, caser.String(line)
	})
	sort.Slice(lines, func(i, j int) bool {
		a, b := lines[i], lines[j]
		if folded[a] != folded[b] {
			return folded[a] < folded[b]
		}
		return a < b
	})

	lines = append(lines, "")
	return bytes.NewReader([]byte(strings.Join(lines, "\n"))), nil
}

// splitLines splits on \n, \r\n and \r without yielding a trailing empty
// line for terminated input.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
