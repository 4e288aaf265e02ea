package strategies

import (
	"bytes"
	"io"

	"github.com/arthur-debert/scaraplate/pkg/inidoc"
)

var pylintrcKeys = []keyRef{
	{section: "TYPECHECK", key: "ignored-modules"},
	{section: "TYPECHECK", key: "ignored-classes"},
}

// PylintrcMerge takes .pylintrc from the template, carrying over only the
// target's `ignored-modules` and `ignored-classes` of [TYPECHECK]. The
// output is the canonical serialization: comments stripped, sections and
// keys sorted.
type PylintrcMerge struct{}

func (PylintrcMerge) Apply(in Input) (io.Reader, error) {
	tmpl, err := parseInput(in.Template, ".pylintrc.template")
	if err != nil {
		return nil, err
	}

	if in.Target != nil {
		target, err := parseInput(in.Target, ".pylintrc.target")
		if err != nil {
			return nil, err
		}
		for _, ref := range pylintrcKeys {
			preserveKey(tmpl, target, ref)
		}
	}

	return bytes.NewReader(tmpl.Marshal()), nil
}

func parseInput(r io.Reader, source string) (*inidoc.Document, error) {
	data, err := readAll(r, source)
	if err != nil {
		return nil, err
	}
	return inidoc.Parse(data, source)
}
