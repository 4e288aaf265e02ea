package inidoc

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/arthur-debert/scaraplate/pkg/logging"
)

// Parse reads INI-style content into a Document.
//
// Accepted syntax: `[name]` section headers, `key = value` or
// `key: value` pairs, full-line comments starting with `#` or `;`, and
// multi-line values whose continuation lines are indented deeper than
// the key. Keys are lower-cased; section names are kept verbatim.
// Duplicate sections, duplicate keys within a section, keys outside of
// any section and malformed lines are reported as ErrParse errors
// carrying the source name and line number.
func Parse(data []byte, source string) (*Document, error) {
	logger := logging.GetLogger("inidoc")

	p := &parser{doc: New(), source: source}
	text := strings.ReplaceAll(string(data), "\r\n", "\n")
	for i, line := range strings.Split(text, "\n") {
		if err := p.line(i+1, line); err != nil {
			return nil, err
		}
	}
	p.flush()

	logger.Trace().
		Str("source", source).
		Int("sections", len(p.doc.order)).
		Msg("parsed document")

	return p.doc, nil
}

type parser struct {
	doc    *Document
	source string

	section *Section

	// the key currently accepting continuation lines
	key       string
	keyIndent int
	value     []string
	blanks    int
}

func (p *parser) line(n int, raw string) error {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		if p.key != "" {
			p.blanks++
		}
		return nil
	}
	if trimmed[0] == '#' || trimmed[0] == ';' {
		return nil
	}

	indent := len(raw) - len(strings.TrimLeft(raw, " \t"))
	if p.key != "" && indent > p.keyIndent {
		for ; p.blanks > 0; p.blanks-- {
			p.value = append(p.value, "")
		}
		p.value = append(p.value, trimmed)
		return nil
	}
	p.flush()

	// A header needs a non-empty name in brackets; anything else starting
	// with '[' is parsed as a key/value line.
	if end := strings.LastIndexByte(trimmed, ']'); trimmed[0] == '[' && end > 1 {
		name := trimmed[1:end]
		if p.doc.HasSection(name) {
			return p.errorf(n, "duplicate section %q", name)
		}
		p.section = p.doc.EnsureSection(name)
		return nil
	}

	if p.section == nil {
		return p.errorf(n, "key/value line %q before any section header", trimmed)
	}

	delim := strings.IndexAny(trimmed, "=:")
	if delim < 0 {
		return p.errorf(n, "line %q is neither a section header nor a key/value pair", trimmed)
	}
	key := strings.ToLower(strings.TrimSpace(trimmed[:delim]))
	if key == "" {
		return p.errorf(n, "empty key in %q", trimmed)
	}
	if p.section.Has(key) {
		return p.errorf(n, "duplicate key %q in section %q", key, p.section.name)
	}

	p.key = key
	p.keyIndent = indent
	p.value = []string{strings.TrimSpace(trimmed[delim+1:])}
	return nil
}

// flush stores the pending key. Blank lines trailing a value are dropped.
func (p *parser) flush() {
	if p.key == "" {
		return
	}
	p.section.Set(p.key, strings.Join(p.value, "\n"))
	p.key = ""
	p.value = nil
	p.blanks = 0
}

func (p *parser) errorf(line int, format string, args ...interface{}) error {
	msg := fmt.Sprintf(format, args...)
	return errors.Newf(errors.ErrParse, "%s:%d: %s", p.source, line, msg).
		WithDetail("source", p.source).
		WithDetail("line", line)
}
