package strategies

import (
	"bytes"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/arthur-debert/scaraplate/pkg/logging"
	"github.com/arthur-debert/scaraplate/pkg/template"
)

// GeneratedBy is the first line of every provenance comment.
const GeneratedBy = "Generated by https://github.com/rambler-digital-solutions/scaraplate"

// HashOptions shape the provenance comment appended by TemplateHash.
type HashOptions struct {
	// LineCommentStart prefixes every comment line.
	LineCommentStart string `mapstructure:"line_comment_start"`
	// MaxLineLength is the length at which a comment line gets
	// MaxLineLinterIgnoreMark appended. Zero disables the mark.
	MaxLineLength           int    `mapstructure:"max_line_length"`
	MaxLineLinterIgnoreMark string `mapstructure:"max_line_linter_ignore_mark"`
}

var (
	DefaultHashOptions = HashOptions{LineCommentStart: "#"}
	PythonHashOptions  = HashOptions{LineCommentStart: "#", MaxLineLength: 87, MaxLineLinterIgnoreMark: "  # noqa"}
	GroovyHashOptions  = HashOptions{LineCommentStart: "//"}
)

// TemplateHash appends a comment naming the template commit to the
// template file. While the target carries the comment of the current
// clean commit it is left alone, which lets a file diverge from the
// template until the template moves on.
type TemplateHash struct {
	Options HashOptions
}

func templateHashFactory(defaults HashOptions) Factory {
	return func(config map[string]interface{}) (Strategy, error) {
		opts := defaults
		if err := decodeConfig(config, &opts); err != nil {
			return nil, err
		}
		return &TemplateHash{Options: opts}, nil
	}
}

// Comment renders the provenance comment block for meta.
func (s *TemplateHash) Comment(meta template.Meta) string {
	source := "From " + meta.CommitURL
	if meta.IsDirty {
		source = "From (dirty) " + meta.CommitURL
	}

	var b strings.Builder
	for _, text := range []string{GeneratedBy, source} {
		line := s.Options.LineCommentStart + " " + text
		if s.Options.MaxLineLength > 0 && utf8.RuneCountInString(line) >= s.Options.MaxLineLength {
			line += s.Options.MaxLineLinterIgnoreMark
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String()
}

func (s *TemplateHash) Apply(in Input) (io.Reader, error) {
	logger := logging.GetLogger("strategies.template_hash")
	comment := []byte(s.Comment(in.Meta))

	if in.Target != nil {
		target, err := readAll(in.Target, "target")
		if err != nil {
			return nil, err
		}
		if !in.Meta.IsDirty && bytes.Contains(target, comment) {
			logger.Debug().Str("commit", in.Meta.CommitHash).Msg("target already synced to this commit")
			return bytes.NewReader(target), nil
		}
	}

	tmpl, err := readAll(in.Template, "template")
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(tmpl)+1+len(comment))
	out = append(out, tmpl...)
	out = append(out, '\n')
	out = append(out, comment...)
	return bytes.NewReader(out), nil
}
