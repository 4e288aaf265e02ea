package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"setup.cfg", "setup.cfg", true},
		{"setup.cfg", "setupxcfg", false},
		{"setup.cfg", "src/setup.cfg", false},
		{"*.py", "main.py", true},
		{"*.py", "src/pkg/main.py", true},
		{"src/*", "src/a/b/c.txt", true},
		{"*/__init__.py", "__init__.py", false},
		{"*/__init__.py", "pkg/__init__.py", true},
		{"?.txt", "a.txt", true},
		{"?.txt", "ab.txt", false},
		{"[ab].txt", "b.txt", true},
		{"[ab].txt", "c.txt", false},
		{"[!ab].txt", "c.txt", true},
		{"[!ab].txt", "a.txt", false},
		{"[a-c]x", "bx", true},
		{"[]]x", "]x", true},
		{"[x", "[x", true},
		{"[^a]", "^", true},
		{"[^a]", "b", false},
		{"a+b(c)", "a+b(c)", true},
		{".gitignore", ".gitignore", true},
		{"*.CFG", "setup.cfg", false},
		{"**", "any/thing", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"~"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Match(tt.pattern, tt.path))
		})
	}
}

func TestMatchInvalidPattern(t *testing.T) {
	assert.False(t, Match("[z-a]", "b"))

	_, err := compilePattern("[z-a]")
	assert.Error(t, err)
}
