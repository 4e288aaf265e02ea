package requirements

import (
	"testing"

	"github.com/arthur-debert/scaraplate/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRequirement(t *testing.T) {
	tests := []struct {
		name string
		spec string
		want Requirement
	}{
		{
			name: "bare name",
			spec: "foo",
			want: Requirement{Raw: "foo", Name: "foo"},
		},
		{
			name: "version constraint",
			spec: "foo>=1.0,<2",
			want: Requirement{Raw: "foo>=1.0,<2", Name: "foo", Specifier: ">=1.0,<2"},
		},
		{
			name: "extras and marker",
			spec: `requests[security, socks] >= 2.8.1 ; python_version < "2.7"`,
			want: Requirement{
				Raw:       `requests[security, socks] >= 2.8.1 ; python_version < "2.7"`,
				Name:      "requests",
				Extras:    []string{"security", "socks"},
				Specifier: ">= 2.8.1",
				Marker:    `python_version < "2.7"`,
			},
		},
		{
			name: "url",
			spec: "pip @ https://github.com/pypa/pip/archive/1.3.1.zip",
			want: Requirement{
				Raw:  "pip @ https://github.com/pypa/pip/archive/1.3.1.zip",
				Name: "pip",
				URL:  "https://github.com/pypa/pip/archive/1.3.1.zip",
			},
		},
		{
			name: "dotted name",
			spec: "  zope.interface==5.0  ",
			want: Requirement{Raw: "zope.interface==5.0", Name: "zope.interface", Specifier: "==5.0"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRequirement(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseRequirementErrors(t *testing.T) {
	for _, spec := range []string{"", ">=1.0", "-e git+https://example.com/repo", "foo[bar"} {
		_, err := ParseRequirement(spec)
		assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput), "spec %q", spec)
	}
}

func TestName(t *testing.T) {
	tests := map[string]string{
		"foo":                         "foo",
		"Foo==1.5":                    "foo",
		"FOO[extra]>=2":               "foo",
		"Django ; python_version>'3'": "django",
		"aiohttp~=3.6":                "aiohttp",
		"-e .":                        "-e .",
	}

	for spec, want := range tests {
		assert.Equal(t, want, Name(spec), "spec %q", spec)
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		field string
		want  []string
	}{
		{
			name:  "multi-line",
			field: "\nfoo>=1.0\n  bar==2.0  \n\n# pinned elsewhere\nbaz",
			want:  []string{"foo>=1.0", "bar==2.0", "baz"},
		},
		{
			name:  "comma separated",
			field: "foo, bar>=1,<2 ,baz",
			want:  []string{"foo", "bar>=1,<2", "baz"},
		},
		{
			name:  "comma inside extras",
			field: "requests[security,socks]>=2.8, foo",
			want:  []string{"requests[security,socks]>=2.8", "foo"},
		},
		{
			name:  "extras and version range",
			field: "bar[a, b]>=1,<2,baz",
			want:  []string{"bar[a, b]>=1,<2", "baz"},
		},
		{
			name:  "single",
			field: "foo==1.5",
			want:  []string{"foo==1.5"},
		},
		{
			name:  "empty",
			field: "",
			want:  []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Parse(tt.field))
		})
	}
}

func TestDump(t *testing.T) {
	assert.Equal(t, "", Dump(nil))
	assert.Equal(t, "\nbar==2.0\nfoo==1.5", Dump([]string{"bar==2.0", "foo==1.5"}))
}

func TestMerge(t *testing.T) {
	tests := []struct {
		name     string
		target   []string
		template []string
		want     []string
	}{
		{
			name:     "target pin wins",
			target:   []string{"foo==1.5"},
			template: []string{"foo>=1.0", "bar==2.0"},
			want:     []string{"bar==2.0", "foo==1.5"},
		},
		{
			name:     "names compare case-insensitively",
			target:   []string{"PyYAML==5.1"},
			template: []string{"pyyaml>=5", "Click"},
			want:     []string{"Click", "PyYAML==5.1"},
		},
		{
			name:     "extras do not change the name",
			target:   []string{"requests[socks]"},
			template: []string{"requests>=2"},
			want:     []string{"requests[socks]"},
		},
		{
			name:     "single-line target with extras dedupes",
			target:   Parse("requests[security,socks]>=2.8, bar"),
			template: []string{"requests>=2", "foo"},
			want:     []string{"bar", "foo", "requests[security,socks]>=2.8"},
		},
		{
			name:     "no target",
			target:   nil,
			template: []string{"b", "A"},
			want:     []string{"A", "b"},
		},
		{
			name:     "stricter template constraint still loses",
			target:   []string{"foo"},
			template: []string{"foo>=3"},
			want:     []string{"foo"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(tt.target, tt.template))
		})
	}
}

func TestSortFoldedIsStable(t *testing.T) {
	s := []string{"b", "Foo", "a", "foo"}
	SortFolded(s)
	assert.Equal(t, []string{"a", "b", "Foo", "foo"}, s)
}
