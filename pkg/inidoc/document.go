package inidoc

import (
	"sort"
	"strings"
)

// Section is an ordered mapping of key to value. Keys are unique within a
// section and keep their insertion order.
type Section struct {
	name   string
	keys   []string
	values map[string]string
}

// NewSection returns an empty section with the given name.
func NewSection(name string) *Section {
	return &Section{name: name, values: make(map[string]string)}
}

// Name returns the section name.
func (s *Section) Name() string { return s.name }

// Keys returns the keys in insertion order.
func (s *Section) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

// Len returns the number of keys.
func (s *Section) Len() int { return len(s.keys) }

// Get returns the value stored under key.
func (s *Section) Get(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Has reports whether key is present.
func (s *Section) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set stores value under key, appending the key if it is new.
func (s *Section) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Clone returns a deep copy of the section under a new name.
func (s *Section) Clone(name string) *Section {
	c := NewSection(name)
	for _, k := range s.keys {
		c.Set(k, s.values[k])
	}
	return c
}

// Document is an ordered set of uniquely named sections.
type Document struct {
	order    []string
	sections map[string]*Section
}

// New returns an empty document.
func New() *Document {
	return &Document{sections: make(map[string]*Section)}
}

// Sections returns the section names in insertion order.
func (d *Document) Sections() []string {
	out := make([]string, len(d.order))
	copy(out, d.order)
	return out
}

// HasSection reports whether the named section exists.
func (d *Document) HasSection(name string) bool {
	_, ok := d.sections[name]
	return ok
}

// Section returns the named section, or nil when it does not exist.
func (d *Document) Section(name string) *Section {
	return d.sections[name]
}

// EnsureSection returns the named section, creating it empty if needed.
func (d *Document) EnsureSection(name string) *Section {
	if s, ok := d.sections[name]; ok {
		return s
	}
	s := NewSection(name)
	d.order = append(d.order, name)
	d.sections[name] = s
	return s
}

// PutSection stores s under its name, replacing any existing section of
// that name wholesale.
func (d *Document) PutSection(s *Section) {
	if _, ok := d.sections[s.name]; !ok {
		d.order = append(d.order, s.name)
	}
	d.sections[s.name] = s
}

// Get returns the value of key in section. Absence of either the section
// or the key is reported through ok.
func (d *Document) Get(section, key string) (value string, ok bool) {
	s, found := d.sections[section]
	if !found {
		return "", false
	}
	return s.Get(key)
}

// Set stores a value, creating the section when it does not exist.
func (d *Document) Set(section, key, value string) {
	d.EnsureSection(section).Set(key, value)
}

// Marshal serializes the document in canonical form: sections and keys
// sorted, `key = value` pairs, continuation lines of multi-line values
// indented with a tab, one blank line between sections and a single
// trailing newline. Comments are never emitted.
func (d *Document) Marshal() []byte {
	names := d.Sections()
	sort.Strings(names)

	var b strings.Builder
	for i, name := range names {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("[" + name + "]\n")

		s := d.sections[name]
		keys := s.Keys()
		sort.Strings(keys)
		for _, k := range keys {
			writeEntry(&b, k, s.values[k])
		}
	}
	return []byte(b.String())
}

func writeEntry(b *strings.Builder, key, value string) {
	lines := strings.Split(value, "\n")

	b.WriteString(key + " =")
	if lines[0] != "" {
		b.WriteString(" " + lines[0])
	}
	b.WriteByte('\n')

	for _, line := range lines[1:] {
		if line != "" {
			b.WriteString("\t" + line)
		}
		b.WriteByte('\n')
	}
}
