// Package inidoc parses and serializes INI-style configuration files such
// as .pylintrc and setup.cfg.
//
// A Document is an ordered set of uniquely named sections, each an
// ordered mapping of lower-cased keys to string values. Parsing drops
// comments; Marshal writes a canonical form with sorted sections and
// keys, so a parse/marshal round trip preserves content but not layout.
package inidoc
