// Package config loads the two kinds of configuration scaraplate reads.
//
// Template configuration lives in scaraplate.yaml at the root of a
// template and decides which strategy handles each rendered file.
// Application settings tune the CLI itself and are layered from embedded
// defaults, the user's config file and SCARAPLATE_* environment
// variables.
package config
