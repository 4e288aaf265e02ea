// Package filesystem holds the file operations rollup performs on top of
// an afero.Fs, so the same code runs against the OS and against
// in-memory filesystems in tests.
package filesystem
