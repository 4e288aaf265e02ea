// Package registry provides a generic, type-safe name registry used for
// strategy factories and git remote kinds. Built-in entries register
// themselves from init() functions.
package registry
