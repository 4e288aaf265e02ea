// Package template describes the template a project is rolled up from:
// the commit it was taken at, where that commit can be browsed, and
// whether the template checkout has local modifications.
package template
