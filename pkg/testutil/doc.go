// Package testutil provides helpers for tests that need real files on
// disk or throwaway git repositories.
package testutil
