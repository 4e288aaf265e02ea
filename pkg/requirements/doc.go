// Package requirements handles the dependency lists found in setup.cfg
// fields such as install_requires: splitting a field into specifiers,
// extracting the normalized package name of a specifier, merging two
// lists by name and writing a list back in field format.
package requirements
