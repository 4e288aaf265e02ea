// Package rollup applies a rendered template to a target project.
//
// Every file of the rendered tree is routed to a strategy by the
// template's scaraplate.yaml. The strategy merges it with the target's
// copy, and the result replaces the target file with the template file's
// permission bits. Files are processed concurrently and every failure is
// reported, not just the first.
package rollup
