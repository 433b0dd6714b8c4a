// Package util provides small generic helpers shared across contentgen:
// pointer helpers, blank-string defaults, slug and file-name shaping, and
// request identifiers.
package util
