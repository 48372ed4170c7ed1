package plugin

import (
	"github.com/sourcegraph/conc/iter"
)

// Paths transforms every path with p, preserving order. Paths are processed
// concurrently; plugins must be safe for concurrent use.
func Paths(p Plugin, paths []string) []string {
	return iter.Map(paths, func(path *string) string {
		return p.Path(*path)
	})
}

// Separator returns the separator p's options select, or def.
func Separator(p Plugin, def string) string {
	if sep := OptionsOf(p).Separator; sep != "" {
		return sep
	}
	return def
}
