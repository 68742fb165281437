package ingest

import (
	"path/filepath"
	"strings"

	"github.com/joseph-ayodele/po-reader/constants"
)

// IsHidden checks if a file or directory is hidden (starts with '.').
func IsHidden(path string) bool {
	base := filepath.Base(path)
	return base != "." && base != ".." && strings.HasPrefix(base, ".")
}

// extSet builds a lookup set from user-supplied extensions, falling back to
// the default snapshot set when none are given.
func extSet(includeExts []string) map[string]struct{} {
	exts := map[string]struct{}{}
	for _, e := range includeExts {
		if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
			exts[e] = struct{}{}
		}
	}
	if len(exts) == 0 {
		for e := range constants.AllowedExtensions {
			exts[e] = struct{}{}
		}
	}
	return exts
}

func matchesExt(path string, exts map[string]struct{}) bool {
	_, ok := exts[constants.NormalizeExt(filepath.Ext(path))]
	return ok
}
