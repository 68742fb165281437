package ingest

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/joseph-ayodele/po-reader/internal/common"
)

// ScanDirectory walks root and returns the snapshot files matching
// includeExts (json/txt when empty), sorted by path. Hidden files and
// directories are skipped when skipHidden is set. Unreadable entries are
// counted and logged, not fatal.
func ScanDirectory(ctx context.Context, root string, includeExts []string, skipHidden bool) ([]string, DirStats, error) {
	if strings.TrimSpace(root) == "" {
		return nil, DirStats{}, common.InvalidInputErrorf("root path is required")
	}
	exts := extSet(includeExts)

	var paths []string
	var stats DirStats

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Scanned++
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			slog.Warn("ingest.scan.unreadable", "path", path, "error", walkErr)
			stats.Failed++
			return nil // continue walking
		}
		// the root itself is never treated as hidden
		if skipHidden && path != root && IsHidden(path) {
			stats.Hidden++
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matchesExt(path, exts) {
			return nil
		}
		stats.Matched++
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return paths, stats, fmt.Errorf("walk: %w", err)
	}

	sort.Strings(paths)
	slog.Debug("ingest.scan.done", "root", root, "scanned", stats.Scanned, "matched", stats.Matched, "failed", stats.Failed)
	return paths, stats, nil
}

// ExpandPaths turns a mix of files and directories into a flat list of
// snapshot files. Files named explicitly are kept whatever their extension.
func ExpandPaths(ctx context.Context, args []string, skipHidden bool) ([]string, error) {
	var out []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, common.WrapError(err, "stat input")
		}
		if !info.IsDir() {
			out = append(out, arg)
			continue
		}
		paths, _, err := ScanDirectory(ctx, arg, nil, skipHidden)
		if err != nil {
			return nil, err
		}
		out = append(out, paths...)
	}
	return out, nil
}
