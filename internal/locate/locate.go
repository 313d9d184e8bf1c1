// Package locate finds artifact files inside extracted per-vector
// directories. Archives name their contents loosely, so matching is
// suffix-based on the full path with substring exclusions.
package locate

import (
	"os"
	"path/filepath"
	"strings"
)

// Extension sets used by the conformance archives. Suffixes are literal:
// "yuv.md5" must not collide with ".bin.md5", which belongs to a different
// convention and is excluded outright.
var (
	BitstreamExts = []string{".bin", ".bit", ".264", ".h264", ".jvc", ".jsv", ".jvt", ".avc", ".26l"}

	ChecksumExts     = []string{"yuv.md5", ".md5", "md5.txt"}
	ChecksumExcludes = []string{"__MACOSX", ".bin.md5", "bit.md5"}

	RawExts = []string{".yuv", ".qcif"}
)

// FindByExtension walks root depth-first, considering the files of each
// directory before descending into its subdirectories, and returns the
// first file whose path ends with one of exts and contains none of the
// exclude substrings. Returns "" when the subtree holds no match.
func FindByExtension(root string, exts, excludes []string) string {
	entries, err := os.ReadDir(root)
	if err != nil {
		return ""
	}

	var dirs []string
	for _, e := range entries {
		path := filepath.Join(root, e.Name())
		if e.IsDir() {
			dirs = append(dirs, path)
			continue
		}
		if excluded(path, excludes) {
			continue
		}
		if hasAnySuffix(path, exts) {
			return path
		}
	}
	for _, dir := range dirs {
		if path := FindByExtension(dir, exts, excludes); path != "" {
			return path
		}
	}
	return ""
}

func excluded(path string, excludes []string) bool {
	for _, excl := range excludes {
		if strings.Contains(path, excl) {
			return true
		}
	}
	return false
}

func hasAnySuffix(path string, exts []string) bool {
	for _, ext := range exts {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}
