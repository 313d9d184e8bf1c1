// Package checksum parses reference checksums out of the loosely formatted
// text files shipped inside conformance archives.
package checksum

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// ErrChecksumNotFound reports a checksum file whose content yields no
// usable reference checksum.
var ErrChecksumNotFound = errors.New("checksum not found")

// Layout identifies the textual layout a checksum line matched.
type Layout int

const (
	LayoutUnknown Layout = iota
	// LayoutSumFile is the md5sum convention:
	//   158312a1a35ef4b20cb4aeee48549c03 *WP_A_Toshiba_3.bit
	// A bare digest with no filename also matches.
	LayoutSumFile
	// LayoutBSD is the BSD convention:
	//   MD5 (rec.yuv) = e5c4c20a8871aa446a344efb1755bcf9
	LayoutBSD
)

// ParseLine tries the known layouts against one line and returns the
// upper-cased digest together with the layout that matched. Layouts are
// independent matchers so new conventions slot in without touching the
// existing ones.
func ParseLine(line string) (string, Layout) {
	if digest, ok := matchBSD(line); ok {
		return strings.ToUpper(digest), LayoutBSD
	}
	if digest, ok := matchSumFile(line); ok {
		return strings.ToUpper(digest), LayoutSumFile
	}
	return "", LayoutUnknown
}

// ExtractFile scans the file from the top, skips comment ("#") and blank
// lines, and parses the first substantive line. Remaining lines are
// ignored: the files pair one digest with one decoded output, and trailing
// lines repeat metadata or list unrelated artifacts.
func ExtractFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open checksum file %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		digest, layout := ParseLine(line)
		if layout == LayoutUnknown {
			return "", fmt.Errorf("%w: unrecognized line %q in %s", ErrChecksumNotFound, line, path)
		}
		return digest, nil
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("read checksum file %s: %w", path, err)
	}
	return "", fmt.Errorf("%w: no substantive line in %s", ErrChecksumNotFound, path)
}

func matchBSD(line string) (string, bool) {
	i := strings.LastIndex(line, "=")
	if i < 0 {
		return "", false
	}
	digest := strings.TrimSpace(line[i+1:])
	if !isHex(digest) {
		return "", false
	}
	return digest, true
}

func matchSumFile(line string) (string, bool) {
	fields := strings.Fields(line)
	if len(fields) == 0 || !isHex(fields[0]) {
		return "", false
	}
	return fields[0], true
}

func isHex(s string) bool {
	if len(s) < 8 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}
