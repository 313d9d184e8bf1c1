// Package hash computes the MD5 digests used by conformance manifests.
// The conformance sites publish MD5 reference checksums, so MD5 is the
// manifest convention rather than a security choice.
package hash

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// FileMD5 returns the lowercase hex MD5 digest of the file contents.
func FileMD5(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open file %s: %w", path, err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash file %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// SumBytes returns the lowercase hex MD5 digest of raw.
func SumBytes(raw []byte) string {
	h := md5.Sum(raw)
	return hex.EncodeToString(h[:])
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
