// Package fetch retrieves listing pages and bitstream archives over HTTP
// and unpacks the archives into per-vector directories.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"suitegen/internal/log"
)

const (
	userAgent = "suitegen/0.1"

	// Listing pages are small; archives can be hundreds of megabytes.
	maxListingBytes = 8 << 20
	maxArchiveBytes = 2 << 30
)

// Listing retrieves the directory listing page at url.
func Listing(ctx context.Context, url string) (string, error) {
	resp, err := get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxListingBytes))
	if err != nil {
		return "", fmt.Errorf("read listing %s: %w", url, err)
	}
	return string(body), nil
}

// Download fetches the archive at url into destDir, unpacks it next to the
// archive file, and returns the downloaded file's path. The archive itself
// is kept: its digest becomes the vector's source hash.
func Download(ctx context.Context, url, destDir string) (string, error) {
	if err := os.MkdirAll(destDir, 0o755); err != nil {
		return "", fmt.Errorf("create vector dir %s: %w", destDir, err)
	}
	dest := filepath.Join(destDir, url[strings.LastIndex(url, "/")+1:])

	resp, err := get(ctx, url)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	out, err := os.Create(dest)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", dest, err)
	}
	n, err := io.Copy(out, io.LimitReader(resp.Body, maxArchiveBytes))
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return "", fmt.Errorf("download %s: %w", url, err)
	}
	logger := log.WithComponent("fetch")
	logger.Debug().Str("url", url).Int64("bytes", n).Msg("downloaded archive")

	if err := Extract(dest, destDir); err != nil {
		return "", err
	}
	return dest, nil
}

func get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request %s: %w", url, err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: HTTP %d", url, resp.StatusCode)
	}
	return resp, nil
}
