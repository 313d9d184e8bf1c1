// Package generate drives one suite generation run: scrape the listing,
// build the placeholder manifest, download the archives, resolve each
// vector's bitstream and reference checksum, and persist the manifest.
package generate

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"suitegen/internal/checksum"
	"suitegen/internal/config"
	"suitegen/internal/fetch"
	"suitegen/internal/hash"
	"suitegen/internal/locate"
	"suitegen/internal/log"
	"suitegen/internal/scrape"
	"suitegen/internal/suite"
)

// ErrArtifactNotFound reports that no file in a vector's directory matches
// the required extension set. It aborts the suite's whole run: a manifest
// with unresolved vectors is worse than no manifest.
var ErrArtifactNotFound = errors.New("artifact not found")

// Options hold the filesystem layout of one run.
type Options struct {
	// ResourcesDir holds resources/<suite>/<vector>/ trees.
	ResourcesDir string
	// OutDir receives <suite_name>.json.
	OutDir string
	// SkipDownload resolves against already-downloaded resources.
	SkipDownload bool
}

// Generator produces one test suite from one conformance listing.
type Generator struct {
	Name        string
	SuiteName   string
	Codec       suite.Codec
	Description string
	Base        string
	Site        string
}

// FromConfig builds a Generator from a configured suite entry.
func FromConfig(s config.Suite) Generator {
	return Generator{
		Name:        s.Name,
		SuiteName:   s.SuiteName,
		Codec:       suite.Codec(s.Codec),
		Description: s.Description,
		Base:        s.Base,
		Site:        s.Site,
	}
}

// Run executes the full generation sequence and returns the manifest path.
// Any resolution failure aborts the run before the manifest is written.
func (g Generator) Run(ctx context.Context, opts Options) (string, error) {
	logger := log.WithComponent("generate")
	listingURL := g.Site + g.Name

	logger.Info().Str("suite", g.SuiteName).Str("url", listingURL).Msg("fetch bitstream listing")
	page, err := fetch.Listing(ctx, listingURL)
	if err != nil {
		return "", err
	}

	outPath := filepath.Join(opts.OutDir, g.SuiteName+".json")
	ts := &suite.TestSuite{
		Path:        outPath,
		Name:        g.SuiteName,
		Codec:       g.Codec,
		Description: g.Description,
	}
	for _, url := range vectorLinks(scrape.Links(g.Base, strings.NewReader(page))) {
		name := vectorName(url)
		ts.TestVectors = append(ts.TestVectors, &suite.TestVector{
			Name:   name,
			Source: url,
			Input:  name + ".bin",
		})
	}

	if !opts.SkipDownload {
		for _, tv := range ts.TestVectors {
			logger.Info().Str("vector", tv.Name).Msg("download bitstream archive")
			if _, err := fetch.Download(ctx, tv.Source, g.vectorDir(opts, tv)); err != nil {
				return "", err
			}
		}
	}

	for _, tv := range ts.TestVectors {
		if err := g.resolve(tv, g.vectorDir(opts, tv)); err != nil {
			return "", err
		}
	}

	if err := ts.WriteJSON(outPath); err != nil {
		return "", err
	}
	logger.Info().Str("path", outPath).Int("vectors", len(ts.TestVectors)).Msg("wrote test suite manifest")
	return outPath, nil
}

func (g Generator) vectorDir(opts Options, tv *suite.TestVector) string {
	return filepath.Join(opts.ResourcesDir, g.SuiteName, tv.Name)
}

// vectorLinks drops the listing rows that are not test vectors. Site
// knowledge: the first anchor on the ITU listings is always a non-vector
// row (parent directory or readme), and the AVC listing additionally
// carries a 00readme_H file.
func vectorLinks(links []string) []string {
	if len(links) > 0 {
		links = links[1:]
	}
	out := make([]string, 0, len(links))
	for _, link := range links {
		if isReadme(link) {
			continue
		}
		out = append(out, link)
	}
	return out
}

// isReadme reports whether the link points at a listing readme rather
// than a bitstream archive.
func isReadme(link string) bool {
	return strings.Contains(link, "00readme_H")
}

// vectorName derives the vector identifier: final path segment, stripped
// from the first "." onward.
func vectorName(url string) string {
	name := url[strings.LastIndex(url, "/")+1:]
	if i := strings.Index(name, "."); i >= 0 {
		name = name[:i]
	}
	return name
}

// resolve locates the vector's bitstream, hashes the downloaded source
// file, and fills the expected result per the codec's checksum policy.
func (g Generator) resolve(tv *suite.TestVector, dir string) error {
	input := locate.FindByExtension(dir, locate.BitstreamExts, nil)
	if input == "" {
		return fmt.Errorf("%w: no bitstream in %s", ErrArtifactNotFound, dir)
	}
	// The manifest stores the bitstream path relative to the vector
	// directory so the resources tree can be relocated.
	rel, err := filepath.Rel(dir, input)
	if err != nil {
		return fmt.Errorf("relativize input %s: %w", input, err)
	}
	tv.Input = rel

	source := filepath.Join(dir, tv.Source[strings.LastIndex(tv.Source, "/")+1:])
	sourceHash, err := hash.FileMD5(source)
	if err != nil {
		return err
	}
	tv.SourceHash = sourceHash

	switch g.Codec {
	case suite.H264:
		return fillResultRaw(tv, dir)
	case suite.H265:
		return fillResultText(tv, dir)
	default:
		return fmt.Errorf("unsupported codec %q", g.Codec)
	}
}

// fillResultRaw hashes the decoded reference output itself. The AVC
// archives ship the raw YUV instead of a checksum file.
func fillResultRaw(tv *suite.TestVector, dir string) error {
	raw := locate.FindByExtension(dir, locate.RawExts, nil)
	if raw == "" {
		return fmt.Errorf("%w: no raw reference output in %s", ErrArtifactNotFound, dir)
	}
	result, err := hash.FileMD5(raw)
	if err != nil {
		return err
	}
	tv.Result = result
	return nil
}

// fillResultText parses the checksum out of the vector's checksum file.
func fillResultText(tv *suite.TestVector, dir string) error {
	file := locate.FindByExtension(dir, locate.ChecksumExts, locate.ChecksumExcludes)
	if file == "" {
		return fmt.Errorf("%w: no checksum file in %s", checksum.ErrChecksumNotFound, dir)
	}
	result, err := checksum.ExtractFile(file)
	if err != nil {
		return err
	}
	tv.Result = result
	return nil
}
