// Package verify checks generated manifests: schema validity, vector
// completeness, and source digests against the downloaded resources.
package verify

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"suitegen/internal/hash"
	"suitegen/internal/suite"
	"suitegen/pkg/schema"
)

type Options struct {
	// ManifestPath is a manifest file or a directory of *.json manifests.
	ManifestPath string
	// SchemaPath points at the test suite JSON Schema.
	SchemaPath string
	// ResourcesDir enables source-digest checks when non-empty.
	ResourcesDir string
}

// Run verifies every manifest under opts.ManifestPath and aggregates the
// outcome into one report. It never returns an error: failures are report
// entries with distinct exit codes, worst one wins.
func Run(opts Options) Report {
	report := Report{RunID: uuid.NewString(), Passed: true, ExitCode: ExitPass}

	paths, err := manifestPaths(opts.ManifestPath)
	if err != nil {
		report.addFailure(opts.ManifestPath, "", "manifest_read", ExitMissing, err)
		return report
	}
	if len(paths) == 0 {
		report.addFailure(opts.ManifestPath, "", "manifest_read", ExitMissing,
			fmt.Errorf("no manifest files found"))
		return report
	}
	report.ManifestCount = len(paths)

	for _, p := range paths {
		if errs, err := schema.ValidateFile(opts.SchemaPath, p); err != nil {
			report.addFailure(p, "", "schema", ExitSchemaFail, err)
			continue
		} else if len(errs) > 0 {
			report.addFailure(p, "", "schema", ExitSchemaFail,
				fmt.Errorf("manifest schema invalid: %v", errs))
			continue
		}
		report.Checks = append(report.Checks, CheckResult{Manifest: p, Check: "schema", Passed: true, Message: "ok"})

		ts, err := suite.ReadJSON(p)
		if err != nil {
			report.addFailure(p, "", "manifest_read", ExitMissing, err)
			continue
		}

		ok := true
		for _, tv := range ts.TestVectors {
			if tv.Input == "" || tv.Result == "" {
				report.addFailure(p, tv.Name, "complete", ExitIncomplete,
					fmt.Errorf("vector %s has unresolved input or result", tv.Name))
				ok = false
				continue
			}
			if opts.ResourcesDir != "" {
				if err := verifySourceDigest(opts.ResourcesDir, ts, tv); err != nil {
					report.addFailure(p, tv.Name, "source_digest", ExitDigestMismatch, err)
					ok = false
				}
			}
		}
		if ok {
			report.Checks = append(report.Checks, CheckResult{Manifest: p, Check: "vectors", Passed: true, Message: "ok"})
		}

		report.Suites = append(report.Suites, SuiteSummary{
			Name:        ts.Name,
			Codec:       string(ts.Codec),
			VectorCount: len(ts.TestVectors),
		})
	}
	return report
}

// verifySourceDigest re-hashes the downloaded source file and compares it
// with the recorded source_hash.
func verifySourceDigest(resourcesDir string, ts *suite.TestSuite, tv *suite.TestVector) error {
	name := tv.Source[strings.LastIndex(tv.Source, "/")+1:]
	path := filepath.Join(resourcesDir, ts.Name, tv.Name, name)
	if !hash.FileExists(path) {
		return fmt.Errorf("source file missing: %s", path)
	}
	digest, err := hash.FileMD5(path)
	if err != nil {
		return err
	}
	if !strings.EqualFold(digest, tv.SourceHash) {
		return fmt.Errorf("source digest mismatch for %s: manifest %s, file %s", tv.Name, tv.SourceHash, digest)
	}
	return nil
}

func (r *Report) addFailure(manifest, vector, check string, exit int, err error) {
	r.Passed = false
	if r.ExitCode == ExitPass || exit > r.ExitCode {
		r.ExitCode = exit
	}
	msg := err.Error()
	r.Checks = append(r.Checks, CheckResult{Manifest: manifest, Vector: vector, Check: check, Passed: false, Message: msg})
	r.Violations = append(r.Violations, fmt.Sprintf("%s: %s", check, msg))
}

func manifestPaths(source string) ([]string, error) {
	fi, err := os.Stat(source)
	if err != nil {
		return nil, err
	}
	if !fi.IsDir() {
		return []string{source}, nil
	}
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0)
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		files = append(files, filepath.Join(source, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
