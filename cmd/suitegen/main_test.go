package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"suitegen/internal/report"
	"suitegen/internal/verify"
)

func repoRoot(t *testing.T) string {
	t.Helper()
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot resolve test file path")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(filename), "..", ".."))
}

func suiteSchema(t *testing.T) string {
	return filepath.Join(repoRoot(t), "schemas", "v1", "test_suite.schema.json")
}

func TestRootCommandWiring(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"generate", "verify", "report"} {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("missing subcommand %q: %v", name, err)
		}
	}
}

func TestGenerateCommand_UnknownSuite(t *testing.T) {
	cmd := newGenerateCommand()
	cmd.SetArgs([]string{"--suite", "NO-SUCH-SUITE", "--skip-download"})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error for unknown suite name")
	}
	if !strings.Contains(err.Error(), "no configured suite") {
		t.Errorf("error = %q", err)
	}
}

func TestGenerateCommand_WithConfigAndSkipDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, "/HEVC_v1") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<a href="/parent/">up</a><a href="/bits/VEC_A_1.zip">VEC_A_1.zip</a>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	vectorDir := filepath.Join(dir, "resources", "LOCAL-HEVC", "VEC_A_1")
	if err := os.MkdirAll(vectorDir, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(vectorDir, "VEC_A_1.zip"), []byte("archive"), 0o644)
	os.WriteFile(filepath.Join(vectorDir, "VEC_A_1.bit"), []byte("bits"), 0o644)
	os.WriteFile(filepath.Join(vectorDir, "VEC_A_1.yuv.md5"),
		[]byte("e5c4c20a8871aa446a344efb1755bcf9 *VEC_A_1.bit\n"), 0o644)

	cfgPath := filepath.Join(dir, "suites.yaml")
	cfg := `suites:
  - name: HEVC_v1
    suite_name: LOCAL-HEVC
    codec: H.265
    description: local mirror
    base: ` + srv.URL + `
    site: ` + srv.URL + `/draft_conformance/
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newGenerateCommand()
	cmd.SetArgs([]string{
		"--config", cfgPath,
		"--resources", filepath.Join(dir, "resources"),
		"--out", dir,
		"--skip-download",
	})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("generate command failed: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "LOCAL-HEVC.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "E5C4C20A8871AA446A344EFB1755BCF9") {
		t.Errorf("manifest missing extracted checksum: %s", raw)
	}
}

func TestGenerateCommand_SuiteFailureDoesNotBlockOthers(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasSuffix(r.URL.Path, "/BROKEN_v1") {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`<a href="/parent/">up</a><a href="/bits/VEC_B_1.zip">VEC_B_1.zip</a>`))
	}))
	defer srv.Close()

	dir := t.TempDir()
	vectorDir := filepath.Join(dir, "resources", "GOOD-SUITE", "VEC_B_1")
	if err := os.MkdirAll(vectorDir, 0o755); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(filepath.Join(vectorDir, "VEC_B_1.zip"), []byte("archive"), 0o644)
	os.WriteFile(filepath.Join(vectorDir, "VEC_B_1.bit"), []byte("bits"), 0o644)
	os.WriteFile(filepath.Join(vectorDir, "VEC_B_1.yuv.md5"),
		[]byte("e5c4c20a8871aa446a344efb1755bcf9 *VEC_B_1.bit\n"), 0o644)

	cfgPath := filepath.Join(dir, "suites.yaml")
	cfg := `suites:
  - name: BROKEN_v1
    suite_name: BROKEN-SUITE
    codec: H.265
    base: ` + srv.URL + `
    site: ` + srv.URL + `/draft_conformance/
  - name: GOOD_v1
    suite_name: GOOD-SUITE
    codec: H.265
    base: ` + srv.URL + `
    site: ` + srv.URL + `/draft_conformance/
`
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	cmd := newGenerateCommand()
	cmd.SetArgs([]string{
		"--config", cfgPath,
		"--resources", filepath.Join(dir, "resources"),
		"--out", dir,
		"--skip-download",
	})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected error from the broken suite")
	}
	if !strings.Contains(err.Error(), "BROKEN-SUITE") {
		t.Errorf("error should name the failed suite: %v", err)
	}
	if _, statErr := os.Stat(filepath.Join(dir, "GOOD-SUITE.json")); statErr != nil {
		t.Errorf("healthy suite manifest missing: %v", statErr)
	}
}

func TestVerifyCommand_FailureCarriesExitCode(t *testing.T) {
	tmp := t.TempDir()
	cmd := newVerifyCommand()
	cmd.SetArgs([]string{
		"--manifest", tmp, // empty directory: nothing to verify
		"--schema", suiteSchema(t),
		"--format", "json",
		"--out", filepath.Join(tmp, "verify.json"),
	})
	err := cmd.Execute()
	if err == nil {
		t.Fatal("expected verification failure")
	}
	var ce cliError
	if !errors.As(err, &ce) {
		t.Fatalf("expected cliError, got %T: %v", err, err)
	}
	if ce.code != verify.ExitMissing {
		t.Errorf("exit code = %d, want %d", ce.code, verify.ExitMissing)
	}
}

func TestVerifyCommand_UnsupportedFormat(t *testing.T) {
	cmd := newVerifyCommand()
	cmd.SetArgs([]string{"--format", "xml"})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Fatalf("err = %v", err)
	}
}

func TestReportCommand(t *testing.T) {
	tmp := t.TempDir()
	in := filepath.Join(tmp, "verify.json")
	out := filepath.Join(tmp, "verify.md")
	r := verify.Report{RunID: "run-1", Passed: true, ExitCode: 0, ManifestCount: 2}
	if err := report.WriteJSON(in, r); err != nil {
		t.Fatal(err)
	}

	cmd := newReportCommand()
	cmd.SetArgs([]string{"--in", in, "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("report command failed: %v", err)
	}

	raw, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "PASS") || !strings.Contains(string(raw), "run-1") {
		t.Errorf("markdown report missing fields:\n%s", raw)
	}
}

func TestReportCommand_RequiresPaths(t *testing.T) {
	cmd := newReportCommand()
	cmd.SetArgs([]string{})
	if err := cmd.Execute(); err == nil || !strings.Contains(err.Error(), "required") {
		t.Fatalf("err = %v", err)
	}
}
