package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"suitegen/internal/config"
	"suitegen/internal/generate"
	"suitegen/internal/log"
	"suitegen/internal/report"
	"suitegen/internal/verify"
)

type cliError struct {
	code int
	err  error
}

func (e cliError) Error() string { return e.err.Error() }

func main() {
	log.Configure(log.Config{})
	root := newRootCommand()
	if err := root.Execute(); err != nil {
		var ce cliError
		if errors.As(err, &ce) {
			fmt.Fprintln(os.Stderr, ce.err)
			os.Exit(ce.code)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "suitegen",
		Short: "Codec conformance test suite generator",
	}
	root.AddCommand(newGenerateCommand())
	root.AddCommand(newVerifyCommand())
	root.AddCommand(newReportCommand())
	return root
}

func newGenerateCommand() *cobra.Command {
	var cfgPath, suiteName, resourcesDir, outDir string
	var skipDownload bool

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Scrape the conformance listings and write suite manifests",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := config.Default()
			if cfgPath != "" {
				cfg = config.Config{}
				if err := config.Load(cfgPath, &cfg); err != nil {
					return err
				}
			}

			// Suites are independent runs: one suite failing must not
			// keep the other from generating.
			ran := false
			var errs []error
			for _, s := range cfg.Suites {
				if suiteName != "" && s.SuiteName != suiteName {
					continue
				}
				ran = true
				g := generate.FromConfig(s)
				out, err := g.Run(cmd.Context(), generate.Options{
					ResourcesDir: resourcesDir,
					OutDir:       outDir,
					SkipDownload: skipDownload,
				})
				if err != nil {
					errs = append(errs, fmt.Errorf("suite %s: %w", s.SuiteName, err))
					continue
				}
				fmt.Println(out)
			}
			if !ran {
				return fmt.Errorf("no configured suite named %q", suiteName)
			}
			return errors.Join(errs...)
		},
	}
	cmd.Flags().StringVar(&cfgPath, "config", "", "suite definition YAML (defaults to the built-in ITU suites)")
	cmd.Flags().StringVar(&suiteName, "suite", "", "generate only the named suite")
	cmd.Flags().StringVar(&resourcesDir, "resources", "resources", "directory holding per-vector downloads")
	cmd.Flags().StringVar(&outDir, "out", ".", "directory receiving <suite_name>.json")
	cmd.Flags().BoolVar(&skipDownload, "skip-download", false, "resolve against already-downloaded resources")
	return cmd
}

func newVerifyCommand() *cobra.Command {
	var manifestPath, resourcesDir, schemaPath, format, outPath string

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Verify manifests: schema, completeness, and source digests",
		RunE: func(_ *cobra.Command, _ []string) error {
			r := verify.Run(verify.Options{
				ManifestPath: manifestPath,
				SchemaPath:   schemaPath,
				ResourcesDir: resourcesDir,
			})

			switch format {
			case "json":
				if outPath == "" {
					outPath = "verify.json"
				}
				if err := report.WriteJSON(outPath, r); err != nil {
					return err
				}
				fmt.Println(outPath)
			case "md":
				if outPath == "" {
					outPath = "verify.md"
				}
				if err := report.WriteMarkdown(outPath, r); err != nil {
					return err
				}
				fmt.Println(outPath)
			default:
				return fmt.Errorf("unsupported format %s", format)
			}

			if !r.Passed {
				return cliError{code: r.ExitCode, err: fmt.Errorf("verification failed")}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", ".", "manifest file or directory")
	cmd.Flags().StringVar(&resourcesDir, "resources", "", "resources directory for source-digest checks (empty skips them)")
	cmd.Flags().StringVar(&schemaPath, "schema", "schemas/v1/test_suite.schema.json", "manifest JSON Schema")
	cmd.Flags().StringVar(&format, "format", "json", "output format (json|md)")
	cmd.Flags().StringVar(&outPath, "out", "", "output report path")
	return cmd
}

func newReportCommand() *cobra.Command {
	var inPath, outPath string
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Generate markdown report from verify JSON",
		RunE: func(_ *cobra.Command, _ []string) error {
			if inPath == "" || outPath == "" {
				return fmt.Errorf("--in and --out are required")
			}
			raw, err := os.ReadFile(inPath)
			if err != nil {
				return err
			}
			var r verify.Report
			if err := json.Unmarshal(raw, &r); err != nil {
				return err
			}
			if err := report.WriteMarkdown(outPath, r); err != nil {
				return err
			}
			fmt.Println(outPath)
			return nil
		},
	}
	cmd.Flags().StringVar(&inPath, "in", "", "verify report json input")
	cmd.Flags().StringVar(&outPath, "out", "", "markdown output")
	return cmd
}
