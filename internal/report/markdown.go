package report

import (
	"fmt"
	"os"
	"strings"

	"suitegen/internal/verify"
)

func BuildMarkdown(r verify.Report) string {
	status := "PASS"
	if !r.Passed {
		status = "FAIL"
	}
	var b strings.Builder
	b.WriteString("# Conformance Suite Verification Report\n\n")
	b.WriteString(fmt.Sprintf("- Run: `%s`\n", r.RunID))
	b.WriteString(fmt.Sprintf("- Status: **%s**\n", status))
	b.WriteString(fmt.Sprintf("- Exit Code: `%d`\n", r.ExitCode))
	b.WriteString(fmt.Sprintf("- Manifests Checked: `%d`\n\n", r.ManifestCount))

	b.WriteString("## Checks\n\n")
	b.WriteString("| Manifest | Vector | Check | Passed | Message |\n")
	b.WriteString("|---|---|---|---:|---|\n")
	for _, c := range r.Checks {
		vector := c.Vector
		if vector == "" {
			vector = "-"
		}
		b.WriteString(fmt.Sprintf("| %s | %s | %s | %t | %s |\n",
			c.Manifest, vector, c.Check, c.Passed, strings.ReplaceAll(c.Message, "|", "\\|")))
	}

	if len(r.Violations) > 0 {
		b.WriteString("\n## Violations\n\n")
		for _, v := range r.Violations {
			b.WriteString("- " + v + "\n")
		}
	}

	if len(r.Suites) > 0 {
		b.WriteString("\n## Suites\n\n")
		b.WriteString("| Name | Codec | Vectors |\n")
		b.WriteString("|---|---|---:|\n")
		for _, s := range r.Suites {
			b.WriteString(fmt.Sprintf("| %s | %s | %d |\n", s.Name, s.Codec, s.VectorCount))
		}
	}

	return b.String()
}

func WriteMarkdown(path string, r verify.Report) error {
	return os.WriteFile(path, []byte(BuildMarkdown(r)), 0o644)
}
