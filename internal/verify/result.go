package verify

const (
	ExitPass           = 0
	ExitMissing        = 10
	ExitSchemaFail     = 11
	ExitDigestMismatch = 12
	ExitIncomplete     = 13
)

type CheckResult struct {
	Manifest string `json:"manifest"`
	Vector   string `json:"vector,omitempty"`
	Check    string `json:"check"`
	Passed   bool   `json:"passed"`
	Message  string `json:"message"`
}

type SuiteSummary struct {
	Name        string `json:"name"`
	Codec       string `json:"codec"`
	VectorCount int    `json:"vector_count"`
}

type Report struct {
	RunID         string         `json:"run_id"`
	Passed        bool           `json:"passed"`
	ExitCode      int            `json:"exit_code"`
	ManifestCount int            `json:"manifest_count"`
	Checks        []CheckResult  `json:"checks"`
	Violations    []string       `json:"violations"`
	Suites        []SuiteSummary `json:"suites"`
}
