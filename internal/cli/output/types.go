package output

// CheckDiagnostic is one finding in machine-readable check output.
type CheckDiagnostic struct {
	RuleID      string `json:"rule_id"`
	Severity    string `json:"severity"`
	Message     string `json:"message"`
	Line        int    `json:"line"`
	Column      int    `json:"column"`
	AutoFixable bool   `json:"auto_fixable,omitempty"`
}

// CheckFileResult groups findings per file.
type CheckFileResult struct {
	Path        string            `json:"path"`
	Fatal       bool              `json:"fatal,omitempty"`
	Diagnostics []CheckDiagnostic `json:"diagnostics"`
}

// CheckSummary aggregates a check run.
type CheckSummary struct {
	FilesChecked int `json:"files_checked"`
	TotalIssues  int `json:"total_issues"`
	Errors       int `json:"errors"`
	Warnings     int `json:"warnings"`
	Info         int `json:"info"`
	Hints        int `json:"hints"`
	FatalFiles   int `json:"fatal_files"`
}

// CheckOutput is the JSON shape of the check command.
type CheckOutput struct {
	Files   []CheckFileResult `json:"files"`
	Summary CheckSummary      `json:"summary"`
}

// FixFileResult is one file in machine-readable fix output.
type FixFileResult struct {
	Path      string `json:"path"`
	Changed   bool   `json:"changed"`
	Passes    int    `json:"passes,omitempty"`
	Remaining int    `json:"remaining"`
}

// FixOutput is the JSON shape of the fix command.
type FixOutput struct {
	Files        []FixFileResult `json:"files"`
	FilesChanged int             `json:"files_changed"`
}
