package output

import (
	"io"

	"github.com/owenrumney/go-sarif/v2/sarif"

	"github.com/pgstyle/pgstyle/internal/runner"
	"github.com/pgstyle/pgstyle/pkg/lint"
)

const toolName = "pgstyle"
const toolInfoURI = "https://github.com/pgstyle/pgstyle"

// WriteSARIF renders check results as a SARIF 2.1.0 report, the format
// code-scanning UIs ingest.
func WriteSARIF(w io.Writer, results []runner.FileResult) error {
	report, err := sarif.New(sarif.Version210)
	if err != nil {
		return err
	}

	run := sarif.NewRunWithInformationURI(toolName, toolInfoURI)
	for _, info := range lint.AllInfo() {
		run.AddRule(info.ID).
			WithDescription(info.Description).
			WithDefaultConfiguration(&sarif.ReportingConfiguration{
				Level: sarifLevel(info.DefaultSeverity),
			})
	}
	run.AddRule(runner.TokenizerRuleID).
		WithDescription("File could not be tokenized.").
		WithDefaultConfiguration(&sarif.ReportingConfiguration{Level: "error"})

	for _, res := range results {
		for _, d := range res.Diagnostics {
			location := sarif.NewLocation().WithPhysicalLocation(
				sarif.NewPhysicalLocation().
					WithArtifactLocation(sarif.NewArtifactLocation().WithUri(res.Path)).
					WithRegion(sarif.NewRegion().
						WithStartLine(d.Pos.Line).
						WithStartColumn(d.Pos.Column)),
			)
			run.AddResult(sarif.NewRuleResult(d.RuleID).
				WithMessage(sarif.NewTextMessage(d.Message)).
				WithLevel(sarifLevel(d.Severity)).
				WithLocations([]*sarif.Location{location}))
		}
	}

	report.AddRun(run)
	return report.PrettyWrite(w)
}

func sarifLevel(sev lint.Severity) string {
	switch sev {
	case lint.SeverityError:
		return "error"
	case lint.SeverityWarning:
		return "warning"
	default:
		return "note"
	}
}
