package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/pgstyle/pgstyle/internal/cli/output"
)

// versionInfo is the JSON shape of the version command.
type versionInfo struct {
	Version   string `json:"version"`
	BuildDate string `json:"build_date"`
	GitCommit string `json:"git_commit"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// NewVersionCommand creates the version command.
func NewVersionCommand(version, buildDate, gitCommit string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  `Display pgstyle version and build information.`,
		Run: func(cmd *cobra.Command, _ []string) {
			info := versionInfo{
				Version:   version,
				BuildDate: buildDate,
				GitCommit: gitCommit,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
			}

			if format == "json" {
				r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.ModeJSON)
				_ = r.JSON(info)
				return
			}

			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "pgstyle v%s\n", info.Version)
			_, _ = fmt.Fprintf(out, "  commit:   %s\n", info.GitCommit)
			_, _ = fmt.Fprintf(out, "  built:    %s\n", info.BuildDate)
			_, _ = fmt.Fprintf(out, "  go:       %s\n", info.GoVersion)
			_, _ = fmt.Fprintf(out, "  platform: %s\n", info.Platform)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "Output format: text, json")
	return cmd
}
