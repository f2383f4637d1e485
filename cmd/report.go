package cmd

import (
	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Build the executive summary for a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := requireWorkspace(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")

		s, err := openStore(path)
		if err != nil {
			return err
		}

		summary := report.NewBuilder(s.Taxonomy()).Build(s.Snapshot())
		return writeStructured(cmd.OutOrStdout(), format, summary)
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringP("file", "f", "", "Workspace YAML file")
	reportCmd.Flags().StringP("output", "o", "json", "Output format: json or yaml")
}
