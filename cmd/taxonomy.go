package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/taxonomy"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Show the seven-layer threat model and the mitigation library",
	Run: func(cmd *cobra.Command, args []string) {
		tax := taxonomy.Default()
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, titleStyle.Render("Threat Model"))
		for _, l := range tax.Layers() {
			fmt.Fprintf(w, "\n%s %s\n", headingStyle.Render(fmt.Sprintf("L%d %s", l.ID, l.Name)), subtleStyle.Render("("+string(l.Tag)+")"))
			fmt.Fprintf(w, "  %s\n", l.Description)
			for _, th := range l.Threats {
				fmt.Fprintf(w, "  - %s %s: %s\n", th.ID, th.Title, th.Description)
			}
		}

		fmt.Fprintln(w, "\n"+titleStyle.Render("Mitigation Library"))
		for _, m := range tax.Mitigations() {
			fmt.Fprintf(w, "  %s %s %s\n", headingStyle.Render(m.ID), m.Title, subtleStyle.Render(fmt.Sprintf("layers %v", m.Layers)))
		}
	},
}

func init() {
	rootCmd.AddCommand(taxonomyCmd)
}
