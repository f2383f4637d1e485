package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/actions"
	"github.com/user/govaudit/pkg/engine"
)

// auditOutput is the structured form of the audit command
type auditOutput struct {
	Audit           engine.AuditResult    `json:"audit" yaml:"audit"`
	GovernanceScore int                   `json:"governanceScore" yaml:"governance_score"`
	FrictionCost    float64               `json:"frictionCost" yaml:"friction_cost"`
	Exposure        []engine.ExposurePath `json:"exposure" yaml:"exposure"`
	Diff            *engine.AuditDiff     `json:"diff,omitempty" yaml:"diff,omitempty"`
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Audit a workspace inventory against the threat model",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := requireWorkspace(cmd)
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("output")
		savePath, _ := cmd.Flags().GetString("save")
		baselinePath, _ := cmd.Flags().GetString("baseline")

		s, err := openStore(path)
		if err != nil {
			return err
		}

		out := auditOutput{
			Audit:           s.AuditResult(),
			GovernanceScore: s.GovernanceScore(),
			FrictionCost:    s.FrictionCost(),
			Exposure:        engine.TraceExposure(s.Tools(), s.Connections()),
		}
		if baselinePath != "" {
			baseline, err := engine.LoadAudit(baselinePath)
			if err != nil {
				return err
			}
			diff := engine.CompareAudits(baseline, out.Audit)
			out.Diff = &diff
		}
		if savePath != "" {
			if err := engine.SaveAudit(savePath, out.Audit); err != nil {
				return err
			}
		}

		w := cmd.OutOrStdout()
		if format != "text" {
			return writeStructured(w, format, out)
		}

		fmt.Fprintln(w, titleStyle.Render("AI Governance Audit"))
		fmt.Fprintf(w, "\nGovernance score: %s   Pattern: %s\n",
			scoreStyle(out.GovernanceScore).Render(fmt.Sprintf("%d/100", out.GovernanceScore)), out.Audit.Pattern)
		fmt.Fprintf(w, "Friction cost:    $%.2f/month\n\n", out.FrictionCost)

		fmt.Fprintln(w, headingStyle.Render(fmt.Sprintf("Vulnerabilities (%s)", severityCounts(out.Audit.Vulnerabilities))))
		if len(out.Audit.Vulnerabilities) == 0 {
			fmt.Fprintln(w, subtleStyle.Render("  none"))
		}
		for _, v := range out.Audit.Vulnerabilities {
			fmt.Fprintf(w, "  %s %s %s\n", severityBadge(v.Severity), v.ID, v.Description)
		}

		if len(out.Audit.Mitigations) > 0 {
			fmt.Fprintln(w, "\n"+headingStyle.Render("Mitigations"))
			for _, m := range out.Audit.Mitigations {
				fmt.Fprintf(w, "  [%s] %s %s\n", m.Status, m.ID, m.Title)
			}
		}

		fmt.Fprintln(w, "\n"+headingStyle.Render("Exposure"))
		for _, line := range strings.Split(actions.FormatExposure(s.Tools(), s.Connections()), "\n") {
			fmt.Fprintln(w, "  "+line)
		}

		if out.Diff != nil {
			fmt.Fprintln(w, "\n"+headingStyle.Render("Compared with "+baselinePath))
			fmt.Fprint(w, actions.FormatDiff(*out.Diff))
		}
		if savePath != "" {
			fmt.Fprintln(w, subtleStyle.Render("\nSnapshot saved to "+savePath))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.Flags().StringP("file", "f", "", "Workspace YAML file")
	auditCmd.Flags().StringP("output", "o", "text", "Output format: text, json or yaml")
	auditCmd.Flags().String("save", "", "Save the audit result as a snapshot")
	auditCmd.Flags().String("baseline", "", "Compare with a previously saved snapshot")
}
