package cmd

import (
	"fmt"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/roadmap"
)

var roadmapCmd = &cobra.Command{
	Use:   "roadmap",
	Short: "Plan the phased remediation roadmap for a workspace",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := requireWorkspace(cmd)
		if err != nil {
			return err
		}
		raw, _ := cmd.Flags().GetBool("raw")
		deliverables, _ := cmd.Flags().GetBool("deliverables")
		width, _ := cmd.Flags().GetInt("width")

		s, err := openStore(path)
		if err != nil {
			return err
		}

		phases := s.Roadmap()
		md := roadmap.Markdown(phases)
		if deliverables {
			for _, p := range phases {
				for _, it := range p.Items {
					md += "\n---\n\n" + it.Deliverable.Content + "\n"
				}
			}
		}

		w := cmd.OutOrStdout()
		if raw {
			fmt.Fprint(w, md)
			return nil
		}

		renderer, err := glamour.NewTermRenderer(
			glamour.WithStylePath("dracula"),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return fmt.Errorf("failed to create markdown renderer: %w", err)
		}
		out, err := renderer.Render(md)
		if err != nil {
			return fmt.Errorf("failed to render roadmap: %w", err)
		}
		fmt.Fprint(w, out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roadmapCmd)
	roadmapCmd.Flags().StringP("file", "f", "", "Workspace YAML file")
	roadmapCmd.Flags().Bool("raw", false, "Print markdown without terminal styling")
	roadmapCmd.Flags().Bool("deliverables", false, "Append every deliverable document")
	roadmapCmd.Flags().Int("width", 100, "Word wrap width")
}
