package cmd

import (
	"bufio"
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/user/govaudit/pkg/actions"
)

var interactiveCmd = &cobra.Command{
	Use:   "interactive",
	Short: "Start an interactive assessment session",
	RunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("file")

		s, err := openStore(path)
		if err != nil {
			return err
		}
		registry := actions.NewStoreRegistry(s)

		ctx := context.Background()
		in := bufio.NewScanner(cmd.InOrStdin())
		w := cmd.OutOrStdout()

		fmt.Fprintln(w, "\n---------------------------------------------------------")
		fmt.Fprintln(w, "govaudit session ready.")
		fmt.Fprintln(w, `Example: add-tool id=gpt name="GPT-4" layer=1`)
		fmt.Fprintln(w, "Example: audit")
		fmt.Fprintln(w, "Type 'help' for actions, 'quit' or 'exit' to stop.")
		fmt.Fprintln(w, "---------------------------------------------------------")

		for {
			fmt.Fprint(w, "\n> ")
			if !in.Scan() {
				break
			}
			input := in.Text()
			if input == "quit" || input == "exit" {
				break
			}
			if input == "" {
				continue
			}

			resp, err := registry.Dispatch(ctx, input, func(msg string) {
				fmt.Fprintf(w, "[Progress]: %s\n", msg)
			})
			if err != nil {
				fmt.Fprintf(w, "Error: %v\n", err)
				continue
			}
			fmt.Fprintln(w, resp)
		}
		return in.Err()
	},
}

func init() {
	rootCmd.AddCommand(interactiveCmd)
	interactiveCmd.Flags().StringP("file", "f", "", "Workspace YAML file to start from")
}
