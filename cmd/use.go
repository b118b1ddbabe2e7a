package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var useCmd = &cobra.Command{
	Use:   "use <version>",
	Short: "Select a version for the current session",
	Long: `Select a version for the current shell session only.

Session-scoped selection is not persisted yet; use 'dvm default' to
change the active version.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		// TODO: emit shell-specific PATH snippets so `eval "$(dvm use X)"`
		// can rewire the session without touching the bin alias.
		fmt.Printf("Would use deno %s for this session\n", args[0])
		fmt.Println("Session selection is not persisted; run 'dvm default' to switch versions")
	},
}

func init() {
	rootCmd.AddCommand(useCmd)
}
