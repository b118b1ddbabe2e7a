package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/install"
)

var uninstallCmd = &cobra.Command{
	Use:   "uninstall <version>",
	Short: "Remove an installed version",
	Long: `Remove an installed version's directory. If the version is the
current default, the bin alias is cleared first.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		mgr := install.NewManager(cfg, host)
		if err := mgr.Uninstall(args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Uninstalled deno %s\n", args[0])
	},
}

func init() {
	rootCmd.AddCommand(uninstallCmd)
}
