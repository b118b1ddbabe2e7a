package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/install"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List known releases",
	Long: `Refresh the release catalog and print every known version, newest
first. Installed versions are annotated.

Examples:
  dvm list`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		store := newStore()
		refreshCatalog(store)

		releases, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		mgr := install.NewManager(cfg, host)
		for _, rel := range releases {
			if mgr.IsInstalled(rel.Version()) {
				fmt.Printf("%s (installed)\n", rel.Version())
			} else {
				fmt.Println(rel.Version())
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
