package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/catalog"
	"github.com/azdren/dvm/internal/install"
)

var defaultCmd = &cobra.Command{
	Use:   "default <version>",
	Short: "Make an installed version the default",
	Long: `Point the bin alias at an installed version. The version must be
installed already; default never installs anything itself.

Examples:
  dvm default 2.0.0
  dvm default latest`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		store := newStore()
		refreshCatalog(store)

		releases, err := store.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		rel, err := catalog.Resolve(args[0], releases)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		mgr := install.NewManager(cfg, host)
		if err := mgr.SetDefault(rel.Version()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Now using deno %s by default\n", rel.Version())
	},
}

func init() {
	rootCmd.AddCommand(defaultCmd)
}
