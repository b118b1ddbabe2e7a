package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/catalog"
	"github.com/azdren/dvm/internal/install"
)

var installCmd = &cobra.Command{
	Use:   "install <version>",
	Short: "Install a release",
	Long: `Download and install a released version into its own directory under
the dvm root. The version token is either "latest" or an exact bare
version string.

Examples:
  dvm install latest
  dvm install 2.0.0`,
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

		asset, err := catalog.SelectAsset(rel, host)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		mgr := install.NewManager(cfg, host)
		if err := mgr.Acquire(context.Background(), rel, asset); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Println("Ok")
	},
}

func init() {
	rootCmd.AddCommand(installCmd)
}
