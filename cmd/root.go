package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/catalog"
	"github.com/azdren/dvm/internal/config"
	"github.com/azdren/dvm/internal/platform"
)

var (
	cfg  *config.Config
	host platform.Platform
)

// SetVersion sets the version string (called from main)
func SetVersion(v string) {
	rootCmd.Version = v
}

var rootCmd = &cobra.Command{
	Use:   "dvm",
	Short: "A version manager for the Deno runtime",
	Long: `Dvm installs released Deno versions side by side under ~/.dvm and
lets you pick one as the default via the bin symlink.

Examples:
  dvm list             # List known releases
  dvm install latest   # Install the newest release
  dvm install 2.0.0    # Install an exact version
  dvm default 2.0.0    # Make an installed version the default`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debug, _ := cmd.Flags().GetBool("debug"); debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func Execute() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	host, err = platform.Detect()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newStore builds the catalog store for the loaded config.
func newStore() *catalog.Store {
	return catalog.NewStore(cfg.CatalogPath(), cfg.ReleasesURL)
}

// refreshCatalog refreshes the snapshot, downgrading any failure to a
// warning: a stale or absent catalog degrades the command, it does not
// abort it.
func refreshCatalog(store *catalog.Store) {
	if err := store.Refresh(context.Background()); err != nil {
		logrus.Warnf("catalog refresh failed, using cached releases: %v", err)
	}
}

func init() {
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")
}
