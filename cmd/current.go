package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/install"
)

var currentCmd = &cobra.Command{
	Use:   "current",
	Short: "Show the default version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		mgr := install.NewManager(cfg, host)
		if version := mgr.GetDefault(); version != "" {
			fmt.Println(version)
		} else {
			fmt.Println("(none)")
		}
	},
}

func init() {
	rootCmd.AddCommand(currentCmd)
}
