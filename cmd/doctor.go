package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/azdren/dvm/internal/install"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose common issues with the dvm setup",
	Long: `Checks your dvm installation for common issues:
  - Root directory structure
  - Host platform support
  - Release catalog presence
  - Default alias validity
  - PATH configuration`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runDoctor()
	},
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor() {
	fmt.Println("Dvm Doctor")
	fmt.Println("==========")
	fmt.Println()

	issues := 0
	issues += checkRootDirectory()
	issues += checkCatalog()
	issues += checkAlias()
	issues += checkPath()

	fmt.Println()
	fmt.Println("Summary")
	fmt.Println("-------")
	if issues == 0 {
		fmt.Println("No issues found. Dvm is configured correctly.")
	} else {
		fmt.Printf("Found %d issue(s). See recommendations above.\n", issues)
	}
}

func checkRootDirectory() int {
	fmt.Println("Checking dvm directory...")

	info, err := os.Stat(cfg.RootPath)
	if err != nil {
		printFail("dvm directory not found at %s", cfg.RootPath)
		printHint("Run any dvm command to create it")
		return 1
	}
	if !info.IsDir() {
		printFail("%s exists but is not a directory", cfg.RootPath)
		return 1
	}

	printPass("dvm directory exists (%s)", cfg.RootPath)
	printPass("host platform %s is supported", host)
	return 0
}

func checkCatalog() int {
	fmt.Println("Checking release catalog...")

	if _, err := os.Stat(cfg.CatalogPath()); err != nil {
		printFail("no release catalog has been fetched")
		printHint("Run: dvm list")
		return 1
	}

	if _, err := newStore().Load(); err != nil {
		printFail("release catalog is unreadable: %v", err)
		printHint("Run: dvm list")
		return 1
	}

	printPass("release catalog present")
	return 0
}

func checkAlias() int {
	fmt.Println("Checking default alias...")

	mgr := install.NewManager(cfg, host)

	if _, err := os.Lstat(cfg.AliasPath()); err != nil {
		printPass("no default version set (this is fine)")
		printHint("Run: dvm default <version>")
		return 0
	}

	if version := mgr.GetDefault(); version != "" {
		printPass("default alias points at installed version %s", version)
		return 0
	}

	printFail("default alias exists but its target is not an installed version")
	printHint("Run: dvm default <version>")
	return 1
}

func checkPath() int {
	fmt.Println("Checking PATH...")

	aliasDir := cfg.AliasPath()
	for _, dir := range filepath.SplitList(os.Getenv("PATH")) {
		if dir == aliasDir {
			printPass("%s is on PATH", aliasDir)
			return 0
		}
	}

	printFail("%s is not on PATH", aliasDir)
	printHint("Add it to your shell profile, e.g. export PATH=\"%s:$PATH\"", aliasDir)
	return 1
}

func printPass(format string, args ...any) {
	fmt.Printf("  [ok]   %s\n", fmt.Sprintf(format, args...))
}

func printFail(format string, args ...any) {
	fmt.Printf("  [fail] %s\n", fmt.Sprintf(format, args...))
}

func printHint(format string, args ...any) {
	fmt.Printf("         %s\n", strings.TrimSpace(fmt.Sprintf(format, args...)))
}
