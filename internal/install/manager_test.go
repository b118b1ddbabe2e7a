package install_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/azdren/dvm/internal/install"
	"github.com/azdren/dvm/internal/platform"
	"github.com/azdren/dvm/internal/testutil"
)

// Tests pin the linux platform so the expected executable name is
// stable regardless of the host; symlink tests skip on Windows the way
// the alias code switches to junctions there.
func setupManager(t *testing.T) (*install.Manager, *testutil.Sandbox) {
	t.Helper()
	sb := testutil.NewSandbox(t)
	return install.NewManager(sb.Config, platform.LinuxX64), sb
}

func TestIsInstalled(t *testing.T) {
	mgr, sb := setupManager(t)

	if mgr.IsInstalled("2.0.0") {
		t.Error("Nothing installed yet, IsInstalled should be false")
	}

	sb.CreateMockVersion("2.0.0", "deno")
	if !mgr.IsInstalled("2.0.0") {
		t.Error("Expected 2.0.0 to be installed")
	}

	// Removing the executable flips the result back.
	if err := os.Remove(filepath.Join(sb.Config.VersionPath("2.0.0"), "deno")); err != nil {
		t.Fatalf("Failed to remove mock executable: %v", err)
	}
	if mgr.IsInstalled("2.0.0") {
		t.Error("Directory without executable should not count as installed")
	}
}

func TestIsInstalledExecutableAsDirectory(t *testing.T) {
	mgr, sb := setupManager(t)

	// A directory named like the executable does not count.
	if err := os.MkdirAll(filepath.Join(sb.Config.VersionPath("2.0.0"), "deno"), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if mgr.IsInstalled("2.0.0") {
		t.Error("Executable-as-directory should not count as installed")
	}
}

func TestListInstalled(t *testing.T) {
	mgr, sb := setupManager(t)

	versions, err := mgr.ListInstalled()
	if err != nil {
		t.Fatalf("ListInstalled failed: %v", err)
	}
	if len(versions) != 0 {
		t.Errorf("Expected empty list, got %v", versions)
	}

	sb.CreateMockVersion("2.0.0", "deno")
	sb.CreateMockVersion("2.1.0", "deno")
	// A half-extracted directory without the executable is invisible.
	if err := os.MkdirAll(sb.Config.VersionPath("1.46.3"), 0755); err != nil {
		t.Fatalf("Failed to create empty version dir: %v", err)
	}
	// Staging directories and the catalog file are ignored by the scan.
	if err := os.MkdirAll(sb.Config.StagingPath("3.0.0"), 0755); err != nil {
		t.Fatalf("Failed to create staging dir: %v", err)
	}
	sb.WriteCatalog(`[]`)

	versions, err = mgr.ListInstalled()
	if err != nil {
		t.Fatalf("ListInstalled failed: %v", err)
	}
	if len(versions) != 2 {
		t.Fatalf("Expected 2 installed versions, got %v", versions)
	}

	installed := map[string]bool{}
	for _, v := range versions {
		installed[v] = true
	}
	if !installed["2.0.0"] || !installed["2.1.0"] {
		t.Errorf("Expected 2.0.0 and 2.1.0, got %v", versions)
	}
}

func TestSetDefaultAndGetDefault(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test runs on Unix only")
	}

	mgr, sb := setupManager(t)
	sb.CreateMockVersion("2.0.0", "deno")

	if err := mgr.SetDefault("2.0.0"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}

	if got := mgr.GetDefault(); got != "2.0.0" {
		t.Errorf("Expected default 2.0.0, got %q", got)
	}

	target, err := os.Readlink(sb.Config.AliasPath())
	if err != nil {
		t.Fatalf("Alias is not a symlink: %v", err)
	}
	if target != sb.Config.VersionPath("2.0.0") {
		t.Errorf("Alias points at %s, expected %s", target, sb.Config.VersionPath("2.0.0"))
	}
}

func TestSetDefaultSwitches(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test runs on Unix only")
	}

	mgr, sb := setupManager(t)
	sb.CreateMockVersion("2.0.0", "deno")
	sb.CreateMockVersion("2.1.0", "deno")

	if err := mgr.SetDefault("2.0.0"); err != nil {
		t.Fatalf("SetDefault 2.0.0 failed: %v", err)
	}
	if err := mgr.SetDefault("2.1.0"); err != nil {
		t.Fatalf("SetDefault 2.1.0 failed: %v", err)
	}

	if got := mgr.GetDefault(); got != "2.1.0" {
		t.Errorf("Expected default 2.1.0 after switch, got %q", got)
	}
}

func TestSetDefaultNotInstalled(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test runs on Unix only")
	}

	mgr, sb := setupManager(t)
	sb.CreateMockVersion("2.0.0", "deno")

	if err := mgr.SetDefault("2.0.0"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}

	err := mgr.SetDefault("9.9.9")
	if !errors.Is(err, install.ErrVersionNotInstalled) {
		t.Fatalf("Expected ErrVersionNotInstalled, got %v", err)
	}

	// The prior alias must be untouched by the failed activation.
	if got := mgr.GetDefault(); got != "2.0.0" {
		t.Errorf("Prior default was disturbed: got %q", got)
	}
}

func TestGetDefaultAbsent(t *testing.T) {
	mgr, _ := setupManager(t)

	if got := mgr.GetDefault(); got != "" {
		t.Errorf("Expected no default, got %q", got)
	}
}

func TestGetDefaultStaleAlias(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test runs on Unix only")
	}

	mgr, sb := setupManager(t)
	sb.CreateMockVersion("2.0.0", "deno")

	if err := mgr.SetDefault("2.0.0"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}

	// Remove the version out from under the alias.
	if err := os.RemoveAll(sb.Config.VersionPath("2.0.0")); err != nil {
		t.Fatalf("Failed to remove version dir: %v", err)
	}

	if got := mgr.GetDefault(); got != "" {
		t.Errorf("Stale alias should not report a default, got %q", got)
	}
}

func TestUninstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("Symlink test runs on Unix only")
	}

	mgr, sb := setupManager(t)
	sb.CreateMockVersion("2.0.0", "deno")

	if err := mgr.SetDefault("2.0.0"); err != nil {
		t.Fatalf("SetDefault failed: %v", err)
	}

	if err := mgr.Uninstall("2.0.0"); err != nil {
		t.Fatalf("Uninstall failed: %v", err)
	}

	sb.AssertNotExists(sb.Config.VersionPath("2.0.0"))
	sb.AssertNotExists(sb.Config.AliasPath())
}

func TestUninstallNotInstalled(t *testing.T) {
	mgr, _ := setupManager(t)

	if err := mgr.Uninstall("9.9.9"); !errors.Is(err, install.ErrVersionNotInstalled) {
		t.Errorf("Expected ErrVersionNotInstalled, got %v", err)
	}
}
