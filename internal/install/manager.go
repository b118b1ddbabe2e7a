// Package install tracks which versions are present under the dvm root,
// maintains the default-version alias, and acquires new versions.
//
// Installation state is never cached or recorded in a manifest: a
// version is installed iff its directory directly contains the product
// executable, re-checked on every call. The filesystem cannot drift
// from itself.
package install

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/azdren/dvm/internal/config"
	"github.com/azdren/dvm/internal/platform"
)

// ErrVersionNotInstalled is returned when an operation requires an
// installed version and the version directory does not qualify.
var ErrVersionNotInstalled = errors.New("version not installed")

// Manager is the single writer of per-version directories and the bin
// alias under the root.
type Manager struct {
	Config   *config.Config
	Platform platform.Platform
}

// NewManager creates a manager for the given root and host platform.
func NewManager(cfg *config.Config, p platform.Platform) *Manager {
	return &Manager{Config: cfg, Platform: p}
}

// IsInstalled reports whether the version directory directly contains a
// regular file named after the product executable. A directory without
// the executable, or the executable name taken by a directory, both
// count as not installed.
func (m *Manager) IsInstalled(version string) bool {
	exe := filepath.Join(m.Config.VersionPath(version), m.Platform.ExecutableName())
	info, err := os.Stat(exe)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}

// ListInstalled scans the immediate subdirectories of the root and
// returns the ones holding an installed version.
func (m *Manager) ListInstalled() ([]string, error) {
	entries, err := os.ReadDir(m.Config.RootPath)
	if os.IsNotExist(err) {
		return []string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan versions: %w", err)
	}

	aliasName := filepath.Base(m.Config.AliasPath())
	var versions []string
	for _, entry := range entries {
		// Skip files, staging directories, and the alias (a junction
		// shows up as a directory on Windows).
		if !entry.IsDir() || strings.HasPrefix(entry.Name(), ".") || entry.Name() == aliasName {
			continue
		}
		if m.IsInstalled(entry.Name()) {
			versions = append(versions, entry.Name())
		}
	}
	return versions, nil
}

// SetDefault points the bin alias at an installed version's directory.
// The existing alias is removed first and the new one created second,
// so a crash in between leaves no alias rather than a wrong one.
func (m *Manager) SetDefault(version string) error {
	if !m.IsInstalled(version) {
		return fmt.Errorf("%w: %s (run 'dvm install %s' first)", ErrVersionNotInstalled, version, version)
	}

	aliasPath := m.Config.AliasPath()
	removeLink(aliasPath)

	if err := createLink(aliasPath, m.Config.VersionPath(version)); err != nil {
		return err
	}
	return nil
}

// GetDefault returns the version the bin alias points at, or "" when
// the alias is absent or its target is no longer an installed version.
// A stale alias is never reported as a valid default.
func (m *Manager) GetDefault() string {
	target, err := os.Readlink(m.Config.AliasPath())
	if err != nil {
		return ""
	}

	version := filepath.Base(target)
	if !m.IsInstalled(version) {
		return ""
	}
	return version
}

// Uninstall removes a version directory. When the version is the
// current default the alias is removed first, so the alias never
// outlives its target.
func (m *Manager) Uninstall(version string) error {
	if !m.IsInstalled(version) {
		return fmt.Errorf("%w: %s", ErrVersionNotInstalled, version)
	}

	if m.GetDefault() == version {
		removeLink(m.Config.AliasPath())
	}

	if err := os.RemoveAll(m.Config.VersionPath(version)); err != nil {
		return fmt.Errorf("remove %s: %w", version, err)
	}
	return nil
}

// removeLink removes a symlink or junction, ignoring absence.
func removeLink(path string) {
	if _, err := os.Lstat(path); err != nil {
		return
	}
	if runtime.GOOS == "windows" {
		// rmdir removes the junction without touching its target.
		_ = exec.Command("cmd", "/c", "rmdir", path).Run()
	} else {
		_ = os.Remove(path)
	}
}

// createLink creates a symlink on Unix or a junction point on Windows
// (junctions need no elevated privileges).
func createLink(linkPath, targetPath string) error {
	if runtime.GOOS == "windows" {
		absLink, err := filepath.Abs(linkPath)
		if err != nil {
			return fmt.Errorf("resolve link path: %w", err)
		}
		absTarget, err := filepath.Abs(targetPath)
		if err != nil {
			return fmt.Errorf("resolve target path: %w", err)
		}

		absLink = strings.ReplaceAll(filepath.Clean(absLink), "/", "\\")
		absTarget = strings.ReplaceAll(filepath.Clean(absTarget), "/", "\\")

		cmd := exec.Command("cmd", "/c", "mklink", "/J", absLink, absTarget)
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("create junction: %w (output: %s)", err, string(output))
		}
		return nil
	}

	if err := os.Symlink(targetPath, linkPath); err != nil {
		return fmt.Errorf("create symlink: %w", err)
	}
	return nil
}
