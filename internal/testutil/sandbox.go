// Package testutil provides testing utilities for dvm
package testutil

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/azdren/dvm/internal/config"
)

// Sandbox represents a test environment that simulates a user's home
// directory with a dvm root inside it
type Sandbox struct {
	T       *testing.T
	RootDir string // Temp directory acting as "home"
	Config  *config.Config
}

// NewSandbox creates a new test sandbox with a temp dvm root
func NewSandbox(t *testing.T) *Sandbox {
	t.Helper()

	rootDir := t.TempDir() // Automatically cleaned up after test
	dvmDir := filepath.Join(rootDir, ".dvm")

	if err := os.MkdirAll(dvmDir, 0755); err != nil {
		t.Fatalf("Failed to create sandbox dvm directory: %v", err)
	}

	return &Sandbox{
		T:       t,
		RootDir: rootDir,
		Config: &config.Config{
			RootPath:    dvmDir,
			ReleasesURL: "http://127.0.0.1/releases",
		},
	}
}

// CreateMockVersion creates a fake installed version: a version
// directory directly containing an executable with the given name
func (sb *Sandbox) CreateMockVersion(version, exeName string) string {
	sb.T.Helper()

	versionDir := sb.Config.VersionPath(version)
	if err := os.MkdirAll(versionDir, 0755); err != nil {
		sb.T.Fatalf("Failed to create mock version dir: %v", err)
	}

	exePath := filepath.Join(versionDir, exeName)
	if err := os.WriteFile(exePath, []byte("mock"), 0755); err != nil {
		sb.T.Fatalf("Failed to create mock executable: %v", err)
	}

	return versionDir
}

// WriteCatalog writes raw bytes as the persisted catalog snapshot
func (sb *Sandbox) WriteCatalog(body string) {
	sb.T.Helper()

	if err := os.WriteFile(sb.Config.CatalogPath(), []byte(body), 0644); err != nil {
		sb.T.Fatalf("Failed to write catalog snapshot: %v", err)
	}
}

// BuildZip builds a zip archive containing the given name->content
// entries and returns its path
func (sb *Sandbox) BuildZip(name string, files map[string]string) string {
	sb.T.Helper()

	zipPath := filepath.Join(sb.RootDir, name)
	f, err := os.Create(zipPath)
	if err != nil {
		sb.T.Fatalf("Failed to create zip fixture: %v", err)
	}
	defer func() { _ = f.Close() }()

	w := zip.NewWriter(f)
	for entryName, content := range files {
		entry, err := w.Create(entryName)
		if err != nil {
			sb.T.Fatalf("Failed to add zip entry %s: %v", entryName, err)
		}
		if _, err := entry.Write([]byte(content)); err != nil {
			sb.T.Fatalf("Failed to write zip entry %s: %v", entryName, err)
		}
	}
	if err := w.Close(); err != nil {
		sb.T.Fatalf("Failed to finish zip fixture: %v", err)
	}

	return zipPath
}

// ReadZipBytes returns the raw bytes of a zip built with BuildZip
func (sb *Sandbox) ReadZipBytes(zipPath string) []byte {
	sb.T.Helper()

	data, err := os.ReadFile(zipPath)
	if err != nil {
		sb.T.Fatalf("Failed to read zip fixture: %v", err)
	}
	return data
}

// AssertFileExists fails the test if the file doesn't exist
func (sb *Sandbox) AssertFileExists(path string) {
	sb.T.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		sb.T.Errorf("Expected file to exist: %s", path)
	} else if err != nil {
		sb.T.Errorf("Error checking file %s: %v", path, err)
	}
}

// AssertNotExists fails the test if the path exists
func (sb *Sandbox) AssertNotExists(path string) {
	sb.T.Helper()
	if _, err := os.Lstat(path); err == nil {
		sb.T.Errorf("Expected path to not exist: %s", path)
	}
}
