// Package config resolves the dvm root directory and the paths of
// everything persisted under it.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

const (
	defaultDirName  = ".dvm"
	defaultIndexURL = "https://api.github.com/repos/denoland/deno/releases"

	catalogFileName = "releases.json"
	aliasName       = "bin"
)

// Config holds the resolved settings for one invocation.
type Config struct {
	// RootPath is the directory owning all dvm state: the catalog
	// snapshot, one directory per installed version, and the bin alias.
	RootPath string
	// ReleasesURL is the release index endpoint.
	ReleasesURL string
}

// Load resolves configuration from the environment (DVM_DIR,
// DVM_RELEASES_URL) and ensures the root directory exists. A root that
// cannot be created is fatal to every command, so the error is returned
// rather than degraded around.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DVM")
	v.AutomaticEnv()
	v.SetDefault("releases_url", defaultIndexURL)

	root := v.GetString("dir")
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("determine home directory: %w", err)
		}
		root = filepath.Join(home, defaultDirName)
	}

	if err := os.MkdirAll(root, 0755); err != nil {
		return nil, fmt.Errorf("create dvm directory %s: %w", root, err)
	}

	return &Config{
		RootPath:    root,
		ReleasesURL: v.GetString("releases_url"),
	}, nil
}

// CatalogPath returns the path of the persisted release catalog snapshot.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.RootPath, catalogFileName)
}

// VersionPath returns the install directory for a bare version string.
func (c *Config) VersionPath(version string) string {
	return filepath.Join(c.RootPath, version)
}

// StagingPath returns the temporary extraction directory for a version.
// It lives beside the final directory so the completing rename stays on
// one filesystem.
func (c *Config) StagingPath(version string) string {
	return filepath.Join(c.RootPath, ".staging-"+version)
}

// AliasPath returns the path of the default-version alias.
func (c *Config) AliasPath() string {
	return filepath.Join(c.RootPath, aliasName)
}
