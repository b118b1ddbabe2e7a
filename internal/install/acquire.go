package install

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/azdren/dvm/internal/catalog"
)

// Acquire downloads the asset for a resolved release and installs it:
// download to a temp file, extract into a staging directory, mark the
// extracted files executable, then rename the staging directory into
// place. The version directory only ever appears fully populated.
//
// There is no retry and no cleanup of the staging directory on failure;
// the error names the failed step and the partial state is left for the
// next attempt or manual inspection.
func (m *Manager) Acquire(ctx context.Context, rel catalog.Release, asset catalog.Asset) error {
	version := rel.Version()
	logrus.Debugf("acquiring %s from %s", version, asset.DownloadURL)

	archive, err := m.download(ctx, asset)
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(archive) }()

	staging := m.Config.StagingPath(version)
	if err := os.MkdirAll(staging, 0755); err != nil {
		return fmt.Errorf("create staging directory: %w", err)
	}

	if err := extractZip(archive, staging); err != nil {
		return fmt.Errorf("extract %s: %w", asset.Name, err)
	}

	if err := markExecutables(staging); err != nil {
		return err
	}

	dest := m.Config.VersionPath(version)
	// A leftover directory from an earlier half-install would block the
	// rename; it was never visible as installed, so replace it.
	if err := os.RemoveAll(dest); err != nil {
		return fmt.Errorf("clear version directory: %w", err)
	}
	if err := os.Rename(staging, dest); err != nil {
		return fmt.Errorf("finalize install: %w", err)
	}
	return nil
}

// download fetches the asset to a temp file in the root directory and
// returns its path. Single attempt; failures surface once.
func (m *Manager) download(ctx context.Context, asset catalog.Asset) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, asset.DownloadURL, nil)
	if err != nil {
		return "", fmt.Errorf("build download request: %w", err)
	}

	client := &http.Client{Timeout: 30 * time.Minute}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download %s: %w", asset.Name, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download %s: HTTP %d", asset.Name, resp.StatusCode)
	}

	tmp, err := os.CreateTemp(m.Config.RootPath, "download-*.zip")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = tmp.Close() }()

	if err := copyWithProgress(tmp, resp.Body, resp.ContentLength); err != nil {
		_ = os.Remove(tmp.Name())
		return "", fmt.Errorf("download %s: %w", asset.Name, err)
	}
	return tmp.Name(), nil
}

// markExecutables chmods every regular file directly inside dir to
// 0755. Failures do not stop the pass; they are aggregated so one bad
// file reports alongside the rest.
func markExecutables(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("scan extracted files: %w", err)
	}

	var errs *multierror.Error
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		if err := os.Chmod(path, 0755); err != nil {
			errs = multierror.Append(errs, fmt.Errorf("chmod %s: %w", entry.Name(), err))
		}
	}
	return errs.ErrorOrNil()
}
