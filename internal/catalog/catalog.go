// Package catalog models the remote release index, its local snapshot,
// and the resolution of user version tokens against it.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/azdren/dvm/internal/platform"
)

const (
	// TokenLatest selects the newest known release.
	TokenLatest = "latest"

	// tagPrefix is the character every release tag begins with.
	tagPrefix = "v"
)

var (
	// ErrVersionNotFound is returned when no catalog entry matches a
	// resolved token.
	ErrVersionNotFound = errors.New("version not found")

	// ErrAssetNotFound is returned when a release carries no asset for
	// the host platform, which indicates an incomplete release.
	ErrAssetNotFound = errors.New("release asset not found")
)

// Asset is one downloadable file attached to a release.
type Asset struct {
	Name        string `json:"name"`
	DownloadURL string `json:"browser_download_url"`
}

// Release is one published version. The provider returns releases
// newest-first, so the first entry is the latest.
type Release struct {
	TagName string  `json:"tag_name"`
	Assets  []Asset `json:"assets"`
}

// Version returns the bare version string, the tag with its prefix
// stripped.
func (r Release) Version() string {
	return strings.TrimPrefix(r.TagName, tagPrefix)
}

// Resolve maps a user token to a concrete release. The token is either
// TokenLatest or a bare version string matched exactly against the
// prefixed tag; no range or partial matching is done.
func Resolve(token string, releases []Release) (Release, error) {
	if token == TokenLatest {
		if len(releases) == 0 {
			return Release{}, fmt.Errorf("%w: no releases known", ErrVersionNotFound)
		}
		return releases[0], nil
	}

	want := tagPrefix + token
	for _, rel := range releases {
		if rel.TagName == want {
			return rel, nil
		}
	}
	return Release{}, fmt.Errorf("%w: %s", ErrVersionNotFound, token)
}

// SelectAsset picks the release asset matching the platform's naming
// convention. Zero matches is an error; more than one match is an
// ambiguity in the release that is warned about, with the first match
// winning.
func SelectAsset(rel Release, p platform.Platform) (Asset, error) {
	want, err := p.AssetName()
	if err != nil {
		return Asset{}, err
	}

	var matches []Asset
	for _, asset := range rel.Assets {
		if asset.Name == want {
			matches = append(matches, asset)
		}
	}

	switch len(matches) {
	case 0:
		return Asset{}, fmt.Errorf("%w: %s has no %s", ErrAssetNotFound, rel.TagName, want)
	case 1:
		return matches[0], nil
	default:
		logrus.Warnf("release %s lists %d assets named %s; using the first", rel.TagName, len(matches), want)
		return matches[0], nil
	}
}
