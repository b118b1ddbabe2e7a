// Package platform enumerates the host platforms dvm can install for
// and maps each one to its release asset naming convention.
package platform

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrUnsupported is returned when the host platform has no release
// asset convention. There is no fallback asset.
var ErrUnsupported = errors.New("unsupported platform")

// Platform identifies one supported host platform.
type Platform string

const (
	LinuxX64   Platform = "linux-x64"
	WindowsX64 Platform = "windows-x64"
	MacX64     Platform = "macos-x64"
)

// ExeName is the executable filename that marks a version directory as
// installed.
const ExeName = "deno"

// assetNames maps each platform to the exact asset filename published
// for it. Lookup is exact-match; anything else is an incomplete release.
var assetNames = map[Platform]string{
	LinuxX64:   "deno-x86_64-unknown-linux-gnu.zip",
	WindowsX64: "deno-x86_64-pc-windows-msvc.zip",
	MacX64:     "deno-x86_64-apple-darwin.zip",
}

// Detect maps the running host to a Platform, or ErrUnsupported when
// the GOOS/GOARCH pair is outside the supported set.
func Detect() (Platform, error) {
	return detect(runtime.GOOS, runtime.GOARCH)
}

func detect(goos, goarch string) (Platform, error) {
	if goarch != "amd64" {
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, goos, goarch)
	}
	switch goos {
	case "linux":
		return LinuxX64, nil
	case "windows":
		return WindowsX64, nil
	case "darwin":
		return MacX64, nil
	default:
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupported, goos, goarch)
	}
}

// AssetName returns the expected asset filename for a platform.
func (p Platform) AssetName() (string, error) {
	name, ok := assetNames[p]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, p)
	}
	return name, nil
}

// ExecutableName returns the filename of the product executable on the
// given platform.
func (p Platform) ExecutableName() string {
	if p == WindowsX64 {
		return ExeName + ".exe"
	}
	return ExeName
}

// String returns the platform identifier.
func (p Platform) String() string {
	return string(p)
}
