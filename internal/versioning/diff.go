package versioning

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	modsemver "golang.org/x/mod/semver"
)

// ErrInvalidVersion is returned when a version string is not a semantic version.
var ErrInvalidVersion = errors.New("invalid version")

// Diff classifies the difference between two versions
type Diff string

const (
	DiffNone       Diff = "none"
	DiffPatch      Diff = "patch"
	DiffMinor      Diff = "minor"
	DiffMajor      Diff = "major"
	DiffPrerelease Diff = "prerelease"
)

// String returns the string representation of Diff
func (d Diff) String() string {
	return string(d)
}

// Notable reports whether the difference deserves a "what's new" page.
func (d Diff) Notable() bool {
	return d == DiffMajor || d == DiffMinor
}

// ParseVersion parses a semantic version (e.g., "1.2.3", "v1.2.3", "1.2.3-beta.1+build.5").
// All three numeric parts are required.
func ParseVersion(s string) (*semver.Version, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(s), "v")

	v, err := semver.StrictNewVersion(trimmed)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidVersion, s, err)
	}
	return v, nil
}

// Classify returns the most significant component that differs between a and b.
// The result does not depend on the argument order. Build metadata is ignored.
func Classify(a, b *semver.Version) Diff {
	switch {
	case a.Major() != b.Major():
		return DiffMajor
	case a.Minor() != b.Minor():
		return DiffMinor
	case a.Patch() != b.Patch():
		return DiffPatch
	case a.Prerelease() != b.Prerelease():
		return DiffPrerelease
	default:
		return DiffNone
	}
}

// ClassifyStrings parses both versions and classifies their difference.
func ClassifyStrings(a, b string) (Diff, error) {
	va, err := ParseVersion(a)
	if err != nil {
		return DiffNone, err
	}
	vb, err := ParseVersion(b)
	if err != nil {
		return DiffNone, err
	}
	return Classify(va, vb), nil
}

// MajorMinor reduces a version to "MAJOR.MINOR", dropping the patch number,
// prerelease and build metadata (e.g., "13.4.1-beta+5" becomes "13.4").
func MajorMinor(version string) (string, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return "", err
	}

	mm := modsemver.MajorMinor("v" + v.String())
	if mm == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidVersion, version)
	}
	return strings.TrimPrefix(mm, "v"), nil
}
