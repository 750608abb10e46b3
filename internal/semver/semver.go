// Package semver holds the project's persisted semantic version.
package semver

import (
	"fmt"
	"strconv"
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// Version is a major.minor.patch triple.
type Version struct {
	Major int `yaml:"major" toml:"major" json:"major"`
	Minor int `yaml:"minor" toml:"minor" json:"minor"`
	Patch int `yaml:"patch" toml:"patch" json:"patch"`
}

// Initial is the version used when nothing has been persisted yet.
var Initial = Version{Major: 0, Minor: 1, Patch: 0}

// Bump selects which component to increment.
type Bump int

const (
	BumpNone Bump = iota - 1
	BumpPatch
	BumpMajor
	BumpMinor
)

func (b Bump) String() string {
	switch b {
	case BumpPatch:
		return "patch"
	case BumpMajor:
		return "major"
	case BumpMinor:
		return "minor"
	default:
		return "none"
	}
}

// ParseBump accepts the numeric command-line convention (0=patch, 1=major,
// 2=minor) or the component name. An empty argument means no bump.
func ParseBump(arg string) (Bump, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "":
		return BumpNone, nil
	case "0", "patch":
		return BumpPatch, nil
	case "1", "major":
		return BumpMajor, nil
	case "2", "minor":
		return BumpMinor, nil
	default:
		return BumpNone, fmt.Errorf("invalid bump %q (want 0=patch, 1=major, 2=minor)", arg)
	}
}

// Bump returns v with the selected component incremented and the lower
// components reset.
func (v Version) Bump(b Bump) Version {
	switch b {
	case BumpMajor:
		return Version{Major: v.Major + 1}
	case BumpMinor:
		return Version{Major: v.Major, Minor: v.Minor + 1}
	case BumpPatch:
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
	default:
		return v
	}
}

// String returns "major.minor.patch".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Canonical returns the "v"-prefixed form.
func (v Version) Canonical() string {
	return "v" + v.String()
}

// Validate rejects negative components.
func (v Version) Validate() error {
	if v.Major < 0 || v.Minor < 0 || v.Patch < 0 {
		return fmt.Errorf("negative version component in %d.%d.%d", v.Major, v.Minor, v.Patch)
	}
	return nil
}

// Parse reads "1.2.3" or "v1.2.3". Pre-release and build suffixes are rejected.
func Parse(s string) (Version, error) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "v") {
		s = "v" + s
	}
	if !modsemver.IsValid(s) || modsemver.Canonical(s) != s || modsemver.Prerelease(s) != "" {
		return Version{}, fmt.Errorf("invalid version %q (want major.minor.patch)", strings.TrimPrefix(s, "v"))
	}

	parts := strings.Split(strings.TrimPrefix(s, "v"), ".")
	var nums [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q: %w", p, err)
		}
		nums[i] = n
	}
	return Version{Major: nums[0], Minor: nums[1], Patch: nums[2]}, nil
}

// Compare returns -1, 0 or +1.
func Compare(a, b Version) int {
	return modsemver.Compare(a.Canonical(), b.Canonical())
}
