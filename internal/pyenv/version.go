// SPDX-License-Identifier: MPL-2.0

package pyenv

import (
	"fmt"
	"strconv"
	"strings"
)

// Version is a parsed interpreter version.
type Version struct {
	Major int
	Minor int
	Patch int
}

// ParseVersionOutput parses the output of `python --version`, which has the
// form "Python X.Y.Z" (pre-release builds may append a suffix to the patch
// component, e.g. "3.13.0rc1").
func ParseVersionOutput(out string) (Version, error) {
	fields := strings.Fields(strings.TrimSpace(out))
	if len(fields) < 2 || fields[0] != "Python" {
		return Version{}, fmt.Errorf("unrecognized version output %q", strings.TrimSpace(out))
	}
	return ParseVersion(fields[1])
}

// ParseVersion parses an "X.Y" or "X.Y.Z" version string.
func ParseVersion(s string) (Version, error) {
	parts := strings.SplitN(s, ".", 3)
	if len(parts) < 2 {
		return Version{}, fmt.Errorf("invalid version %q", s)
	}

	major, err := strconv.Atoi(parts[0])
	if err != nil {
		return Version{}, fmt.Errorf("invalid major version in %q", s)
	}
	minor, err := strconv.Atoi(parts[1])
	if err != nil {
		return Version{}, fmt.Errorf("invalid minor version in %q", s)
	}

	v := Version{Major: major, Minor: minor}
	if len(parts) == 3 {
		// Tolerate pre-release suffixes: take the leading digits only.
		v.Patch = leadingInt(parts[2])
	}
	return v, nil
}

// Satisfies reports whether the version meets the minimum threshold:
// equal major with minor at or above the required minor, or any greater
// major.
func (v Version) Satisfies(minMajor, minMinor int) bool {
	if v.Major > minMajor {
		return true
	}
	return v.Major == minMajor && v.Minor >= minMinor
}

// String returns "X.Y.Z".
func (v Version) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

func leadingInt(s string) int {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
