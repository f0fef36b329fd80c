package installer

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/railforge-dev/railforge/internal/task"
)

// versionToken matches the first semver-looking token in tool output,
// e.g. "Bundler version 2.4.10" → "2.4.10".
var versionToken = regexp.MustCompile(`\d+\.\d+(\.\d+)?`)

// ParseToolVersion extracts the version number from a tool's --version
// output.
func ParseToolVersion(output string) (string, error) {
	v := versionToken.FindString(output)
	if v == "" {
		return "", fmt.Errorf("no version number in %q", strings.TrimSpace(output))
	}
	return v, nil
}

// MeetsMinimum reports whether version is at least minimum. Handles "v"
// prefix tolerance (strips a leading "v" before parsing).
func MeetsMinimum(version, minimum string) (bool, error) {
	v, err := parseSemver(version)
	if err != nil {
		return false, fmt.Errorf("parsing version %q: %w", version, err)
	}
	m, err := parseSemver(minimum)
	if err != nil {
		return false, fmt.Errorf("parsing minimum %q: %w", minimum, err)
	}
	return v.Compare(m) >= 0, nil
}

// CheckVersion runs `<name> --version` and reports whether the installed
// tool meets the minimum. The tool being absent or too old is an error
// the caller surfaces before attempting an install.
func CheckVersion(ctx *task.Context, name, minimum string) error {
	res := Run(ctx, name, "--version")
	if !res.OK {
		return fmt.Errorf("%s --version: %s", name, strings.TrimSpace(res.Output))
	}

	v, err := ParseToolVersion(res.Output)
	if err != nil {
		return fmt.Errorf("%s --version: %w", name, err)
	}

	ok, err := MeetsMinimum(v, minimum)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %s is older than required %s", name, v, minimum)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(version, "v"))
}
