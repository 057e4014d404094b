package config

import (
	"fmt"
	"strings"

	"github.com/spf13/cast"
)

// LanguageVersion is a template language version
type LanguageVersion struct {
	Major int
	Minor int
}

var (
	Version6_0 = LanguageVersion{Major: 6, Minor: 0}
	Version7_0 = LanguageVersion{Major: 7, Minor: 0}
	Version8_0 = LanguageVersion{Major: 8, Minor: 0}
	// Latest is the version used when none is configured.
	Latest = Version8_0
)

// ParseLanguageVersion parses "8", "8.0" or "latest"
func ParseLanguageVersion(text string) (LanguageVersion, error) {
	text = strings.TrimSpace(text)
	if text == "" || strings.EqualFold(text, "latest") {
		return Latest, nil
	}

	majorText, minorText, hasMinor := strings.Cut(text, ".")
	major, err := cast.ToIntE(majorText)
	if err != nil || major < 0 {
		return LanguageVersion{}, fmt.Errorf("invalid language version %q", text)
	}
	minor := 0
	if hasMinor {
		minor, err = cast.ToIntE(minorText)
		if err != nil || minor < 0 {
			return LanguageVersion{}, fmt.Errorf("invalid language version %q", text)
		}
	}
	return LanguageVersion{Major: major, Minor: minor}, nil
}

// Less reports whether v is older than other
func (v LanguageVersion) Less(other LanguageVersion) bool {
	if v.Major != other.Major {
		return v.Major < other.Major
	}
	return v.Minor < other.Minor
}

func (v LanguageVersion) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// UnmarshalYAML accepts the version as a string or number
func (v *LanguageVersion) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var raw interface{}
	if err := unmarshal(&raw); err != nil {
		return err
	}
	text, err := cast.ToStringE(raw)
	if err != nil {
		return fmt.Errorf("invalid language version: %w", err)
	}
	parsed, err := ParseLanguageVersion(text)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
