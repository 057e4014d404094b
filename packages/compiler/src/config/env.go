package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

// Environment variables read by FromEnv
const (
	EnvLanguageVersion   = "RZC_LANGUAGE_VERSION"
	EnvRootNamespace     = "RZC_ROOT_NAMESPACE"
	EnvImports           = "RZC_IMPORTS"
	EnvToolingReferences = "RZC_TOOLING_REFERENCES"
	EnvWorkers           = "RZC_WORKERS"
	EnvAppEnv            = "APP_ENV"
)

// LoadEnvFiles loads .env style files into the process environment. Missing files are ignored.
func LoadEnvFiles(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("failed to load %s: %w", path, err)
		}
	}
	return nil
}

// FromEnv returns the compiler options set through environment variables
func FromEnv() ([]CompilerConfigOption, error) {
	return fromLookup(os.LookupEnv)
}

// AppEnv returns the application environment, "development" when unset
func AppEnv() string {
	if env := os.Getenv(EnvAppEnv); env != "" {
		return env
	}
	return "development"
}

func fromLookup(lookup func(string) (string, bool)) ([]CompilerConfigOption, error) {
	var opts []CompilerConfigOption

	if value, ok := lookup(EnvLanguageVersion); ok {
		version, err := ParseLanguageVersion(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvLanguageVersion, err)
		}
		opts = append(opts, WithLanguageVersion(version))
	}
	if value, ok := lookup(EnvRootNamespace); ok && value != "" {
		opts = append(opts, WithRootNamespace(value))
	}
	if value, ok := lookup(EnvImports); ok && value != "" {
		var imports []string
		for _, ns := range strings.Split(value, ",") {
			if ns = strings.TrimSpace(ns); ns != "" {
				imports = append(imports, ns)
			}
		}
		opts = append(opts, WithDefaultImports(imports...))
	}
	if value, ok := lookup(EnvToolingReferences); ok {
		enabled, err := cast.ToBoolE(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvToolingReferences, err)
		}
		opts = append(opts, WithToolingReferences(enabled))
	}
	if value, ok := lookup(EnvWorkers); ok {
		workers, err := cast.ToIntE(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", EnvWorkers, err)
		}
		opts = append(opts, WithWorkers(workers))
	}
	return opts, nil
}
