package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLanguageVersion(t *testing.T) {
	t.Run("should parse versions", func(t *testing.T) {
		cases := map[string]LanguageVersion{
			"":       Latest,
			"latest": Latest,
			"7":      Version7_0,
			"7.0":    Version7_0,
			" 8.0 ":  Version8_0,
			"6.1":    {Major: 6, Minor: 1},
		}
		for text, expected := range cases {
			version, err := ParseLanguageVersion(text)
			require.NoError(t, err, text)
			assert.Equal(t, expected, version, text)
		}
	})

	t.Run("should reject malformed versions", func(t *testing.T) {
		for _, text := range []string{"seven", "7.x", "-1"} {
			_, err := ParseLanguageVersion(text)
			assert.Error(t, err, text)
		}
	})

	t.Run("should order versions", func(t *testing.T) {
		assert.True(t, Version6_0.Less(Version7_0))
		assert.True(t, LanguageVersion{Major: 7, Minor: 0}.Less(LanguageVersion{Major: 7, Minor: 1}))
		assert.False(t, Version8_0.Less(Version7_0))
		assert.Equal(t, "8.0", Version8_0.String())
	})
}

func TestCompilerConfig(t *testing.T) {
	t.Run("should default to the latest version with tooling references", func(t *testing.T) {
		cfg := NewCompilerConfig()
		assert.Equal(t, Latest, cfg.LanguageVersion)
		assert.True(t, cfg.ToolingReferences)
		assert.Equal(t, DefaultWorkers, cfg.Workers)
		assert.True(t, cfg.SupportsBindGetSet())
		assert.True(t, cfg.SupportsRenderModes())
	})

	t.Run("should gate features on the language version", func(t *testing.T) {
		cfg := NewCompilerConfig(WithLanguageVersion(Version7_0))
		assert.True(t, cfg.SupportsBindGetSet())
		assert.False(t, cfg.SupportsRenderModes())

		cfg = NewCompilerConfig(WithLanguageVersion(Version6_0))
		assert.False(t, cfg.SupportsBindGetSet())
	})
}

func TestFromLookup(t *testing.T) {
	lookup := func(env map[string]string) func(string) (string, bool) {
		return func(key string) (string, bool) {
			value, ok := env[key]
			return value, ok
		}
	}

	t.Run("should read every supported variable", func(t *testing.T) {
		opts, err := fromLookup(lookup(map[string]string{
			EnvLanguageVersion:   "7.0",
			EnvRootNamespace:     "App",
			EnvImports:           "App.Components, App.Shared,",
			EnvToolingReferences: "false",
			EnvWorkers:           "8",
		}))
		require.NoError(t, err)

		cfg := NewCompilerConfig(opts...)
		assert.Equal(t, Version7_0, cfg.LanguageVersion)
		assert.Equal(t, "App", cfg.RootNamespace)
		assert.Equal(t, []string{"App.Components", "App.Shared"}, cfg.DefaultImports)
		assert.False(t, cfg.ToolingReferences)
		assert.Equal(t, 8, cfg.Workers)
	})

	t.Run("should leave unset variables alone", func(t *testing.T) {
		opts, err := fromLookup(lookup(nil))
		require.NoError(t, err)
		assert.Empty(t, opts)
	})

	t.Run("should reject malformed values", func(t *testing.T) {
		for key, value := range map[string]string{
			EnvLanguageVersion:   "new",
			EnvToolingReferences: "perhaps",
			EnvWorkers:           "many",
		} {
			_, err := fromLookup(lookup(map[string]string{key: value}))
			assert.ErrorContains(t, err, key)
		}
	})
}

func TestLoadEnvFiles(t *testing.T) {
	t.Run("should load variables and ignore missing files", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, ".env")
		require.NoError(t, os.WriteFile(path, []byte("RZC_TEST_ROOT_NAMESPACE=FromDotenv\n"), 0o644))
		t.Cleanup(func() { os.Unsetenv("RZC_TEST_ROOT_NAMESPACE") })

		require.NoError(t, LoadEnvFiles(filepath.Join(dir, "missing.env"), path))
		assert.Equal(t, "FromDotenv", os.Getenv("RZC_TEST_ROOT_NAMESPACE"))
	})

	t.Run("should default the application environment", func(t *testing.T) {
		t.Setenv(EnvAppEnv, "")
		assert.Equal(t, "development", AppEnv())
		t.Setenv(EnvAppEnv, "production")
		assert.Equal(t, "production", AppEnv())
	})
}

func TestLoadProjectConfig(t *testing.T) {
	t.Run("should resolve paths against the project directory", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "rzc.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
languageVersion: 7
rootNamespace: App
imports: [App.Components]
toolingReferences: false
workers: 2
catalog: catalog.yaml
documents: [Pages/Index.yaml]
`), 0o644))

		project, err := LoadProjectConfig(path)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(dir, "catalog.yaml"), project.Catalog)
		assert.Equal(t, []string{filepath.Join(dir, "Pages/Index.yaml")}, project.Documents)

		cfg := NewCompilerConfig(project.Options()...)
		assert.Equal(t, Version7_0, cfg.LanguageVersion)
		assert.Equal(t, "App", cfg.RootNamespace)
		assert.Equal(t, []string{"App.Components"}, cfg.DefaultImports)
		assert.False(t, cfg.ToolingReferences)
		assert.Equal(t, 2, cfg.Workers)
	})

	t.Run("should report an invalid version", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "rzc.yaml")
		require.NoError(t, os.WriteFile(path, []byte("languageVersion: soon\n"), 0o644))

		_, err := LoadProjectConfig(path)
		assert.ErrorContains(t, err, "failed to parse project config")
	})
}
