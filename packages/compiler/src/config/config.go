package config

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	LanguageVersion LanguageVersion
	// RootNamespace is the namespace of documents that do not declare one.
	RootNamespace string
	// DefaultImports are namespaces visible to every document.
	DefaultImports []string
	// ToolingReferences keeps zero-effect helper nodes for property-reference tooling.
	ToolingReferences bool
	// Workers bounds the number of documents lowered concurrently.
	Workers int
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		LanguageVersion:   Latest,
		RootNamespace:     "",
		DefaultImports:    nil,
		ToolingReferences: true,
		Workers:           DefaultWorkers,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// DefaultWorkers is the concurrency used when none is configured
const DefaultWorkers = 4

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithLanguageVersion sets the template language version
func WithLanguageVersion(version LanguageVersion) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.LanguageVersion = version
	}
}

// WithRootNamespace sets the namespace used by documents without one
func WithRootNamespace(namespace string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.RootNamespace = namespace
	}
}

// WithDefaultImports adds namespaces visible to every document
func WithDefaultImports(namespaces ...string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.DefaultImports = append(c.DefaultImports, namespaces...)
	}
}

// WithToolingReferences sets whether tooling helper nodes are generated
func WithToolingReferences(enabled bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.ToolingReferences = enabled
	}
}

// WithWorkers sets the number of documents lowered concurrently
func WithWorkers(workers int) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if workers > 0 {
			c.Workers = workers
		}
	}
}

// SupportsBindGetSet reports whether `:get`, `:set` and `:after` bind modifiers are available
func (c *CompilerConfig) SupportsBindGetSet() bool {
	return !c.LanguageVersion.Less(Version7_0)
}

// SupportsRenderModes reports whether `@rendermode` and `@formname` are available
func (c *CompilerConfig) SupportsRenderModes() bool {
	return !c.LanguageVersion.Less(Version8_0)
}
