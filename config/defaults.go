package config

// Built-in defaults
const (
	DefaultComponentsDir = "src/components"
	DefaultOutputFile    = "src/generated/componentRegistry.ts"
	DefaultRegistryType  = RegistryInversify
)

// Default returns the built-in configuration. Paths are relative and are
// anchored at the working directory by Load.
func Default() Config {
	return Config{
		ComponentsDir: DefaultComponentsDir,
		OutputFile:    DefaultOutputFile,
		FilePatterns: FilePatterns{
			Entry: FilePattern{
				Names:      []string{"index"},
				Extensions: []string{".tsx"},
			},
			Transform: FilePattern{
				Names:      []string{"transformer", "*.transformer"},
				Extensions: []string{".ts", ".tsx"},
			},
		},
		Registry: RegistryConfig{
			Type: DefaultRegistryType,
		},
	}
}
