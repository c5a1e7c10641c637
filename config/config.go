// Package config resolves the code generator's settings from built-in
// defaults, a discovered config file, DYESTHETICS_* environment variables
// and explicit overrides, in that order.
package config

// Config is the fully typed generator configuration
type Config struct {
	ComponentsDir string         `mapstructure:"componentsDir" toml:"componentsDir" json:"componentsDir" yaml:"componentsDir"`
	OutputFile    string         `mapstructure:"outputFile" toml:"outputFile" json:"outputFile" yaml:"outputFile"`
	FilePatterns  FilePatterns   `mapstructure:"filePatterns" toml:"filePatterns" json:"filePatterns" yaml:"filePatterns"`
	Registry      RegistryConfig `mapstructure:"registry" toml:"registry" json:"registry" yaml:"registry"`

	// Source is the config file the values were read from; empty when only
	// defaults, environment and overrides contributed.
	Source string `mapstructure:"-" toml:"-" json:"-" yaml:"-"`
}

// FilePatterns pairs the entry pattern with the optional transform pattern.
// The keys keep the names used by existing config files.
type FilePatterns struct {
	Entry     FilePattern `mapstructure:"index" toml:"index" json:"index" yaml:"index"`
	Transform FilePattern `mapstructure:"transformer" toml:"transformer" json:"transformer" yaml:"transformer"`
}

// FilePattern is one matching rule: candidate basenames, tried in order, and
// the allowed extensions. A name containing "*" is a wildcard template.
type FilePattern struct {
	Names      []string `mapstructure:"names" toml:"names" json:"names" yaml:"names"`
	Name       string   `mapstructure:"name" toml:"name,omitempty" json:"name,omitempty" yaml:"name,omitempty"` // legacy single name, folded into Names
	Extensions []string `mapstructure:"extensions" toml:"extensions" json:"extensions" yaml:"extensions"`
}

// RegistryConfig selects the registry preset and optional overrides
type RegistryConfig struct {
	Type       RegistryType `mapstructure:"type" toml:"type" json:"type" yaml:"type"`
	ImportPath string       `mapstructure:"importPath" toml:"importPath,omitempty" json:"importPath,omitempty" yaml:"importPath,omitempty"`
	ImportName string       `mapstructure:"importName" toml:"importName,omitempty" json:"importName,omitempty" yaml:"importName,omitempty"`
}

// CandidateNames returns Names with the legacy Name appended when it is not
// already listed.
func (p FilePattern) CandidateNames() []string {
	names := append([]string(nil), p.Names...)
	if p.Name == "" {
		return names
	}
	for _, n := range names {
		if n == p.Name {
			return names
		}
	}
	return append(names, p.Name)
}
