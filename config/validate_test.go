package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(c *Config) {}},
		{
			name:    "empty components dir",
			mutate:  func(c *Config) { c.ComponentsDir = " " },
			wantErr: "componentsDir cannot be empty",
		},
		{
			name:    "empty output file",
			mutate:  func(c *Config) { c.OutputFile = "" },
			wantErr: "outputFile cannot be empty",
		},
		{
			name:    "no entry names",
			mutate:  func(c *Config) { c.FilePatterns.Entry.Names = nil },
			wantErr: "filePatterns.index.names must list at least one name",
		},
		{
			name:    "no transform extensions",
			mutate:  func(c *Config) { c.FilePatterns.Transform.Extensions = nil },
			wantErr: "filePatterns.transformer.extensions must list at least one extension",
		},
		{
			name:    "empty extension",
			mutate:  func(c *Config) { c.FilePatterns.Entry.Extensions = []string{"."} },
			wantErr: "filePatterns.index.extensions cannot contain an empty extension",
		},
		{
			name:    "double wildcard",
			mutate:  func(c *Config) { c.FilePatterns.Transform.Names = []string{"*.*"} },
			wantErr: "at most one is allowed",
		},
		{
			name:    "unknown registry",
			mutate:  func(c *Config) { c.Registry.Type = "spring" },
			wantErr: `registry.type "spring" is not supported`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_NormalizesExtensions(t *testing.T) {
	cfg := Default()
	cfg.FilePatterns.Entry.Extensions = []string{"tsx", ".jsx"}

	require.NoError(t, cfg.Validate())
	assert.Equal(t, []string{".tsx", ".jsx"}, cfg.FilePatterns.Entry.Extensions)
}

func TestRegistryResolve(t *testing.T) {
	tests := []struct {
		name     string
		registry RegistryConfig
		want     Preset
	}{
		{
			name:     "inversify preset",
			registry: RegistryConfig{Type: RegistryInversify},
			want:     Preset{ImportPath: "./widgetRegistry", ImportName: "widgetRegistryInversify"},
		},
		{
			name:     "tsyringe preset",
			registry: RegistryConfig{Type: RegistryTsyringe},
			want:     Preset{ImportPath: "./widgetRegistry", ImportName: "widgetRegistryTsyringe"},
		},
		{
			name:     "path override only",
			registry: RegistryConfig{Type: RegistryTsyringe, ImportPath: "@app/registry"},
			want:     Preset{ImportPath: "@app/registry", ImportName: "widgetRegistryTsyringe"},
		},
		{
			name:     "both overrides",
			registry: RegistryConfig{Type: RegistryInversify, ImportPath: "../di", ImportName: "container"},
			want:     Preset{ImportPath: "../di", ImportName: "container"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.registry.Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := RegistryConfig{Type: "unknown"}.Resolve()
	assert.Error(t, err)
}

func TestRegistryTypes(t *testing.T) {
	assert.Equal(t, []RegistryType{RegistryInversify, RegistryTsyringe}, RegistryTypes())
}
