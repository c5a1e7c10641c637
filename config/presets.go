package config

import (
	"sort"

	"github.com/teranos/dyesthetics/errors"
)

// RegistryType names a built-in registry preset
type RegistryType string

// Supported registry presets
const (
	RegistryInversify RegistryType = "inversify"
	RegistryTsyringe  RegistryType = "tsyringe"
)

// Preset is the import a generated registry file uses to reach the registry
// object: `import { <ImportName> } from "<ImportPath>";`
type Preset struct {
	ImportPath string `json:"importPath" yaml:"importPath"`
	ImportName string `json:"importName" yaml:"importName"`
}

var presets = map[RegistryType]Preset{
	RegistryInversify: {ImportPath: "./widgetRegistry", ImportName: "widgetRegistryInversify"},
	RegistryTsyringe:  {ImportPath: "./widgetRegistry", ImportName: "widgetRegistryTsyringe"},
}

// PresetFor returns the built-in preset for t
func PresetFor(t RegistryType) (Preset, bool) {
	p, ok := presets[t]
	return p, ok
}

// RegistryTypes lists the supported preset names in stable order
func RegistryTypes() []RegistryType {
	types := make([]RegistryType, 0, len(presets))
	for t := range presets {
		types = append(types, t)
	}
	sort.Slice(types, func(i, j int) bool { return types[i] < types[j] })
	return types
}

// Resolve returns the effective registry import. Overrides win field by field
// over the preset selected by Type.
func (r RegistryConfig) Resolve() (Preset, error) {
	p, ok := PresetFor(r.Type)
	if !ok {
		return Preset{}, errors.Newf("unknown registry type %q", r.Type)
	}
	if r.ImportPath != "" {
		p.ImportPath = r.ImportPath
	}
	if r.ImportName != "" {
		p.ImportName = r.ImportName
	}
	return p, nil
}
