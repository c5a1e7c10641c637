package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/dyesthetics/errors"
)

// PackageField is the package.json key that may carry the configuration
const PackageField = "dyesthetics"

// Format is the decoder a config file needs
type Format string

const (
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatTOML   Format = "toml"
	FormatScript Format = "script" // recognized, never evaluated
)

// Candidate is one conventional config file name
type Candidate struct {
	Name   string
	Format Format
	// Package marks package.json, whose configuration lives under PackageField.
	Package bool
}

// Candidates lists the searched file names in priority order. Within one
// directory the first existing candidate wins.
var Candidates = []Candidate{
	{Name: "package.json", Format: FormatJSON, Package: true},
	{Name: ".dyestheticsrc", Format: FormatYAML},
	{Name: ".dyestheticsrc.json", Format: FormatJSON},
	{Name: ".dyestheticsrc.yaml", Format: FormatYAML},
	{Name: ".dyestheticsrc.yml", Format: FormatYAML},
	{Name: ".dyestheticsrc.toml", Format: FormatTOML},
	{Name: ".dyestheticsrc.js", Format: FormatScript},
	{Name: ".dyestheticsrc.cjs", Format: FormatScript},
	{Name: "dyesthetics.config.json", Format: FormatJSON},
	{Name: "dyesthetics.config.yaml", Format: FormatYAML},
	{Name: "dyesthetics.config.toml", Format: FormatTOML},
	{Name: "dyesthetics.config.js", Format: FormatScript},
	{Name: "dyesthetics.config.cjs", Format: FormatScript},
	{Name: "dyesthetics.config.mjs", Format: FormatScript},
	{Name: "dyesthetics.config.ts", Format: FormatScript},
}

// Discovery records a config search: every path looked at, in order, and
// the file that was selected.
type Discovery struct {
	Searched []string
	Found    string
	Format   Format
	Package  bool
}

// Discover walks up from startDir looking for a config file. The walk stops
// after stopDir (normally the user's home) or at the filesystem root. A
// missing config is not an error: Found is left empty.
func Discover(startDir, stopDir string) (*Discovery, error) {
	d := &Discovery{}
	dir := filepath.Clean(startDir)
	if stopDir != "" {
		stopDir = filepath.Clean(stopDir)
	}

	for {
		for _, c := range Candidates {
			path := filepath.Join(dir, c.Name)
			d.Searched = append(d.Searched, path)

			info, err := os.Stat(path)
			if err != nil || info.IsDir() {
				continue
			}

			if c.Package {
				ok, err := hasPackageField(path)
				if err != nil {
					return d, err
				}
				if !ok {
					continue
				}
			}

			d.Found = path
			d.Format = c.Format
			d.Package = c.Package
			return d, nil
		}

		if dir == stopDir {
			break
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return d, nil
}

// FormatForPath picks a decoder for an explicitly named config file.
// Unknown or missing extensions are read as YAML, which also accepts JSON.
func FormatForPath(path string) (Format, bool) {
	if filepath.Base(path) == "package.json" {
		return FormatJSON, true
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, false
	case ".toml":
		return FormatTOML, false
	case ".js", ".cjs", ".mjs", ".ts":
		return FormatScript, false
	default:
		return FormatYAML, false
	}
}

func hasPackageField(path string) (bool, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(string(FormatJSON))
	if err := v.ReadInConfig(); err != nil {
		return false, errors.Mark(
			errors.Wrapf(err, "failed to parse %s", path),
			errors.ErrConfiguration,
		)
	}
	return v.IsSet(PackageField), nil
}
