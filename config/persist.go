package config

import (
	"bytes"
	"encoding/json"
	"os"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
)

// DefaultFileName is the file `config init` writes
const DefaultFileName = ".dyestheticsrc.toml"

// Encode renders cfg in one of the readable formats: toml, json or yaml
func Encode(cfg Config, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		data, err := toml.Marshal(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as TOML")
		}
		return data, nil
	case FormatJSON:
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as JSON")
		}
		return append(data, '\n'), nil
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(cfg); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as YAML")
		}
		if err := enc.Close(); err != nil {
			return nil, errors.Wrap(err, "failed to marshal config as YAML")
		}
		return buf.Bytes(), nil
	default:
		return nil, errors.Newf("unsupported format %q (use toml, json or yaml)", format)
	}
}

// WriteFile stores cfg as TOML at path. An existing file is first copied to
// path+".back1" so an accidental overwrite can be undone.
func WriteFile(path string, cfg Config) error {
	data, err := Encode(cfg, FormatTOML)
	if err != nil {
		return err
	}

	if err := createBackup(path); err != nil {
		return errors.Wrap(err, "failed to create backup")
	}
	if err := pathutil.EnsureParentDir(path); err != nil {
		return err
	}
	if err := pathutil.WriteFileAtomic(path, data, pathutil.FilePermissions); err != nil {
		return errors.Wrapf(err, "failed to write config file %s", path)
	}
	return nil
}

// createBackup copies an existing config to .back1, replacing the previous backup
func createBackup(configPath string) error {
	content, err := os.ReadFile(configPath)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return errors.Wrap(err, "failed to read config for backup")
	}

	if err := os.WriteFile(configPath+".back1", content, pathutil.FilePermissions); err != nil {
		return errors.Wrap(err, "failed to create .back1")
	}
	return nil
}
