package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestWriteFile_LoadsBack(t *testing.T) {
	isolateEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)

	want := Default()
	want.ComponentsDir = "app/widgets"
	want.Registry.Type = RegistryTsyringe
	require.NoError(t, WriteFile(path, want))

	cfg, err := load(t, dir, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, filepath.Join(dir, "app", "widgets"), cfg.ComponentsDir)
	assert.Equal(t, RegistryTsyringe, cfg.Registry.Type)
	assert.Equal(t, want.FilePatterns.Transform.Names, cfg.FilePatterns.Transform.Names)
}

func TestWriteFile_BacksUpExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("componentsDir = \"old\"\n"), 0644))

	require.NoError(t, WriteFile(path, Default()))

	backup, err := os.ReadFile(path + ".back1")
	require.NoError(t, err)
	assert.Equal(t, "componentsDir = \"old\"\n", string(backup))
}

func TestEncode(t *testing.T) {
	cfg := Default()

	data, err := Encode(cfg, FormatJSON)
	require.NoError(t, err)
	var asJSON map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &asJSON))
	assert.Equal(t, DefaultComponentsDir, asJSON["componentsDir"])
	assert.NotContains(t, asJSON, "Source")

	data, err = Encode(cfg, FormatYAML)
	require.NoError(t, err)
	var asYAML map[string]interface{}
	require.NoError(t, yaml.Unmarshal(data, &asYAML))
	assert.Equal(t, DefaultOutputFile, asYAML["outputFile"])

	data, err = Encode(cfg, FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "componentsDir = ")
	assert.Contains(t, string(data), "[filePatterns.transformer]")

	_, err = Encode(cfg, "ini")
	assert.Error(t, err)
}
