package config

import (
	"os"

	"github.com/spf13/viper"

	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DYESTHETICS"

// EnvBinding maps a config key to the environment variable that overrides it
type EnvBinding struct {
	Key string
	Env string
}

// EnvBindings lists the supported environment overrides
var EnvBindings = []EnvBinding{
	{Key: "componentsDir", Env: EnvPrefix + "_COMPONENTS_DIR"},
	{Key: "outputFile", Env: EnvPrefix + "_OUTPUT_FILE"},
	{Key: "registry.type", Env: EnvPrefix + "_REGISTRY_TYPE"},
	{Key: "registry.importPath", Env: EnvPrefix + "_REGISTRY_IMPORT_PATH"},
	{Key: "registry.importName", Env: EnvPrefix + "_REGISTRY_IMPORT_NAME"},
}

// LoadOptions controls where Load looks and what it layers on top
type LoadOptions struct {
	// ConfigFile forces a specific file and disables the search.
	ConfigFile string
	// WorkDir anchors the search and relative paths. Defaults to os.Getwd.
	WorkDir string
	// StopDir ends the upward search. Defaults to the user's home directory.
	StopDir string
	// Overrides are applied last, typically from CLI flags.
	Overrides Config
}

// Load resolves the configuration: defaults, then the discovered (or forced)
// file, then environment, then overrides. Paths come back absolute. Every
// failure is marked with errors.ErrConfiguration.
func Load(opts LoadOptions) (*Config, error) {
	workDir := opts.WorkDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, configError(errors.Wrap(err, "failed to determine working directory"))
		}
		workDir = wd
	}
	workDir = pathutil.EnsureAbsolute(workDir, string(os.PathSeparator))

	cfg := Default()

	path, format, pkg, err := locate(opts, workDir)
	if err != nil {
		return nil, configError(err)
	}
	if path != "" {
		fileCfg, err := readFile(path, format, pkg)
		if err != nil {
			return nil, configError(err)
		}
		cfg = Merge(cfg, fileCfg)
		cfg.Source = path
	}

	envCfg, err := readEnv()
	if err != nil {
		return nil, configError(err)
	}
	cfg = Merge(cfg, envCfg)
	cfg = Merge(cfg, opts.Overrides)

	cfg.ComponentsDir = pathutil.EnsureAbsolute(cfg.ComponentsDir, workDir)
	cfg.OutputFile = pathutil.EnsureAbsolute(cfg.OutputFile, workDir)

	if err := cfg.Validate(); err != nil {
		if cfg.Source != "" {
			err = errors.Wrapf(err, "invalid configuration in %s", cfg.Source)
		}
		return nil, configError(err)
	}
	return &cfg, nil
}

// locate returns the config file to read, or an empty path for none
func locate(opts LoadOptions, workDir string) (string, Format, bool, error) {
	if opts.ConfigFile != "" {
		path := pathutil.EnsureAbsolute(opts.ConfigFile, workDir)
		info, err := os.Stat(path)
		if err != nil {
			return "", "", false, errors.Wrapf(err, "config file %s not found", path)
		}
		if info.IsDir() {
			return "", "", false, errors.Newf("config file %s is a directory", path)
		}
		format, pkg := FormatForPath(path)
		if format == FormatScript {
			return "", "", false, scriptConfigError(path)
		}
		return path, format, pkg, nil
	}

	stopDir := opts.StopDir
	if stopDir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			stopDir = home
		}
	}

	d, err := Discover(workDir, stopDir)
	if err != nil {
		return "", "", false, err
	}
	if d.Found == "" {
		return "", "", false, nil
	}
	if d.Format == FormatScript {
		return "", "", false, scriptConfigError(d.Found)
	}
	return d.Found, d.Format, d.Package, nil
}

// readFile decodes one config file into a Config layer
func readFile(path string, format Format, pkg bool) (Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType(string(format))

	if err := v.ReadInConfig(); err != nil {
		return Config{}, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if pkg {
		sub := v.Sub(PackageField)
		if sub == nil {
			return Config{}, errors.Newf("%s has no %q object", path, PackageField)
		}
		v = sub
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrapf(err, "failed to decode config file %s", path)
	}
	return cfg, nil
}

// readEnv decodes the DYESTHETICS_* variables into a Config layer
func readEnv() (Config, error) {
	v := viper.New()
	for _, b := range EnvBindings {
		if err := v.BindEnv(b.Key, b.Env); err != nil {
			return Config{}, errors.Wrapf(err, "failed to bind %s", b.Env)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode environment overrides")
	}
	return cfg, nil
}

func scriptConfigError(path string) error {
	return errors.WithHint(
		errors.Newf("config file %s is a script and cannot be evaluated", path),
		"convert it to .dyestheticsrc.json, .dyestheticsrc.yaml or .dyestheticsrc.toml",
	)
}

func configError(err error) error {
	return errors.Mark(err, errors.ErrConfiguration)
}
