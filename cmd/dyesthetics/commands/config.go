package commands

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/internal/pathutil"
)

// ConfigCmd groups configuration subcommands
var ConfigCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create configuration",
	Long: `Inspect and create dyesthetics configuration.

Configuration sources (later overrides earlier):
1. Built-in defaults
2. The nearest config file, searched from the working directory upwards
   (package.json "dyesthetics" field, .dyestheticsrc[.json|.yaml|.yml|.toml],
   dyesthetics.config.[json|yaml|toml])
3. Environment variables (DYESTHETICS_* prefix)
4. Command line flags

Examples:
  dyesthetics config show                  # Show the resolved configuration
  dyesthetics config show --format json    # ... as JSON
  dyesthetics config where                 # Show which files were searched
  dyesthetics config init                  # Write .dyestheticsrc.toml with defaults`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE:  runConfigShow,
}

var configWhereCmd = &cobra.Command{
	Use:   "where",
	Short: "Show which config files are searched and which one is used",
	RunE:  runConfigWhere,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default settings",
	RunE:  runConfigInit,
}

var (
	configFormat    string
	configInitForce bool
)

func init() {
	configShowCmd.Flags().StringVar(&configFormat, "format", "toml", "Output format: toml, json, yaml")
	configInitCmd.Flags().BoolVar(&configInitForce, "force", false, "Overwrite an existing file (a .back1 copy is kept)")

	ConfigCmd.AddCommand(configShowCmd)
	ConfigCmd.AddCommand(configWhereCmd)
	ConfigCmd.AddCommand(configInitCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(loadOptions(cmd, config.Config{}))
	if err != nil {
		return err
	}

	data, err := config.Encode(*cfg, config.Format(configFormat))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if configFormat != string(config.FormatJSON) {
		source := cfg.Source
		if source == "" {
			source = "defaults"
		}
		fmt.Fprintf(out, "# dyesthetics configuration (source: %s)\n", source)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigWhere(cmd *cobra.Command, args []string) error {
	opts := loadOptions(cmd, config.Config{})
	out := cmd.OutOrStdout()

	workDir, err := workingDir(opts.WorkDir)
	if err != nil {
		return err
	}

	if opts.ConfigFile != "" {
		fmt.Fprintf(out, "Using %s (--config)\n", pathutil.EnsureAbsolute(opts.ConfigFile, workDir))
		return nil
	}
	home, _ := os.UserHomeDir()

	d, err := config.Discover(workDir, home)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "Searched (in order):")
	for _, p := range d.Searched {
		marker := "  "
		if p == d.Found {
			marker = pterm.Green("→ ")
		}
		fmt.Fprintf(out, "%s%s\n", marker, p)
	}
	fmt.Fprintln(out)

	if d.Found == "" {
		fmt.Fprintln(out, "No config file found; using built-in defaults")
	} else {
		fmt.Fprintf(out, "Using %s\n", d.Found)
	}

	fmt.Fprintln(out, "\nEnvironment overrides:")
	for _, b := range config.EnvBindings {
		value, set := os.LookupEnv(b.Env)
		if !set || value == "" {
			value = "(unset)"
		}
		fmt.Fprintf(out, "  %-36s %s\n", b.Env, value)
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	opts := loadOptions(cmd, config.Config{})
	workDir, err := workingDir(opts.WorkDir)
	if err != nil {
		return err
	}

	path := filepath.Join(workDir, config.DefaultFileName)
	if opts.ConfigFile != "" {
		path = pathutil.EnsureAbsolute(opts.ConfigFile, workDir)
	}
	if _, err := os.Stat(path); err == nil && !configInitForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.WriteFile(path, config.Default()); err != nil {
		return err
	}
	pterm.Fprintln(cmd.OutOrStdout(), pterm.Success.Sprintf("Wrote %s", path))
	return nil
}

func workingDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to determine working directory: %w", err)
		}
		return wd, nil
	}
	return filepath.Abs(dir)
}
