// Package commands implements the dyesthetics CLI subcommands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/codegen"
	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/logger"
)

// Global flag names
const (
	FlagVerbose = "verbose"
	FlagConfig  = "config"
	FlagCwd     = "cwd"
	FlagLogJSON = "log-json"
)

// AddGlobalFlags registers the flags every subcommand understands
func AddGlobalFlags(root *cobra.Command) {
	root.PersistentFlags().CountP(FlagVerbose, "v", "Increase output verbosity (repeat for more detail: -v, -vv)")
	root.PersistentFlags().StringP(FlagConfig, "c", "", "Use this config file instead of searching for one")
	root.PersistentFlags().String(FlagCwd, "", "Run as if started in this directory")
	root.PersistentFlags().Bool(FlagLogJSON, false, "Emit logs as JSON")
}

// InitLogger builds the global logger from the -v count and --log-json
func InitLogger(cmd *cobra.Command) error {
	verbosity, _ := cmd.Flags().GetCount(FlagVerbose)
	jsonLogs, _ := cmd.Flags().GetBool(FlagLogJSON)
	if err := logger.Initialize(verbosity, jsonLogs); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Logger.Debugw("Logger initialized",
		logger.FieldVerbosity, logger.LevelName(verbosity),
		logger.FieldOperation, cmd.Name())
	return nil
}

// loadOptions collects the global flags; unknown flags read as zero values
func loadOptions(cmd *cobra.Command, overrides config.Config) config.LoadOptions {
	configFile, _ := cmd.Flags().GetString(FlagConfig)
	cwd, _ := cmd.Flags().GetString(FlagCwd)
	return config.LoadOptions{
		ConfigFile: configFile,
		WorkDir:    cwd,
		Overrides:  overrides,
	}
}

func newCodegen(cmd *cobra.Command, overrides config.Config) (*codegen.Codegen, error) {
	return codegen.Create(loadOptions(cmd, overrides), codegen.WithLogger(logger.ComponentLogger("codegen")))
}

// printWarnings lists the scan's accumulated warnings
func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		pterm.Fprintln(w, pterm.Warning.Sprint(msg))
	}
}

// FormatError renders err for the terminal, with hints on separate lines
func FormatError(err error) string {
	var b strings.Builder
	b.WriteString(err.Error())

	hints := errors.GetAllHints(err)
	var te *errors.ToolError
	if errors.As(err, &te) {
		hints = append(hints, te.Hints...)
	}
	for _, h := range hints {
		fmt.Fprintf(&b, "\n  hint: %s", h)
	}
	return b.String()
}
