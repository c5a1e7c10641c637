package main

import (
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/cmd/dyesthetics/commands"
	"github.com/teranos/dyesthetics/logger"
)

var rootCmd = &cobra.Command{
	Use:   "dyesthetics",
	Short: "dyesthetics - widget registry code generator",
	Long: `dyesthetics scans a directory of widget components and generates a
TypeScript module that registers every component with the configured
dependency-injection registry.

Available commands:
  generate - Write the registry file
  validate - Report the status of every component
  check    - Verify the registry file is up to date
  config   - Inspect and create configuration
  version  - Show version information

Examples:
  dyesthetics generate              # Write the registry
  dyesthetics generate --watch      # Regenerate on every change
  dyesthetics validate --strict     # Fail on any warning
  dyesthetics config show           # Show resolved configuration`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return commands.InitLogger(cmd)
	},
}

func init() {
	commands.AddGlobalFlags(rootCmd)

	rootCmd.AddCommand(commands.GenerateCmd)
	rootCmd.AddCommand(commands.ValidateCmd)
	rootCmd.AddCommand(commands.CheckCmd)
	rootCmd.AddCommand(commands.ConfigCmd)
	rootCmd.AddCommand(commands.VersionCmd)
}

func main() {
	err := rootCmd.Execute()
	logger.Cleanup()
	if err != nil {
		pterm.Fprintln(os.Stderr, pterm.Error.Sprint(commands.FormatError(err)))
		os.Exit(1)
	}
}
