package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/codegen"
	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/logger"
	"github.com/teranos/dyesthetics/watch"
)

// GenerateCmd writes the component registry
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Scan components and write the registry module",
	Long: `Scan the components directory and write the generated registry module.

Each immediate subdirectory of the components directory is a component. It
needs an entry file (index.tsx by default) and may carry a transformer file.
Directories without an entry file are skipped and reported.

Examples:
  dyesthetics generate                          # Use discovered configuration
  dyesthetics generate --root src/widgets       # Override the components directory
  dyesthetics generate --registry tsyringe      # Use the tsyringe registry preset
  dyesthetics generate --dry-run                # Print instead of writing
  dyesthetics generate --watch                  # Regenerate on every change`,
	RunE: runGenerate,
}

var (
	generateRoot       string
	generateOutput     string
	generateRegistry   string
	generateImportPath string
	generateImportName string
	generateDryRun     bool
	generateWatch      bool
)

func init() {
	GenerateCmd.Flags().StringVar(&generateRoot, "root", "", "Components directory")
	GenerateCmd.Flags().StringVarP(&generateOutput, "output", "o", "", "Generated registry file")
	GenerateCmd.Flags().StringVar(&generateRegistry, "registry", "", "Registry preset: inversify, tsyringe")
	GenerateCmd.Flags().StringVar(&generateImportPath, "import-path", "", "Override the registry import path")
	GenerateCmd.Flags().StringVar(&generateImportName, "import-name", "", "Override the registry import name")
	GenerateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "Print the registry instead of writing it")
	GenerateCmd.Flags().BoolVarP(&generateWatch, "watch", "w", false, "Regenerate when components or configuration change")
}

func generateOverrides() config.Config {
	return config.Config{
		ComponentsDir: generateRoot,
		OutputFile:    generateOutput,
		Registry: config.RegistryConfig{
			Type:       config.RegistryType(generateRegistry),
			ImportPath: generateImportPath,
			ImportName: generateImportName,
		},
	}
}

func runGenerate(cmd *cobra.Command, args []string) error {
	if generateDryRun && generateWatch {
		return fmt.Errorf("--dry-run and --watch cannot be combined")
	}

	cg, err := newCodegen(cmd, generateOverrides())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	if generateDryRun {
		gen, err := cg.Render()
		if err != nil {
			return err
		}
		printWarnings(cmd.ErrOrStderr(), gen.Scan.Warnings)
		fmt.Fprint(out, gen.Content)
		return nil
	}

	if err := generateOnce(cg, out); err != nil {
		return err
	}
	if !generateWatch {
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return watchAndGenerate(ctx, cg.Config(), out, func() (*codegen.Codegen, error) {
		return newCodegen(cmd, generateOverrides())
	})
}

func generateOnce(cg *codegen.Codegen, out io.Writer) error {
	gen, err := cg.Generate()
	if err != nil {
		return err
	}
	printWarnings(out, gen.Scan.Warnings)
	pterm.Fprintln(out, pterm.Success.Sprintf("Generated %s (%s registered, %d skipped)",
		gen.OutputFile,
		pterm.Green(fmt.Sprintf("%d", len(gen.Scan.Components))),
		len(gen.Scan.Skipped)))
	return nil
}

// watchAndGenerate rebuilds the pipeline on every change so edits to the
// config file take effect without a restart.
func watchAndGenerate(ctx context.Context, cfg *config.Config, out io.Writer, rebuild func() (*codegen.Codegen, error)) error {
	w, err := watch.New(watch.Options{
		Root:   cfg.ComponentsDir,
		Files:  []string{cfg.Source},
		Ignore: []string{cfg.OutputFile},
		Logger: logger.ComponentLogger("watch"),
	}, func(ctx context.Context) error {
		cg, err := rebuild()
		if err != nil {
			return err
		}
		return generateOnce(cg, out)
	})
	if err != nil {
		return err
	}

	pterm.Fprintln(out, pterm.Info.Sprintf("Watching %s (Ctrl+C to stop)", cfg.ComponentsDir))
	return w.Run(ctx)
}
