package commands

import (
	"fmt"
	"io"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/codegen"
	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/display"
)

// ValidateCmd prints the validation report without writing anything
var ValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Report the status of every component",
	Long: `Scan the components directory and report, per component, whether it is
valid, has warnings (for example a missing default export) or has errors
(for example a missing entry file). Nothing is written.

Examples:
  dyesthetics validate                  # Table output
  dyesthetics validate --format json    # Machine-readable report
  dyesthetics validate --strict         # Exit non-zero unless every component is valid`,
	RunE: runValidate,
}

var (
	validateFormat string
	validateStrict bool
	validateRoot   string
)

func init() {
	ValidateCmd.Flags().StringVarP(&validateFormat, "format", "f", "table", "Output format: table, json, yaml")
	ValidateCmd.Flags().BoolVar(&validateStrict, "strict", false, "Fail if any component has warnings or errors")
	ValidateCmd.Flags().StringVar(&validateRoot, "root", "", "Components directory")
}

func runValidate(cmd *cobra.Command, args []string) error {
	cg, err := newCodegen(cmd, config.Config{ComponentsDir: validateRoot})
	if err != nil {
		return err
	}

	report, err := cg.Validate()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch validateFormat {
	case display.FormatJSON, display.FormatYAML:
		if err := display.Write(out, report, validateFormat); err != nil {
			return err
		}
	case display.FormatTable:
		if err := renderReportTable(out, report); err != nil {
			return err
		}
	default:
		return fmt.Errorf("unsupported format: %s (supported: table, json, yaml)", validateFormat)
	}

	if validateStrict && !report.Clean() {
		return fmt.Errorf("%d of %d components are not valid",
			report.Summary.Total-report.Summary.Valid, report.Summary.Total)
	}
	return nil
}

func renderReportTable(out io.Writer, report *codegen.Report) error {
	if report.Summary.Total == 0 {
		pterm.Fprintln(out, pterm.Warning.Sprint("No component directories found"))
		return nil
	}

	data := pterm.TableData{{"Component", "Status", "Issue"}}
	for _, name := range report.Names() {
		c := report.Components[name]
		status := colorStatus(c.Status)
		if len(c.Issues) == 0 {
			data = append(data, []string{name, status, ""})
			continue
		}
		for i, issue := range c.Issues {
			row := []string{"", "", fmt.Sprintf("[%s] %s", issue.File, issue.Message)}
			if i == 0 {
				row[0], row[1] = name, status
			}
			data = append(data, row)
		}
	}

	table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
	if err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	pterm.Fprintln(out, table)
	pterm.Fprintln(out, fmt.Sprintf("%d components: %s valid, %s with warnings, %s with errors",
		report.Summary.Total,
		pterm.Green(fmt.Sprintf("%d", report.Summary.Valid)),
		pterm.Yellow(fmt.Sprintf("%d", report.Summary.WithWarnings)),
		pterm.Red(fmt.Sprintf("%d", report.Summary.WithErrors))))
	return nil
}

func colorStatus(s codegen.Status) string {
	switch s {
	case codegen.StatusValid:
		return pterm.Green(string(s))
	case codegen.StatusWarning:
		return pterm.Yellow(string(s))
	default:
		return pterm.Red(string(s))
	}
}
