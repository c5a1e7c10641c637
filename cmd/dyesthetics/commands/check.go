package commands

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/dyesthetics/config"
)

// CheckCmd verifies that the registry on disk is current
var CheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify the generated registry is up to date",
	Long: `Render the registry in memory and compare it with the file on disk,
ignoring the generation timestamp. Exits non-zero when the file is missing
or stale, which makes it suitable for CI.

Examples:
  dyesthetics check            # Fails if 'dyesthetics generate' would change the file`,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	cg, err := newCodegen(cmd, config.Config{})
	if err != nil {
		return err
	}

	res, err := cg.Check()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case res.UpToDate:
		pterm.Fprintln(out, pterm.Success.Sprintf("%s is up to date", res.OutputFile))
		return nil
	case res.Missing:
		return fmt.Errorf("%s does not exist; run 'dyesthetics generate'", res.OutputFile)
	default:
		fmt.Fprintln(out, strings.Join(res.Diff, "\n"))
		return fmt.Errorf("%s is out of date; run 'dyesthetics generate'", res.OutputFile)
	}
}
