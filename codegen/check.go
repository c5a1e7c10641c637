package codegen

import (
	"os"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/generator"
)

// CheckResult compares the registry on disk with a fresh rendering
type CheckResult struct {
	OutputFile string
	UpToDate   bool
	Missing    bool
	// Diff is a unified diff from the file on disk to the fresh rendering,
	// without the timestamp line.
	Diff []string
}

// Check renders the registry in memory and compares it with the output
// file. Nothing is written.
func (c *Codegen) Check() (*CheckResult, error) {
	gen, err := c.Render()
	if err != nil {
		return nil, err
	}

	res := &CheckResult{OutputFile: gen.OutputFile}
	existing, err := os.ReadFile(gen.OutputFile)
	if os.IsNotExist(err) {
		res.Missing = true
		return res, nil
	}
	if err != nil {
		return nil, errors.Classify(
			errors.Wrapf(err, "read %s", gen.OutputFile),
			errors.KindGeneration, "failed to check registry file")
	}

	current := filterMetadataLines(string(existing))
	fresh := filterMetadataLines(gen.Content)
	if current == fresh {
		res.UpToDate = true
		return res, nil
	}

	diff, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        difflib.SplitLines(current),
		B:        difflib.SplitLines(fresh),
		FromFile: gen.OutputFile,
		ToFile:   "generated",
		Context:  2,
	})
	if err != nil {
		return nil, errors.Classify(err, errors.KindGeneration, "failed to diff registry file")
	}
	res.Diff = strings.Split(strings.TrimSuffix(diff, "\n"), "\n")
	return res, nil
}

// filterMetadataLines drops the "// Generated on:" line, which changes on
// every generation without representing a registry change. Every other byte,
// line endings included, is kept.
func filterMetadataLines(content string) string {
	var result strings.Builder
	result.Grow(len(content))
	for _, line := range strings.SplitAfter(content, "\n") {
		if strings.HasPrefix(line, generator.TimestampPrefix) {
			continue
		}
		result.WriteString(line)
	}
	return result.String()
}
