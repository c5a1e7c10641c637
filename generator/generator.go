// Package generator renders the component registry module from a scan
// result. It is a pure function of its inputs and never touches the disk.
package generator

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
	"github.com/teranos/dyesthetics/scanner"
)

// Header lines. TimestampPrefix starts the only line that varies between
// two runs over the same tree.
const (
	HeaderMarker    = "// THIS FILE IS AUTO-GENERATED - DO NOT EDIT"
	TimestampPrefix = "// Generated on: "
	TimestampLayout = "2006-01-02T15:04:05.000Z"
)

// Inline annotations
const (
	entryExportWarning     = " // WARNING: Missing default export in component"
	transformExportWarning = " // WARNING: Missing default export in transformer"
	identityTransform      = "  transformer: (props) => props, // No transformer file, using identity function"
)

// entryIndexName is the entry basename that module resolution finds on its
// own, so such entries are imported through their directory.
const entryIndexName = "index"

// Template is the generated file split into its three sections
type Template struct {
	Header        []string
	Imports       []string
	Registrations []string
}

// String joins the sections into the final file text
func (t *Template) String() string {
	lines := make([]string, 0, len(t.Header)+len(t.Imports)+len(t.Registrations)+3)
	lines = append(lines, t.Header...)
	lines = append(lines, "")
	lines = append(lines, t.Imports...)
	lines = append(lines, "")
	lines = append(lines, t.Registrations...)
	lines = append(lines, "")
	return strings.Join(lines, "\n")
}

// Build renders every component of result in scan order. Components are
// taken as-is: exclusion of invalid directories already happened in the
// scanner. generatedAt is formatted in UTC into the header.
func Build(result *scanner.Result, cfg *config.Config, generatedAt time.Time) (*Template, error) {
	preset, err := cfg.Registry.Resolve()
	if err != nil {
		return nil, err
	}
	outputDir := filepath.Dir(cfg.OutputFile)

	t := &Template{
		Header: []string{
			HeaderMarker,
			TimestampPrefix + generatedAt.UTC().Format(TimestampLayout),
		},
		Imports: []string{
			`import { ` + preset.ImportName + ` } from "` + preset.ImportPath + `";`,
			"",
		},
	}

	for _, c := range result.Components {
		entryPath, err := EntryImportPath(outputDir, c)
		if err != nil {
			return nil, errors.Wrapf(err, "component %s", c.Name)
		}
		t.Imports = append(t.Imports, importLine(EntryIdentifier(c.Name), entryPath))

		if c.HasTransform() {
			transformPath, err := pathutil.ImportPath(outputDir, pathutil.StripExtension(c.TransformFilePath))
			if err != nil {
				return nil, errors.Wrapf(err, "component %s transform", c.Name)
			}
			t.Imports = append(t.Imports, importLine(TransformIdentifier(c.Name), transformPath))
		}

		t.Registrations = append(t.Registrations, registration(preset.ImportName, c)...)
	}

	return t, nil
}

// Render is Build followed by String
func Render(result *scanner.Result, cfg *config.Config, generatedAt time.Time) (string, error) {
	t, err := Build(result, cfg, generatedAt)
	if err != nil {
		return "", err
	}
	return t.String(), nil
}

// EntryImportPath points at the component directory when the entry file is
// the index module, and at the extensionless entry file otherwise.
func EntryImportPath(outputDir string, c scanner.ComponentInfo) (string, error) {
	target := pathutil.StripExtension(c.EntryFilePath)
	if filepath.Base(target) == entryIndexName {
		target = filepath.Dir(target)
	}
	return pathutil.ImportPath(outputDir, target)
}

// EntryIdentifier is the registered name and the import binding of the
// entry module: the directory name with its first ASCII letter uppercased.
func EntryIdentifier(name string) string {
	if name == "" {
		return name
	}
	first := name[0]
	if first >= 'a' && first <= 'z' {
		return string(first-'a'+'A') + name[1:]
	}
	return name
}

// TransformIdentifier is the import binding of a transform module
func TransformIdentifier(name string) string {
	return name + "Transformer"
}

func importLine(ident, path string) string {
	return `import ` + ident + ` from "` + path + `";`
}

func registration(registry string, c scanner.ComponentInfo) []string {
	ident := EntryIdentifier(c.Name)

	componentLine := "  Component: " + ident + ","
	if v := c.Validation.Entry; v != nil && !v.HasPrimaryExport {
		componentLine += entryExportWarning
	}

	transformLine := identityTransform
	if c.HasTransform() {
		transformLine = "  transformer: " + TransformIdentifier(c.Name) + ","
		if v := c.Validation.Transform; v != nil && !v.HasPrimaryExport {
			transformLine += transformExportWarning
		}
	}

	return []string{
		registry + `.registerComponent("` + ident + `", {`,
		componentLine,
		transformLine,
		"});",
	}
}
