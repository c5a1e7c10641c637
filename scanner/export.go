package scanner

import "regexp"

// ExportClassifier decides whether source text declares a primary (default)
// export. The scanner only depends on this interface, so a real parser can
// replace the text heuristics.
type ExportClassifier interface {
	HasPrimaryExport(src []byte) bool
}

var (
	// export default function Button() {...}, export default Button;
	inlineDefaultExport = regexp.MustCompile(`export\s+default\s+[^;]+`)
	// export { Button as default }, export { x, Button as default }
	namedDefaultExport = regexp.MustCompile(`export\s*\{[^}]*\b\w+\s+as\s+default\b[^}]*\}`)
)

// RegexpClassifier recognizes default exports by text pattern. Comments and
// string literals are not excluded.
type RegexpClassifier struct {
	patterns []*regexp.Regexp
}

// NewRegexpClassifier returns the classifier for ES module default exports
func NewRegexpClassifier() *RegexpClassifier {
	return &RegexpClassifier{patterns: []*regexp.Regexp{inlineDefaultExport, namedDefaultExport}}
}

// HasPrimaryExport implements ExportClassifier
func (c *RegexpClassifier) HasPrimaryExport(src []byte) bool {
	for _, re := range c.patterns {
		if re.Match(src) {
			return true
		}
	}
	return false
}
