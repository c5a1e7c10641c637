package scanner

// Role identifies which file of a component directory an issue concerns
type Role string

const (
	RoleEntry     Role = "entry"
	RoleTransform Role = "transform"
)

// Severity of a validation issue
type Severity string

const (
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// IssueKind classifies validation issues
type IssueKind string

const (
	// Errors: the directory is skipped
	IssueMissingEntry        IssueKind = "missing_entry"
	IssueInvalidName         IssueKind = "invalid_name"
	IssueUnreadableDirectory IssueKind = "unreadable_directory"

	// Warnings: the directory is still included
	IssueMissingExport      IssueKind = "missing_export"
	IssueMultipleTransforms IssueKind = "multiple_transforms"
	IssueInvalidExtension   IssueKind = "invalid_extension"
	IssueUnreadableFile     IssueKind = "unreadable_file"
)

// Issue is one structured finding about a component directory
type Issue struct {
	File     Role      `json:"file" yaml:"file"`
	Kind     IssueKind `json:"kind" yaml:"kind"`
	Severity Severity  `json:"severity" yaml:"severity"`
	Message  string    `json:"message" yaml:"message"`
}

// FileMatch is a file that satisfied a FilePattern. CapturedName is set only
// when a wildcard template matched.
type FileMatch struct {
	File         string
	CapturedName string
}

// ComponentValidation is the export check of a single file
type ComponentValidation struct {
	HasPrimaryExport bool
	FilePath         string
	Warnings         []string
}

// ValidationResult collects everything found in one component directory.
// IsValid is true iff Errors is empty; warnings never flip it.
type ValidationResult struct {
	IsValid   bool
	Errors    []string
	Warnings  []string
	Issues    []Issue
	Entry     *ComponentValidation
	Transform *ComponentValidation
}

// ComponentInfo is a component directory that will be registered
type ComponentInfo struct {
	Name              string
	Dir               string
	EntryFilePath     string
	TransformFilePath string
	Validation        ValidationResult
}

// HasTransform reports whether the component ships a transform file
func (c ComponentInfo) HasTransform() bool {
	return c.TransformFilePath != ""
}

// SkippedDirectory is a component directory excluded from generation
type SkippedDirectory struct {
	Name       string
	Path       string
	Validation ValidationResult
}

// Result is the outcome of one scan. Components and Skipped keep directory
// listing order. Warnings accumulates the errors of skipped directories and
// the warnings of included ones.
type Result struct {
	ID         string
	Root       string
	Components []ComponentInfo
	Skipped    []SkippedDirectory
	Warnings   []string
}

// SkippedDirectoryNames lists the names of excluded directories in order
func (r *Result) SkippedDirectoryNames() []string {
	names := make([]string, len(r.Skipped))
	for i, s := range r.Skipped {
		names[i] = s.Name
	}
	return names
}

// validationCollector accumulates findings while one directory is inspected
type validationCollector struct {
	errors    []string
	warnings  []string
	issues    []Issue
	entry     *ComponentValidation
	transform *ComponentValidation
}

func (c *validationCollector) fail(role Role, kind IssueKind, msg string) {
	c.errors = append(c.errors, msg)
	c.issues = append(c.issues, Issue{File: role, Kind: kind, Severity: SeverityError, Message: msg})
}

func (c *validationCollector) warn(role Role, kind IssueKind, msg string) {
	c.warnings = append(c.warnings, msg)
	c.issues = append(c.issues, Issue{File: role, Kind: kind, Severity: SeverityWarn, Message: msg})
}

func (c *validationCollector) result() ValidationResult {
	return ValidationResult{
		IsValid:   len(c.errors) == 0,
		Errors:    c.errors,
		Warnings:  c.warnings,
		Issues:    c.issues,
		Entry:     c.entry,
		Transform: c.transform,
	}
}
