// Package scanner discovers component directories under a root, matches
// their entry and transform files against configured patterns and records
// static export checks for each.
package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
	"github.com/teranos/dyesthetics/logger"
)

// validName is the component name policy: the name becomes a generated
// identifier, so it must be one.
var validName = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Scanner walks one component root. It holds no state between scans.
type Scanner struct {
	root       string
	entry      *Matcher
	transform  *Matcher
	classifier ExportClassifier
	log        *zap.SugaredLogger

	readDir  func(string) ([]os.DirEntry, error)
	readFile func(string) ([]byte, error)
}

// Option configures a Scanner
type Option func(*Scanner)

// WithLogger sets the logger; the default discards everything
func WithLogger(l *zap.SugaredLogger) Option {
	return func(s *Scanner) { s.log = logger.OrNop(l) }
}

// WithClassifier replaces the default regexp export classifier
func WithClassifier(c ExportClassifier) Option {
	return func(s *Scanner) {
		if c != nil {
			s.classifier = c
		}
	}
}

// New compiles cfg's file patterns. Pattern errors are configuration errors.
func New(cfg *config.Config, opts ...Option) (*Scanner, error) {
	entry, err := CompilePattern(cfg.FilePatterns.Entry)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "filePatterns.index"), errors.ErrConfiguration)
	}
	transform, err := CompilePattern(cfg.FilePatterns.Transform)
	if err != nil {
		return nil, errors.Mark(errors.Wrap(err, "filePatterns.transformer"), errors.ErrConfiguration)
	}

	s := &Scanner{
		root:       cfg.ComponentsDir,
		entry:      entry,
		transform:  transform,
		classifier: NewRegexpClassifier(),
		log:        logger.OrNop(nil),
		readDir:    os.ReadDir,
		readFile:   os.ReadFile,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Root returns the scanned directory
func (s *Scanner) Root() string {
	return s.root
}

// Scan inspects every immediate subdirectory of the root, in listing order.
// Only a failure to list the root itself is returned as an error (marked
// errors.ErrScan); everything else is recorded on the result.
func (s *Scanner) Scan() (*Result, error) {
	start := time.Now()
	result := &Result{ID: uuid.NewString(), Root: s.root}
	log := logger.ChildLogger(s.log, logger.FieldScanID, result.ID)

	log.Infow("Scanning component directory", logger.FieldPath, s.root)

	entries, err := s.readDir(s.root)
	if err != nil {
		return nil, errors.Mark(
			errors.Wrapf(err, "read components directory %s", s.root),
			errors.ErrScan,
		)
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		info := s.inspect(entry.Name(), filepath.Join(s.root, entry.Name()), log)
		if !info.Validation.IsValid {
			result.Skipped = append(result.Skipped, SkippedDirectory{
				Name:       info.Name,
				Path:       info.Dir,
				Validation: info.Validation,
			})
			result.Warnings = append(result.Warnings, info.Validation.Errors...)
			for _, msg := range info.Validation.Errors {
				log.Warnw("Skipping component directory",
					logger.FieldComponent, info.Name,
					logger.FieldError, msg)
			}
			continue
		}

		result.Components = append(result.Components, info)
		result.Warnings = append(result.Warnings, info.Validation.Warnings...)
		for _, msg := range info.Validation.Warnings {
			log.Warnw(msg, logger.FieldComponent, info.Name)
		}
	}

	log.Infow("Scan complete",
		logger.FieldCount, len(result.Components),
		logger.FieldSkipped, len(result.Skipped),
		logger.FieldDurationMS, time.Since(start).Milliseconds())

	return result, nil
}

// inspect validates a single component directory
func (s *Scanner) inspect(name, dir string, log *zap.SugaredLogger) ComponentInfo {
	c := &validationCollector{}
	info := ComponentInfo{Name: name, Dir: dir}

	if !validName.MatchString(name) {
		c.fail(RoleEntry, IssueInvalidName, fmt.Sprintf(
			"invalid component name %q in %s: must start with a letter, _ or $ and contain only letters, digits, _ or $",
			name, dir))
		info.Validation = c.result()
		return info
	}

	files, err := s.listFiles(dir)
	if err != nil {
		c.fail(RoleEntry, IssueUnreadableDirectory, fmt.Sprintf("could not read directory %s: %v", dir, err))
		info.Validation = c.result()
		return info
	}

	entry, ok := s.entry.First(files)
	if !ok {
		c.fail(RoleEntry, IssueMissingEntry, fmt.Sprintf(
			"missing required entry file: %s in %s",
			strings.Join(s.entry.Expected(), " or "), dir))
		info.Validation = c.result()
		return info
	}
	info.EntryFilePath = filepath.Join(dir, entry.File)
	log.Debugw("Matched entry file", logger.FieldComponent, name, logger.FieldFile, entry.File)
	c.entry = s.checkExport(RoleEntry, info.EntryFilePath, c)

	transforms := s.transform.All(files)
	s.checkTransforms(dir, transforms, c)
	if len(transforms) > 0 {
		info.TransformFilePath = filepath.Join(dir, transforms[0].File)
		log.Debugw("Matched transform file",
			logger.FieldComponent, name,
			logger.FieldFile, transforms[0].File,
			"captured", transforms[0].CapturedName)
	}
	if len(transforms) == 1 {
		c.transform = s.checkExport(RoleTransform, info.TransformFilePath, c)
	}

	info.Validation = c.result()
	return info
}

// checkTransforms records the count and extension warnings
func (s *Scanner) checkTransforms(dir string, transforms []FileMatch, c *validationCollector) {
	if len(transforms) > 1 {
		names := make([]string, len(transforms))
		for i, t := range transforms {
			names[i] = t.File
		}
		c.warn(RoleTransform, IssueMultipleTransforms, fmt.Sprintf(
			"multiple transform files found in %s: %s (using %s)",
			dir, strings.Join(names, ", "), transforms[0].File))
	}

	// Matching already filters on extension; this catches a pattern table
	// that lets other extensions through.
	var invalid []string
	for _, t := range transforms {
		if !s.transform.AllowsExtension(pathutil.Extension(t.File)) {
			invalid = append(invalid, t.File)
		}
	}
	if len(invalid) > 0 {
		c.warn(RoleTransform, IssueInvalidExtension, fmt.Sprintf(
			"invalid transform file extension in %s. Valid extensions are: %s. Found: %s",
			dir, strings.Join(s.transform.Extensions(), ", "), strings.Join(invalid, ", ")))
	}
}

// checkExport reads path and classifies its default export. Read failures
// become warnings.
func (s *Scanner) checkExport(role Role, path string, c *validationCollector) *ComponentValidation {
	v := &ComponentValidation{FilePath: path}

	src, err := s.readFile(path)
	if err != nil {
		msg := fmt.Sprintf("could not read file %s: %v", path, err)
		v.Warnings = append(v.Warnings, msg)
		c.warn(role, IssueUnreadableFile, msg)
		return v
	}

	v.HasPrimaryExport = s.classifier.HasPrimaryExport(src)
	if !v.HasPrimaryExport {
		msg := fmt.Sprintf("missing default export in %s", path)
		v.Warnings = append(v.Warnings, msg)
		c.warn(role, IssueMissingExport, msg)
	}
	return v
}

// listFiles returns the names of the regular entries of dir, in listing order
func (s *Scanner) listFiles(dir string) ([]string, error) {
	entries, err := s.readDir(dir)
	if err != nil {
		return nil, err
	}
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		files = append(files, e.Name())
	}
	return files, nil
}
