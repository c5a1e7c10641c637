// Package codegen sequences configuration, scanning and rendering into the
// generate, validate and check operations. Every error it returns is an
// *errors.ToolError.
package codegen

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/generator"
	"github.com/teranos/dyesthetics/internal/pathutil"
	"github.com/teranos/dyesthetics/logger"
	"github.com/teranos/dyesthetics/scanner"
)

// Codegen runs the pipeline for one resolved configuration
type Codegen struct {
	cfg     *config.Config
	scanner *scanner.Scanner
	log     *zap.SugaredLogger
	now     func() time.Time

	mu       sync.Mutex
	lastScan *scanner.Result
}

// Option configures a Codegen
type Option func(*Codegen)

// WithLogger sets the logger; the scanner gets a named child of it
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Codegen) { c.log = logger.OrNop(l) }
}

// WithClock replaces time.Now for the header and report timestamps
func WithClock(now func() time.Time) Option {
	return func(c *Codegen) {
		if now != nil {
			c.now = now
		}
	}
}

// Generation is one rendered registry
type Generation struct {
	OutputFile  string
	Content     string
	GeneratedAt time.Time
	Scan        *scanner.Result
}

// New builds a Codegen for an already resolved configuration
func New(cfg *config.Config, opts ...Option) (*Codegen, error) {
	c := &Codegen{
		cfg: cfg,
		log: logger.OrNop(nil),
		now: time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	sc, err := scanner.New(cfg, scanner.WithLogger(c.log.Named("scanner")))
	if err != nil {
		return nil, errors.Classify(err, errors.KindConfiguration, "invalid file patterns")
	}
	c.scanner = sc
	return c, nil
}

// Create loads the configuration and builds a Codegen for it
func Create(loadOpts config.LoadOptions, opts ...Option) (*Codegen, error) {
	cfg, err := config.Load(loadOpts)
	if err != nil {
		return nil, errors.Classify(err, errors.KindConfiguration, "failed to load configuration")
	}
	c, err := New(cfg, opts...)
	if err != nil {
		return nil, err
	}

	source := cfg.Source
	if source == "" {
		source = "defaults"
	}
	c.log.Infow("Configuration resolved",
		logger.FieldSource, source,
		logger.FieldPath, cfg.ComponentsDir,
		logger.FieldOutput, cfg.OutputFile)
	return c, nil
}

// Config returns the configuration in use
func (c *Codegen) Config() *config.Config {
	return c.cfg
}

// Render scans afresh and renders the registry without writing it
func (c *Codegen) Render() (*Generation, error) {
	preset, err := c.cfg.Registry.Resolve()
	if err != nil {
		return nil, errors.Classify(err, errors.KindGeneration, "failed to generate component registry")
	}

	result, err := c.scan()
	if err != nil {
		return nil, errors.Classify(err, errors.KindGeneration, "failed to generate component registry")
	}

	at := c.now()
	content, err := generator.Render(result, c.cfg, at)
	if err != nil {
		return nil, errors.Classify(err, errors.KindGeneration, "failed to generate component registry")
	}

	c.log.Debugw("Registry rendered",
		logger.FieldRegistry, preset.ImportName,
		logger.FieldCount, len(result.Components),
		logger.FieldSize, len(content))

	return &Generation{
		OutputFile:  c.cfg.OutputFile,
		Content:     content,
		GeneratedAt: at,
		Scan:        result,
	}, nil
}

// Generate scans afresh, renders and writes the registry, creating missing
// parent directories. The write is atomic: on failure the previous file, if
// any, is left untouched.
func (c *Codegen) Generate() (*Generation, error) {
	start := time.Now()

	gen, err := c.Render()
	if err != nil {
		return nil, err
	}

	if err := writeOutput(gen.OutputFile, []byte(gen.Content)); err != nil {
		return nil, errors.Classify(err, errors.KindWrite, "failed to write registry file")
	}

	c.log.Infow("Component registry generated",
		logger.FieldOutput, gen.OutputFile,
		logger.FieldCount, len(gen.Scan.Components),
		logger.FieldSkipped, len(gen.Scan.Skipped),
		logger.FieldDurationMS, time.Since(start).Milliseconds())
	return gen, nil
}

// Validate returns the report for the most recent scan, scanning only when
// this Codegen has not scanned yet.
func (c *Codegen) Validate() (*Report, error) {
	c.mu.Lock()
	result := c.lastScan
	c.mu.Unlock()

	if result == nil {
		c.log.Infow("Analyzing components", logger.FieldPath, c.cfg.ComponentsDir)
		var err error
		if result, err = c.scan(); err != nil {
			return nil, errors.Classify(err, errors.KindGeneration, "failed to analyze components")
		}
	}
	return NewReport(result, c.now()), nil
}

// Invalidate drops the cached scan so the next Validate rescans
func (c *Codegen) Invalidate() {
	c.mu.Lock()
	c.lastScan = nil
	c.mu.Unlock()
}

// scan always walks the tree and refreshes the cache
func (c *Codegen) scan() (*scanner.Result, error) {
	result, err := c.scanner.Scan()
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.lastScan = result
	c.mu.Unlock()
	return result, nil
}

func writeOutput(path string, data []byte) error {
	if err := pathutil.EnsureParentDir(path); err != nil {
		return errors.Mark(err, errors.ErrWrite)
	}
	if err := pathutil.WriteFileAtomic(path, data, pathutil.FilePermissions); err != nil {
		return errors.Mark(err, errors.ErrWrite)
	}
	return nil
}
