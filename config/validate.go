package config

import (
	"strings"

	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
)

// Validate checks that the configuration is usable by the scanner and the
// generator. It normalizes extensions to a leading dot as a side effect.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.ComponentsDir) == "" {
		return errors.New("componentsDir cannot be empty")
	}
	if strings.TrimSpace(c.OutputFile) == "" {
		return errors.New("outputFile cannot be empty")
	}

	if err := c.FilePatterns.Entry.validate("filePatterns.index"); err != nil {
		return err
	}
	if err := c.FilePatterns.Transform.validate("filePatterns.transformer"); err != nil {
		return err
	}

	if _, ok := PresetFor(c.Registry.Type); !ok {
		return errors.WithHintf(
			errors.Newf("registry.type %q is not supported", c.Registry.Type),
			"supported types: %s", joinTypes(RegistryTypes()),
		)
	}
	return nil
}

func (p *FilePattern) validate(key string) error {
	p.Names = p.CandidateNames()
	p.Name = ""

	if len(p.Names) == 0 {
		return errors.Newf("%s.names must list at least one name", key)
	}
	for _, name := range p.Names {
		if name == "" {
			return errors.Newf("%s.names cannot contain an empty name", key)
		}
		if n := strings.Count(name, "*"); n > 1 {
			return errors.Newf("%s.names: %q has %d wildcards, at most one is allowed", key, name, n)
		}
	}

	if len(p.Extensions) == 0 {
		return errors.Newf("%s.extensions must list at least one extension", key)
	}
	for i, ext := range p.Extensions {
		ext = pathutil.NormalizeExtension(ext)
		if ext == "" || ext == "." {
			return errors.Newf("%s.extensions cannot contain an empty extension", key)
		}
		p.Extensions[i] = ext
	}
	return nil
}

func joinTypes(types []RegistryType) string {
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	return strings.Join(names, ", ")
}
