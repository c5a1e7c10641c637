package scanner

import (
	"regexp"
	"strings"

	"github.com/teranos/dyesthetics/config"
	"github.com/teranos/dyesthetics/errors"
	"github.com/teranos/dyesthetics/internal/pathutil"
)

// Matcher is a compiled FilePattern
type Matcher struct {
	names      []namePattern
	extensions []string
}

type namePattern struct {
	raw string
	re  *regexp.Regexp // nil for exact names
}

// CompilePattern prepares p for matching. Wildcard templates are compiled
// once here rather than per file.
func CompilePattern(p config.FilePattern) (*Matcher, error) {
	names := p.CandidateNames()
	if len(names) == 0 {
		return nil, errors.New("file pattern has no names")
	}
	if len(p.Extensions) == 0 {
		return nil, errors.New("file pattern has no extensions")
	}

	m := &Matcher{}
	for _, ext := range p.Extensions {
		m.extensions = append(m.extensions, pathutil.NormalizeExtension(ext))
	}
	for _, name := range names {
		np := namePattern{raw: name}
		if strings.Contains(name, "*") {
			re, err := GlobToRegexp(name)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid name pattern %q", name)
			}
			np.re = re
		}
		m.names = append(m.names, np)
	}
	return m, nil
}

// GlobToRegexp converts a name template to an anchored expression. "*"
// becomes a lazy capturing group, "?" any single character, and every other
// character matches literally.
//
//	"*.transformer" -> ^(.+?)\.transformer$
func GlobToRegexp(pattern string) (*regexp.Regexp, error) {
	var b strings.Builder
	b.WriteString("^")
	for _, r := range pattern {
		switch r {
		case '*':
			b.WriteString("(.+?)")
		case '?':
			b.WriteString(".")
		default:
			b.WriteString(regexp.QuoteMeta(string(r)))
		}
	}
	b.WriteString("$")
	return regexp.Compile(b.String())
}

// Match tests a single file name. The extension is checked first; the
// basename is then tried against each name in order and the first hit wins.
// Matching is case-sensitive.
func (m *Matcher) Match(fileName string) (FileMatch, bool) {
	ext := pathutil.Extension(fileName)
	if ext == "" || !m.AllowsExtension(ext) {
		return FileMatch{}, false
	}
	base := strings.TrimSuffix(fileName, ext)

	for _, np := range m.names {
		if np.re == nil {
			if base == np.raw {
				return FileMatch{File: fileName}, true
			}
			continue
		}
		if sub := np.re.FindStringSubmatch(base); sub != nil {
			return FileMatch{File: fileName, CapturedName: sub[1]}, true
		}
	}
	return FileMatch{}, false
}

// First returns the first file, in the given order, that matches
func (m *Matcher) First(files []string) (FileMatch, bool) {
	for _, f := range files {
		if match, ok := m.Match(f); ok {
			return match, true
		}
	}
	return FileMatch{}, false
}

// All returns every matching file in the given order
func (m *Matcher) All(files []string) []FileMatch {
	var matches []FileMatch
	for _, f := range files {
		if match, ok := m.Match(f); ok {
			matches = append(matches, match)
		}
	}
	return matches
}

// AllowsExtension reports whether ext is one of the pattern's extensions
func (m *Matcher) AllowsExtension(ext string) bool {
	for _, e := range m.extensions {
		if e == ext {
			return true
		}
	}
	return false
}

// Extensions returns the allowed extensions
func (m *Matcher) Extensions() []string {
	return append([]string(nil), m.extensions...)
}

// Expected lists every name+extension combination, for error messages
func (m *Matcher) Expected() []string {
	var out []string
	for _, np := range m.names {
		for _, ext := range m.extensions {
			out = append(out, np.raw+ext)
		}
	}
	return out
}
