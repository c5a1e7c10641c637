package config

// Merge layers overlay on top of base. Every non-zero overlay field replaces
// the base field; lists replace whole lists, they are never concatenated.
func Merge(base, overlay Config) Config {
	out := base

	if overlay.ComponentsDir != "" {
		out.ComponentsDir = overlay.ComponentsDir
	}
	if overlay.OutputFile != "" {
		out.OutputFile = overlay.OutputFile
	}
	out.FilePatterns.Entry = mergePattern(base.FilePatterns.Entry, overlay.FilePatterns.Entry)
	out.FilePatterns.Transform = mergePattern(base.FilePatterns.Transform, overlay.FilePatterns.Transform)

	if overlay.Registry.Type != "" {
		out.Registry.Type = overlay.Registry.Type
	}
	if overlay.Registry.ImportPath != "" {
		out.Registry.ImportPath = overlay.Registry.ImportPath
	}
	if overlay.Registry.ImportName != "" {
		out.Registry.ImportName = overlay.Registry.ImportName
	}
	if overlay.Source != "" {
		out.Source = overlay.Source
	}
	return out
}

// mergePattern folds the legacy single name before layering, so a file that
// only sets `name` replaces the default names instead of extending them.
func mergePattern(base, overlay FilePattern) FilePattern {
	out := FilePattern{
		Names:      append([]string(nil), base.CandidateNames()...),
		Extensions: append([]string(nil), base.Extensions...),
	}
	if names := overlay.CandidateNames(); len(names) > 0 {
		out.Names = names
	}
	if len(overlay.Extensions) > 0 {
		out.Extensions = append([]string(nil), overlay.Extensions...)
	}
	return out
}
