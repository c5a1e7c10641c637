// Package pathutil holds the small path and file helpers shared by the
// config loader and the generator: import specifiers between files,
// extension handling, absolute normalization and atomic writes.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/teranos/dyesthetics/errors"
)

// File system permissions for generated artifacts
const (
	DirPermissions  = 0755 // rwxr-xr-x
	FilePermissions = 0644 // rw-r--r--
)

// ImportPath returns the module specifier that a file living in fromDir
// uses to import target. Separators are always "/" and specifiers that do
// not climb out of fromDir are prefixed with "./".
func ImportPath(fromDir, target string) (string, error) {
	rel, err := filepath.Rel(fromDir, target)
	if err != nil {
		return "", errors.Wrapf(err, "cannot relativize %s against %s", target, fromDir)
	}
	rel = filepath.ToSlash(rel)

	switch {
	case rel == ".":
		return ".", nil
	case rel == "..", strings.HasPrefix(rel, "../"):
		return rel, nil
	default:
		return "./" + rel, nil
	}
}

// Extension returns the part of name after its last ".", including the dot.
// Names without a dot have no extension.
func Extension(name string) string {
	return filepath.Ext(name)
}

// StripExtension removes the final extension from p, if any.
func StripExtension(p string) string {
	return strings.TrimSuffix(p, filepath.Ext(p))
}

// NormalizeExtension makes sure ext carries a leading dot.
func NormalizeExtension(ext string) string {
	ext = strings.TrimSpace(ext)
	if ext == "" || strings.HasPrefix(ext, ".") {
		return ext
	}
	return "." + ext
}

// EnsureAbsolute anchors a relative p at base. Absolute paths are only cleaned.
func EnsureAbsolute(p, base string) string {
	if p == "" {
		return ""
	}
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}

// EnsureParentDir creates every missing ancestor directory of p.
func EnsureParentDir(p string) error {
	dir := filepath.Dir(p)
	if err := os.MkdirAll(dir, DirPermissions); err != nil {
		return errors.Wrapf(err, "failed to create directory %s", dir)
	}
	return nil
}

// WriteFileAtomic writes data next to path under a temporary name and renames
// it into place. Readers see either the previous content or the new content.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return errors.Wrapf(err, "failed to create temporary file in %s", dir)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
	}

	if _, err := tmp.Write(data); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to write %s", tmpName)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return errors.Wrapf(err, "failed to sync %s", tmpName)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to close %s", tmpName)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to set permissions on %s", tmpName)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return errors.Wrapf(err, "failed to move %s into place", path)
	}
	return nil
}
