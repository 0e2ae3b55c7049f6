package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/opd-ai/bluedrop/limits"
)

// ErrUnsafeFileName indicates a declared file name that would resolve
// outside the upload root or contains forbidden bytes.
var ErrUnsafeFileName = errors.New("unsafe file name")

// SanitizeFileName validates a client-declared file name. The name must be a
// bare file name: no NUL bytes, no absolute-path prefix, no path separators
// and no parent-directory segments survive. It returns the cleaned name or
// ErrUnsafeFileName; nothing is ever stripped silently.
func SanitizeFileName(name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", ErrUnsafeFileName)
	}
	if err := limits.ValidateFileName([]byte(name)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnsafeFileName, err)
	}
	if strings.ContainsRune(name, 0) {
		return "", fmt.Errorf("%w: name contains NUL byte", ErrUnsafeFileName)
	}
	if filepath.IsAbs(name) {
		return "", fmt.Errorf("%w: absolute path %q", ErrUnsafeFileName, name)
	}

	cleaned := filepath.Clean(name)
	if strings.ContainsAny(cleaned, `/\`) {
		return "", fmt.Errorf("%w: name %q contains a path separator", ErrUnsafeFileName, name)
	}
	if cleaned == "." || cleaned == ".." {
		return "", fmt.Errorf("%w: name %q is a directory reference", ErrUnsafeFileName, name)
	}

	return cleaned, nil
}

// ResolvePath turns a client-declared file name into an absolute destination
// path inside root. If the sanitized name already exists, a numeric suffix
// is inserted before the extension ("name.txt", "name (1).txt", ...) until
// an unused path is found; an existing file is never chosen for overwrite.
func ResolvePath(root, name string) (string, error) {
	cleaned, err := SanitizeFileName(name)
	if err != nil {
		return "", err
	}

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving upload root: %w", err)
	}

	candidate := filepath.Join(absRoot, cleaned)

	// The sanitizer already forbids everything that could escape, but paths
	// are security-sensitive enough to verify the containment invariant on
	// the final result as well.
	if candidate != absRoot && !strings.HasPrefix(candidate, absRoot+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %q escapes upload root", ErrUnsafeFileName, name)
	}
	if candidate == absRoot {
		return "", fmt.Errorf("%w: %q resolves to the upload root itself", ErrUnsafeFileName, name)
	}

	ext := filepath.Ext(cleaned)
	stem := strings.TrimSuffix(cleaned, ext)

	for n := 0; ; n++ {
		if n > 0 {
			candidate = filepath.Join(absRoot, fmt.Sprintf("%s (%d)%s", stem, n, ext))
		}
		if _, err := os.Lstat(candidate); err != nil {
			if os.IsNotExist(err) {
				return candidate, nil
			}
			return "", fmt.Errorf("probing %q: %w", candidate, err)
		}
	}
}
