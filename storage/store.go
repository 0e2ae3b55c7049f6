package storage

import (
	"fmt"
	"os"

	"github.com/google/renameio/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/blake2b"
)

// Directory and file permission modes for persisted uploads.
const (
	uploadDirPerms  os.FileMode = 0o700
	uploadFilePerms os.FileMode = 0o600
)

// Store writes completed uploads into a single upload root directory. It
// implements the transfer package's Store interface.
type Store struct {
	root string
}

// NewStore creates a store rooted at the given directory, creating the
// directory if it does not exist.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("upload root must not be empty")
	}
	if err := os.MkdirAll(root, uploadDirPerms); err != nil {
		return nil, fmt.Errorf("creating upload root %q: %w", root, err)
	}

	logrus.WithFields(logrus.Fields{
		"function": "NewStore",
		"root":     root,
	}).Info("Upload store initialized")

	return &Store{root: root}, nil
}

// Root returns the upload root directory.
func (s *Store) Root() string {
	return s.root
}

// Save persists data under the client-declared name and returns the final
// path. The name is sanitized and de-collided by ResolvePath; the bytes are
// written to a temporary file in the destination directory and renamed into
// place, so a crash mid-write never exposes a truncated file under the
// final name. The rename gives visibility atomicity, not durability to
// physical storage.
func (s *Store) Save(name string, data []byte) (string, error) {
	// The root may have been removed since startup; a commit must not fail
	// on a missing directory that we can simply recreate.
	if err := os.MkdirAll(s.root, uploadDirPerms); err != nil {
		return "", fmt.Errorf("recreating upload root %q: %w", s.root, err)
	}

	path, err := ResolvePath(s.root, name)
	if err != nil {
		return "", err
	}

	if err := renameio.WriteFile(path, data, uploadFilePerms); err != nil {
		return "", fmt.Errorf("writing %q: %w", path, err)
	}

	digest := blake2b.Sum256(data)

	logrus.WithFields(logrus.Fields{
		"function": "Save",
		"path":     path,
		"size":     len(data),
		"blake2b":  fmt.Sprintf("%x", digest[:8]),
	}).Info("Upload persisted")

	return path, nil
}
