// Package storage persists uploaded media blobs on local disk and maps them
// to the public URLs embedded in posts.
package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Store writes blobs under root/<authorID>/<filename>. A re-upload with the
// same filename silently overwrites the previous blob; the URL stays stable.
type Store struct {
	root      string
	publicURL string
}

// NewStore creates the root directory if needed. publicURL is the path prefix
// media is served from, e.g. "/media/u".
func NewStore(root, publicURL string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("storage root is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Store{root: root, publicURL: publicURL}, nil
}

// Put stores data under the author's directory and returns the public URL.
func (s *Store) Put(authorID uint, filename string, data []byte) (string, error) {
	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}

	dir := filepath.Join(s.root, strconv.FormatUint(uint64(authorID), 10))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create author dir: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("write blob: %w", err)
	}

	return fmt.Sprintf("%s/%d/%s", s.publicURL, authorID, name), nil
}

// Path resolves a stored blob to its on-disk path for serving.
func (s *Store) Path(authorID uint, filename string) (string, error) {
	name, err := cleanName(filename)
	if err != nil {
		return "", err
	}
	p := filepath.Join(s.root, strconv.FormatUint(uint64(authorID), 10), name)
	if _, err := os.Stat(p); err != nil {
		return "", err
	}
	return p, nil
}

// cleanName rejects names that would escape the author's directory.
func cleanName(filename string) (string, error) {
	if filename == "" {
		return "", fmt.Errorf("filename is required")
	}
	name := filepath.Base(filepath.Clean(filename))
	if name == "." || name == ".." || name == string(filepath.Separator) {
		return "", fmt.Errorf("invalid filename %q", filename)
	}
	return name, nil
}
