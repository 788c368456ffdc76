// Package storage is the blob-store collaborator for uploaded ticket
// documents: local disk behind a public URL path. Swappable for an object
// store without touching handlers.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

type Store struct {
	baseDir    string
	publicPath string
}

func New(baseDir, publicPath string) *Store {
	return &Store{baseDir: baseDir, publicPath: strings.TrimSuffix(publicPath, "/")}
}

// Save writes the blob under a ticket-scoped, timestamped name and returns
// the public URL path for it.
func (s *Store) Save(ticketID, filename string, src io.Reader) (string, error) {
	dir := filepath.Join(s.baseDir, "documents", ticketID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), sanitize(filename))
	path := filepath.Join(dir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", err
	}

	return fmt.Sprintf("%s/documents/%s/%s", s.publicPath, ticketID, name), nil
}

// Dir returns the root served under the public path.
func (s *Store) Dir() string {
	return s.baseDir
}

func sanitize(name string) string {
	name = filepath.Base(name)
	replacer := strings.NewReplacer(" ", "-", "..", "-")
	name = replacer.Replace(name)
	if name == "" || name == "." {
		return "upload"
	}
	return name
}
