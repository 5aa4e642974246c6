// Package storage provides the local-filesystem artifact store.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// LocalStore persists artifacts under a root directory.
type LocalStore struct {
	Root string
}

func NewLocalStore(root string) *LocalStore {
	return &LocalStore{Root: root}
}

// Write persists data under name relative to the root and returns the path
// written. Parent directories are created as needed.
func (s *LocalStore) Write(ctx context.Context, name string, data []byte) (string, error) {
	path := filepath.Join(s.Root, name)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("creating artifact dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing artifact %s: %w", path, err)
	}
	return path, nil
}

// Read returns the contents of the artifact stored under name.
func (s *LocalStore) Read(ctx context.Context, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.Root, name))
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", name, err)
	}
	return data, nil
}
