// Package local implements the on-disk JSON artifact store.
package local

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrPathTraversal is returned for artifact names that escape the base directory.
var ErrPathTraversal = errors.New("path traversal detected")

// Config captures the parameters for the local artifact store.
type Config struct {
	// BaseDir is the directory the artifacts are read from and written to.
	BaseDir string `mapstructure:"base_dir" yaml:"base_dir"`
}

// Store reads and writes whole JSON files under a base directory.
// Writes overwrite in place; there is no locking or atomic rename.
type Store struct {
	baseDir string
}

// New creates a new local filesystem-backed store.
func New(cfg Config) (*Store, error) {
	if strings.TrimSpace(cfg.BaseDir) == "" {
		return nil, fmt.Errorf("base directory is required")
	}

	info, err := os.Stat(cfg.BaseDir)
	if err != nil {
		if os.IsNotExist(err) {
			if mkErr := os.MkdirAll(cfg.BaseDir, 0o750); mkErr != nil {
				return nil, fmt.Errorf("failed to create base directory: %w", mkErr)
			}
		} else {
			return nil, fmt.Errorf("failed to stat base directory: %w", err)
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("base directory path is not a directory")
	}

	return &Store{
		baseDir: cfg.BaseDir,
	}, nil
}

// CheckWritable fails when the base directory cannot take new files. Stages
// that write call it before doing any work; read-only stages never do.
func (s *Store) CheckWritable() error {
	testFile := filepath.Join(s.baseDir, ".writable_test")
	if err := os.WriteFile(testFile, []byte("test"), 0o600); err != nil {
		return fmt.Errorf("base directory is not writable: %w", err)
	}
	if err := os.Remove(testFile); err != nil {
		return fmt.Errorf("failed to clean up test file: %w", err)
	}
	return nil
}

// Path returns the absolute location of the named artifact.
func (s *Store) Path(name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", fmt.Errorf("name is required")
	}

	cleanBaseDir := filepath.Clean(s.baseDir)
	cleanFullPath := filepath.Clean(filepath.Join(s.baseDir, name))
	rel, err := filepath.Rel(cleanBaseDir, cleanFullPath)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrPathTraversal
	}
	return cleanFullPath, nil
}

// ReadJSON decodes the named artifact into v.
func (s *Store) ReadJSON(name string, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	// #nosec G304 -- path is confined to the base directory above.
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

// WriteJSON replaces the named artifact with v, pretty-printed.
func (s *Store) WriteJSON(name string, v any) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	payload, err := Encode(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create parent directories: %w", err)
	}
	// #nosec G306 -- the documentation artifact is meant to be shared.
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Encode renders v as two-space indented JSON without HTML escaping and
// without a trailing newline.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}
