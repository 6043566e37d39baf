package report

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

const (
	// HTMLFile is the page artifact name
	HTMLFile = "index.html"

	// JSONFile is the export artifact name
	JSONFile = "odds.json"
)

// Artifacts lists the files written by one run
type Artifacts struct {
	HTMLPath string
	JSONPath string // Empty when no JSON was produced
}

// WriteArtifacts writes the report into dir, creating it if needed. Existing files are
// overwritten. The placeholder report writes only index.html and removes any odds.json
// left by an earlier run.
func WriteArtifacts(dir string, r *Report, location *time.Location) (*Artifacts, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	var page bytes.Buffer
	if err := RenderHTML(&page, r, location); err != nil {
		return nil, err
	}

	artifacts := &Artifacts{HTMLPath: filepath.Join(dir, HTMLFile)}
	if err := writeFile(artifacts.HTMLPath, page.Bytes()); err != nil {
		return nil, err
	}

	jsonPath := filepath.Join(dir, JSONFile)
	if r.NoGames {
		if err := os.Remove(jsonPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("remove stale %s: %w", JSONFile, err)
		}
		return artifacts, nil
	}

	var export bytes.Buffer
	if err := RenderJSON(&export, r); err != nil {
		return nil, err
	}
	if err := writeFile(jsonPath, export.Bytes()); err != nil {
		return nil, err
	}
	artifacts.JSONPath = jsonPath

	return artifacts, nil
}

// writeFile replaces path atomically so a reader never sees a partial artifact
func writeFile(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}
