package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
)

// OpenFile loads the dataset from path once and rewrites the whole file on
// every committed Update. A missing file starts an empty dataset; the parent
// directory is created on the first write.
func OpenFile(path string) (*SnapshotStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("data file path is required")
	}

	initial, err := readDataset(path)
	if err != nil {
		return nil, err
	}
	log.Printf("store: loaded %d users, %d projects, %d tasks from %s",
		len(initial.Users), len(initial.Projects), len(initial.Tasks), path)

	return newSnapshotStore(initial, func(d Dataset) error {
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal dataset: %w", err)
		}
		return writeFileAtomic(path, append(data, '\n'), 0o600)
	}), nil
}

func readDataset(path string) (Dataset, error) {
	var d Dataset
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return d, nil
		}
		return d, fmt.Errorf("open data file: %w", err)
	}
	defer f.Close()

	dec := json.NewDecoder(f)
	if err := dec.Decode(&d); err != nil {
		if errors.Is(err, io.EOF) {
			return d, nil
		}
		return d, fmt.Errorf("decode data file %s: %w", path, err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return d, fmt.Errorf("decode data file %s: trailing content", path)
	}
	return d, nil
}

// writeFileAtomic replaces path with data so that readers (and a restart after
// a crash) see either the old file or the new one, never a truncated mix.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmp, bytes.NewReader(data)); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return syncDir(dir)
}

func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
