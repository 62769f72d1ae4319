package fhir

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// NDJSON helpers for the flat record files this service persists to: one
// JSON document per line, the format the clinical record exports use.

const maxLineSize = 1024 * 1024

// ReadLines opens an NDJSON file and calls fn with each non-blank line.
// Open errors are returned to the caller; a repository that treats a
// missing file as an empty store checks os.IsNotExist itself.
func ReadLines(path string, fn func(line []byte) error) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		if err := fn(line); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// AppendLine marshals doc and appends it to path as a single line, creating
// the file when absent. The write is synced before returning so a recorded
// administration survives a crash.
func AppendLine(path string, doc interface{}) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	if _, err := f.Write(append(data, '\n')); err != nil {
		return err
	}
	return f.Sync()
}

// WriteLinesAtomic writes docs (one JSON line each) to a temporary file in
// the same directory and renames it over path, so a crash mid-rewrite can
// never leave a half-written store behind.
func WriteLinesAtomic(path string, docs []interface{}) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	w := bufio.NewWriter(tmp)
	for _, doc := range docs {
		data, err := json.Marshal(doc)
		if err != nil {
			tmp.Close()
			return err
		}
		if _, err := w.Write(append(data, '\n')); err != nil {
			tmp.Close()
			return err
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// WriteJSONAtomic overwrites path with a single indented JSON document,
// via the same temp-file-and-rename scheme as WriteLinesAtomic.
func WriteJSONAtomic(path string, doc interface{}) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
