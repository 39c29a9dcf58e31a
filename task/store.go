package task

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Load reads and parses the task document at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	if err != nil {
		return nil, fmt.Errorf("read task document: %w", err)
	}
	return Parse(data), nil
}

// Update loads the document at path, applies fn, and replaces the file
// atomically. An exclusive lock on a sibling .lock file serializes
// concurrent updates. When fn returns an error, or leaves the document
// byte-identical, the file on disk is untouched.
func Update(path string, fn func(*Document) error) error {
	lockFile, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open lock file: %w", err)
	}
	defer lockFile.Close()

	if err := syscall.Flock(int(lockFile.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(lockFile.Fd()), syscall.LOCK_UN)

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrDocumentNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("read task document: %w", err)
	}

	doc := Parse(data)
	if err := fn(doc); err != nil {
		return err
	}

	updated := doc.Bytes()
	if bytes.Equal(data, updated) {
		return nil
	}

	return writeAtomic(path, updated)
}

// SetStatus flips the status of one task in the document at path.
func SetStatus(path string, id ID, status Status) error {
	return Update(path, func(doc *Document) error {
		return doc.SetStatus(id, status)
	})
}

// writeAtomic replaces the file at path via a temp file and rename, so a
// failed write never leaves a half-written document behind.
func writeAtomic(path string, data []byte) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename temp file: %w", err)
	}

	return nil
}
