// Package taskfile persists a task store as a JSONL file, one task per
// line. Session-local fields are never written. Writers serialize on an
// advisory lock next to the file.
package taskfile

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"syscall"

	"github.com/amonks/tasktree/task"
)

const maxJSONLineBytes = 1024 * 1024

// Load reads the task file at path into a store. A missing file yields an
// empty store.
func Load(path string) (*task.Store, error) {
	var store *task.Store
	err := withFileLock(lockPath(path), func() error {
		var err error
		store, err = load(path)
		return err
	})
	return store, err
}

// Update loads the task file, applies fn, and writes the result back while
// holding the lock. Nothing is written when fn fails.
func Update(path string, fn func(*task.Store) error) error {
	return withFileLock(lockPath(path), func() error {
		store, err := load(path)
		if err != nil {
			return err
		}
		if err := fn(store); err != nil {
			return err
		}
		return writeJSONL(path, store.AllTasks())
	})
}

func load(path string) (*task.Store, error) {
	tasks, err := readJSONL[task.Task](path)
	if err != nil {
		return nil, fmt.Errorf("read tasks: %w", err)
	}
	store, err := task.Restore(tasks)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return store, nil
}

func lockPath(path string) string {
	return path + ".lock"
}

// withFileLock executes fn while holding an exclusive lock on the file at path.
// Creates the file if it doesn't exist.
func withFileLock(path string, fn func() error) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create parent dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return fmt.Errorf("open file for locking: %w", err)
	}
	defer f.Close()

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_EX); err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	defer syscall.Flock(int(f.Fd()), syscall.LOCK_UN)

	return fn()
}

// readJSONL reads all JSON objects from a JSONL file into a slice.
func readJSONL[T any](path string) ([]T, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return readJSONLFromReader[T](f)
}

func readJSONLFromReader[T any](reader io.Reader) ([]T, error) {
	var items []T
	scanner := bufio.NewScanner(reader)
	scanner.Buffer(make([]byte, 0, 64*1024), maxJSONLineBytes)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var item T
		if err := json.Unmarshal(line, &item); err != nil {
			return nil, fmt.Errorf("parse line %d: %w", lineNum, err)
		}
		items = append(items, item)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan file: %w", err)
	}

	return items, nil
}

// writeJSONL writes a slice of items to a JSONL file, overwriting any existing content.
func writeJSONL[T any](path string, items []T) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	encoder := json.NewEncoder(f)
	for i, item := range items {
		if err := encoder.Encode(item); err != nil {
			f.Close()
			os.Remove(tmpPath)
			return fmt.Errorf("encode item %d: %w", i, err)
		}
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
