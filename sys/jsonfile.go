package sys

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	dataDirMode   = 0o755
	dataFileMode  = 0o644
	tempFileGlob  = ".*.json.tmp"
	emptyJSONList = "[]"
)

var (
	pathLocksMu sync.Mutex
	pathLocks   = map[string]*sync.Mutex{}
)

// JSONFile is a flat file holding a JSON array of T. Reads are fail-soft and
// every read-modify-write on the same path is serialized.
type JSONFile[T any] struct {
	path string
	mu   *sync.Mutex
}

func NewJSONFile[T any](path string) *JSONFile[T] {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	return &JSONFile[T]{path: filepath.Clean(path), mu: lockForPath(path)}
}

func (f *JSONFile[T]) Path() string {
	return f.path
}

// Load returns the stored items. Missing, empty or malformed files yield an empty slice.
func (f *JSONFile[T]) Load() []T {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Update applies fn to the stored items and writes the result back atomically.
func (f *JSONFile[T]) Update(fn func(items []T) []T) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := fn(f.read())
	if items == nil {
		items = []T{}
	}
	return f.write(items)
}

func (f *JSONFile[T]) read() []T {
	if err := f.ensure(); err != nil {
		LogStore(MsgStoreEnsureFail, f.path, err)
		return []T{}
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		LogStore(MsgStoreReadFail, f.path, err)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		LogStore(MsgStoreParseFail, f.path, err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

// ensure creates the data directory and seeds a missing or blank file with an empty array.
func (f *JSONFile[T]) ensure() error {
	if err := os.MkdirAll(filepath.Dir(f.path), dataDirMode); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	data, err := os.ReadFile(f.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("read %s: %w", filepath.Base(f.path), err)
	}
	if len(bytes.TrimSpace(data)) > 0 {
		return nil
	}
	return os.WriteFile(f.path, []byte(emptyJSONList), dataFileMode)
}

func (f *JSONFile[T]) write(items []T) error {
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", filepath.Base(f.path), err)
	}

	if err := os.MkdirAll(filepath.Dir(f.path), dataDirMode); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(f.path), tempFileGlob)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Chmod(dataFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tempName, f.path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(f.path), err)
	}

	cleanup = false
	return nil
}

func lockForPath(path string) *sync.Mutex {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	path = filepath.Clean(path)

	pathLocksMu.Lock()
	defer pathLocksMu.Unlock()

	if mu, ok := pathLocks[path]; ok {
		return mu
	}
	mu := &sync.Mutex{}
	pathLocks[path] = mu
	return mu
}
