// Package filex contains filesystem helpers for the console's local state
// (session database and sealing key).
package filex

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// AppDirName is the directory created under the user's config dir.
const AppDirName = "useradmin"

// DefaultDataDir returns <user config dir>/useradmin, or ./.useradmin when the
// platform has no notion of a config dir.
func DefaultDataDir() string {
	base, err := os.UserConfigDir()
	if err != nil || base == "" {
		return "." + AppDirName
	}
	return filepath.Join(base, AppDirName)
}

// EnsureDir creates dir (and parents) readable by the owner only and returns
// its absolute path.
func EnsureDir(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("abs %s: %w", dir, err)
	}
	if err := os.MkdirAll(abs, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", abs, err)
	}
	return abs, nil
}

// ReadOrCreate returns the content of path. If the file does not exist it is
// created with mode 0600 and the bytes produced by gen. Concurrent creators
// race on O_EXCL; the loser reads the winner's file.
func ReadOrCreate(path string, gen func() []byte) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return os.ReadFile(path)
		}
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	data = gen()
	if _, err := f.Write(data); err != nil {
		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	return data, nil
}
