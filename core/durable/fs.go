package durable

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sys/unix"
)

const (
	// dirPerm keeps the storage directory out of reach of other users;
	// session identifiers and per-session values live here.
	dirPerm  = 0o700
	filePerm = 0o600
)

// FS is a filesystem-backed Store. Each named value is a single file inside
// a dedicated directory; updates are serialized with an advisory lock file
// per name, and saves go through a temp file followed by rename so readers
// never observe partial writes.
type FS struct {
	dir string
}

// NewFS creates a filesystem store rooted at dir, creating the directory
// (non-public-readable) if it does not exist yet.
func NewFS(dir string) (*FS, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty directory", ErrStorageUnavailable)
	}
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return &FS{dir: dir}, nil
}

// Dir returns the storage directory path.
func (f *FS) Dir() string {
	return f.dir
}

func (f *FS) Load(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := f.path(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, errors.Join(ErrStorageUnavailable, err)
	}
	return data, nil
}

func (f *FS) Save(ctx context.Context, name string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(name)
	if err != nil {
		return err
	}
	return f.writeAtomic(path, data)
}

func (f *FS) Update(ctx context.Context, name string, fn func(data []byte, found bool) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := f.path(name)
	if err != nil {
		return err
	}

	lock, err := os.OpenFile(path+".lock", os.O_CREATE|os.O_RDWR, filePerm)
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	defer lock.Close()

	if err := unix.Flock(int(lock.Fd()), unix.LOCK_EX); err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	// The lock is also released when the descriptor closes.
	defer unix.Flock(int(lock.Fd()), unix.LOCK_UN)

	data, err := os.ReadFile(path)
	found := true
	if err != nil {
		if !os.IsNotExist(err) {
			return errors.Join(ErrStorageUnavailable, err)
		}
		data, found = nil, false
	}

	next, err := fn(data, found)
	if err != nil {
		return err
	}

	return f.writeAtomic(path, next)
}

// writeAtomic writes data next to path and renames it into place.
func (f *FS) writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(f.dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return errors.Join(ErrStorageUnavailable, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return errors.Join(ErrStorageUnavailable, err)
	}
	return nil
}

// path maps a value name to a file path, rejecting names that could escape
// the storage directory or collide with lock/temp files.
func (f *FS) path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, "/\\") || strings.Contains(name, "..") || strings.Contains(name, ".lock") || strings.Contains(name, ".tmp-") {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return filepath.Join(f.dir, name), nil
}
