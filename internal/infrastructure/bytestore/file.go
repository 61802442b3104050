package bytestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"
	"syscall"

	"medicore/internal/store"

	"github.com/spf13/afero"
)

// File keeps each key as a file in one directory. Writes go to a temp file
// that is renamed over the target, so a crash never leaves a torn snapshot.
type File struct {
	fs  afero.Fs
	dir string
}

// NewFile creates the directory if needed.
func NewFile(fsys afero.Fs, dir string) (*File, error) {
	if err := fsys.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	return &File{fs: fsys, dir: dir}, nil
}

func (f *File) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("invalid snapshot key %q", key)
	}
	return filepath.Join(f.dir, key), nil
}

func (f *File) Load(_ context.Context, key string) ([]byte, error) {
	p, err := f.path(key)
	if err != nil {
		return nil, err
	}
	b, err := afero.ReadFile(f.fs, p)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, store.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("read snapshot %s: %w", p, err)
	}
	return b, nil
}

func (f *File) Save(_ context.Context, key string, data []byte) error {
	p, err := f.path(key)
	if err != nil {
		return err
	}

	tmp, err := afero.TempFile(f.fs, f.dir, key+".tmp-*")
	if err != nil {
		return fileErr("create temp snapshot", err)
	}
	tmpName := tmp.Name()

	_, err = tmp.Write(data)
	if err == nil {
		err = tmp.Sync()
	}
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		f.fs.Remove(tmpName)
		return fileErr("write snapshot", err)
	}

	if err := f.fs.Rename(tmpName, p); err != nil {
		f.fs.Remove(tmpName)
		return fileErr("replace snapshot", err)
	}
	return nil
}

func fileErr(op string, err error) error {
	if errors.Is(err, syscall.ENOSPC) || errors.Is(err, syscall.EDQUOT) || errors.Is(err, syscall.EFBIG) {
		return fmt.Errorf("%s: %w: %v", op, store.ErrStorageQuotaExceeded, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
