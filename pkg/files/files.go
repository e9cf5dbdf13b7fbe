// Package files provides the file primitives the diary store consumes: a
// readable named source, and savers that either ask the user where to write
// or drop the file into a downloads directory.
package files

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// ErrCancelled is returned by a Saver when the user dismissed the prompt.
// It is a normal outcome, not a failure.
var ErrCancelled = errors.New("files: save cancelled")

// Source is an opened file the diary can be loaded from.
type Source interface {
	Name() string
	ReadAll(ctx context.Context) ([]byte, error)
}

// Saver writes data somewhere the user can find it and returns the path it
// was written to.
type Saver interface {
	Save(ctx context.Context, suggestedName string, data []byte) (string, error)
}

// Open returns a Source for path. The file is read lazily by ReadAll.
func Open(path string) (*OSFile, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, fmt.Errorf("files: open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("files: %s is a directory", path)
	}
	return &OSFile{path: abs}, nil
}

// OSFile is a Source backed by the local filesystem.
type OSFile struct {
	path string
}

// Name is the base name, which becomes the session's file name.
func (f *OSFile) Name() string {
	return filepath.Base(f.path)
}

// Path is the absolute path.
func (f *OSFile) Path() string {
	return f.path
}

// Dir is the directory holding the file.
func (f *OSFile) Dir() string {
	return filepath.Dir(f.path)
}

func (f *OSFile) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r, err := os.Open(f.path)
	if err != nil {
		return nil, fmt.Errorf("files: read %s: %w", f.Name(), err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("files: read %s: %w", f.Name(), err)
	}
	return data, nil
}

// Bytes is an in-memory Source.
type Bytes struct {
	FileName string
	Data     []byte
}

func (b Bytes) Name() string {
	return b.FileName
}

func (b Bytes) ReadAll(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return b.Data, nil
}

// writeFile writes data to path atomically: a temp file in the same
// directory is synced and renamed over the target.
func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("files: create directories: %w", err)
	}
	temp, err := os.CreateTemp(dir, ".notd-*")
	if err != nil {
		return err
	}
	defer os.Remove(temp.Name())

	if _, err := temp.Write(data); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Sync(); err != nil {
		temp.Close()
		return err
	}
	if err := temp.Close(); err != nil {
		return err
	}

	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode()
	}
	if err := os.Chmod(temp.Name(), mode); err != nil {
		return err
	}
	return os.Rename(temp.Name(), path)
}
