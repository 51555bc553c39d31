package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// FileCollection keeps a collection as one indented JSON array in a single file.
type FileCollection[T any] struct {
	fs   afero.Fs
	name string
	path string
}

// NewFileCollection returns a collection stored at dir/<name>.json on fs.
func NewFileCollection[T any](fs afero.Fs, dir, name string) *FileCollection[T] {
	return &FileCollection[T]{fs: fs, name: name, path: filepath.Join(dir, name+".json")}
}

func (f *FileCollection[T]) Name() string { return f.name }

// Path returns the backing file location.
func (f *FileCollection[T]) Path() string { return f.path }

// Init creates the data directory and an empty collection file when absent.
func (f *FileCollection[T]) Init(ctx context.Context) error {
	exists, err := afero.Exists(f.fs, f.path)
	if err != nil {
		return storageErr(f.name, "init", err)
	}
	if exists {
		return nil
	}
	if err := f.Save(ctx, nil); err != nil {
		return err
	}
	return nil
}

func (f *FileCollection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(f.fs, f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, storageErr(f.name, "load", err)
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, storageErr(f.name, "load", fmt.Errorf("decode %s: %w", f.path, err))
	}
	return nonNil(records), nil
}

// Save writes the full sequence to a temporary sibling file and renames it
// over the backing file, so readers see either the old or the new array.
func (f *FileCollection[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(nonNil(records), "", "  ")
	if err != nil {
		return storageErr(f.name, "save", err)
	}
	if err := f.fs.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return storageErr(f.name, "save", err)
	}
	tmp := f.path + ".tmp"
	if err := afero.WriteFile(f.fs, tmp, data, 0o644); err != nil {
		return storageErr(f.name, "save", err)
	}
	if err := f.fs.Rename(tmp, f.path); err != nil {
		_ = f.fs.Remove(tmp)
		return storageErr(f.name, "save", err)
	}
	return nil
}
