package main

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pushrelay/client-go/storage"
)

// fileStore persists values as files under a directory, so key material
// generated by one invocation is readable by the next.
type fileStore struct {
	dir string
}

func newFileStore(dir string) (*fileStore, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}
	return &fileStore{dir: dir}, nil
}

func (f *fileStore) path(key string) string {
	return filepath.Join(f.dir, key+".json")
}

func (f *fileStore) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(f.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, storage.ErrDataNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (f *fileStore) Put(key string, value []byte) error {
	return os.WriteFile(f.path(key), value, 0o600)
}
