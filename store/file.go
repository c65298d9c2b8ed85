// Cartera Mesh
// Copyright (C) 2026 cartera-mesh
//
// This file is part of Cartera Mesh.
//
// Cartera Mesh is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Cartera Mesh is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Cartera Mesh. If not, see <https://www.gnu.org/licenses/>.

package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// fileStore is a memoryStore whose contents are persisted to a single JSON
// file on every mutation. Adequate for a CLI demo process; not intended for
// high write volume or multi-process access.
type fileStore struct {
	mu   sync.Mutex
	path string
	mem  *memoryStore
}

// Open returns a KVStore for kind ("memory" or "file"). For "file", path
// names the JSON file backing it; it is created empty if missing.
func Open(kind, path string) (KVStore, error) {
	switch kind {
	case "", "memory":
		return NewMemory(), nil
	case "file":
		return newFileStore(path)
	default:
		return nil, fmt.Errorf("store: unknown kind %q", kind)
	}
}

func newFileStore(path string) (KVStore, error) {
	fs := &fileStore{path: path, mem: &memoryStore{data: make(map[string][]byte)}}
	if err := fs.load(); err != nil {
		return nil, err
	}
	return fs, nil
}

func (fs *fileStore) load() error {
	raw, err := os.ReadFile(fs.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("store: read %s: %w", fs.path, err)
	}
	if len(raw) == 0 {
		return nil
	}
	var data map[string][]byte
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("store: decode %s: %w", fs.path, err)
	}
	fs.mem.data = data
	return nil
}

func (fs *fileStore) persist() error {
	fs.mem.mu.RLock()
	raw, err := json.Marshal(fs.mem.data)
	fs.mem.mu.RUnlock()
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", fs.path, err)
	}
	if dir := filepath.Dir(fs.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("store: mkdir %s: %w", dir, err)
		}
	}
	return os.WriteFile(fs.path, raw, 0o600)
}

func (fs *fileStore) Get(key string) ([]byte, error) {
	return fs.mem.Get(key)
}

func (fs *fileStore) Set(key string, value []byte) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := fs.mem.Set(key, value); err != nil {
		return err
	}
	return fs.persist()
}

func (fs *fileStore) Delete(key string) error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := fs.mem.Delete(key); err != nil {
		return err
	}
	return fs.persist()
}

func (fs *fileStore) Clear() error {
	fs.mu.Lock()
	defer fs.mu.Unlock()
	if err := fs.mem.Clear(); err != nil {
		return err
	}
	return fs.persist()
}

func (fs *fileStore) Keys() ([]string, error) {
	return fs.mem.Keys()
}
