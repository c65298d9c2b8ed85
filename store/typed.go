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
	"errors"
	"fmt"
)

// GetJSON fetches key and unmarshals it into a new T. It returns
// (zero, false, nil) when the key is absent, mirroring the Rust
// storage.get::<T>() -> Option<T> convention the cipher keystore relies on.
func GetJSON[T any](s KVStore, key string) (T, bool, error) {
	var out T
	raw, err := s.Get(key)
	if errors.Is(err, ErrNotFound) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("store: decode %s: %w", key, err)
	}
	return out, true, nil
}

// SetJSON marshals value as JSON and stores it under key.
func SetJSON[T any](s KVStore, key string, value T) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("store: encode %s: %w", key, err)
	}
	return s.Set(key, raw)
}
