// Copyright 2025 Redfin Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


// Package cache provides a BadgerDB-backed annotation cache.
//
// Entries are keyed by annotation kind plus a content hash of the record's
// title and description, so a rerun over unchanged articles reuses earlier
// model output instead of calling the model again. Only successful model
// results are cached; failures are always retried on the next run.
package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/redfinlabs/annotate/core"
)

// Annotation kinds stored in the cache.
const (
	KindTags     = "tags"
	KindCategory = "category"
)

// ErrNotFound is returned when no entry exists for a key.
var ErrNotFound = errors.New("cache entry not found")

// Cache is a persistent annotation store. It is safe for concurrent use.
type Cache struct {
	db     *badger.DB
	logger *slog.Logger
}

// badgerLoggerAdapter adapts slog.Logger to badger.Logger.
type badgerLoggerAdapter struct {
	logger *slog.Logger
}

var _ badger.Logger = (*badgerLoggerAdapter)(nil)

func (bl *badgerLoggerAdapter) Errorf(msg string, items ...any) {
	bl.logger.Error(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Warningf(msg string, items ...any) {
	bl.logger.Warn(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Infof(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

func (bl *badgerLoggerAdapter) Debugf(msg string, items ...any) {
	bl.logger.Debug(fmt.Sprintf(msg, items...))
}

// Open opens (or creates) a cache at the given directory.
func Open(dir string) (*Cache, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, err
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	} else if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", dir)
	}

	return open(badger.DefaultOptions(dir))
}

// OpenInMemory opens a cache that lives only for the process. Used in
// tests and for runs that want deduplication within a single input file.
func OpenInMemory() (*Cache, error) {
	return open(badger.DefaultOptions("").WithInMemory(true))
}

func open(opts badger.Options) (*Cache, error) {
	logger := slog.Default().With("component", "cache")
	opts.Logger = &badgerLoggerAdapter{logger: logger}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Cache{db: db, logger: logger}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// GetStrings loads a cached string list (tag annotations).
func (c *Cache) GetStrings(kind string, id core.ID) ([]string, error) {
	data, err := c.get(kind, id)
	if err != nil {
		return nil, err
	}
	var values []string
	if err := json.Unmarshal(data, &values); err != nil {
		return nil, err
	}
	return values, nil
}

// PutStrings stores a string list under kind and content ID.
func (c *Cache) PutStrings(kind string, id core.ID, values []string) error {
	data, err := json.Marshal(values)
	if err != nil {
		return err
	}
	return c.put(kind, id, data)
}

// GetString loads a cached single string (category annotations).
func (c *Cache) GetString(kind string, id core.ID) (string, error) {
	data, err := c.get(kind, id)
	if err != nil {
		return "", err
	}
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return "", err
	}
	return value, nil
}

// PutString stores a single string under kind and content ID.
func (c *Cache) PutString(kind string, id core.ID, value string) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return c.put(kind, id, data)
}

func (c *Cache) get(kind string, id core.ID) ([]byte, error) {
	key := makeKey(kind, id)
	var data []byte
	err := c.db.View(func(tx *badger.Txn) error {
		item, err := tx.Get(key)
		if err != nil {
			return err
		}
		data, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

func (c *Cache) put(kind string, id core.ID, data []byte) error {
	key := makeKey(kind, id)
	return c.db.Update(func(tx *badger.Txn) error {
		return tx.Set(key, data)
	})
}

// makeKey builds a key of the form "<kind>:<8-byte big-endian id>".
func makeKey(kind string, id core.ID) []byte {
	prefix := []byte(kind + ":")
	return append(prefix, id.Bytes()...)
}
