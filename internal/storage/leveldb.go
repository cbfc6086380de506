package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"
)

const configKeyPrefix = "config/"

// LevelDBConfigStore keeps configuration in an embedded LevelDB database
type LevelDBConfigStore struct {
	db *leveldb.DB
}

// OpenLevelDBConfigStore opens or creates the database at path
func OpenLevelDBConfigStore(path string) (*LevelDBConfigStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, persistenceErr("open", errors.Wrap(err, "create store dir"))
	}
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, persistenceErr("open", errors.Wrapf(err, "open leveldb at %s", path))
	}
	return &LevelDBConfigStore{db: db}, nil
}

func (s *LevelDBConfigStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, persistenceErr("get", err)
	}
	val, err := s.db.Get(configKey(key), nil)
	if err == leveldb.ErrNotFound {
		return "", false, nil
	}
	if err != nil {
		return "", false, persistenceErr("get", errors.Wrapf(err, "get %q", key))
	}
	return string(val), true, nil
}

func (s *LevelDBConfigStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return persistenceErr("set", err)
	}
	if err := s.db.Put(configKey(key), []byte(value), nil); err != nil {
		return persistenceErr("set", errors.Wrapf(err, "put %q", key))
	}
	return nil
}

// SetMany writes all values in a single batch
func (s *LevelDBConfigStore) SetMany(ctx context.Context, values map[string]string) error {
	if err := ctx.Err(); err != nil {
		return persistenceErr("set", err)
	}
	batch := new(leveldb.Batch)
	for k, v := range values {
		batch.Put(configKey(k), []byte(v))
	}
	if err := s.db.Write(batch, nil); err != nil {
		return persistenceErr("set", errors.Wrap(err, "write batch"))
	}
	return nil
}

func (s *LevelDBConfigStore) All(ctx context.Context) (map[string]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, persistenceErr("list", err)
	}
	out := make(map[string]string)
	iter := s.db.NewIterator(util.BytesPrefix([]byte(configKeyPrefix)), nil)
	defer iter.Release()
	for iter.Next() {
		key := string(iter.Key()[len(configKeyPrefix):])
		out[key] = string(iter.Value())
	}
	if err := iter.Error(); err != nil {
		return nil, persistenceErr("list", errors.Wrap(err, "iterate config"))
	}
	return out, nil
}

func (s *LevelDBConfigStore) Close() error {
	return persistenceErr("close", s.db.Close())
}

func configKey(key string) []byte {
	return []byte(configKeyPrefix + key)
}
