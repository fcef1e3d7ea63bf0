package boltdb

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"
)

// Open initializes the BoltDB file and ensures the bucket exists, logging
// whether the file was already there or had to be created.
func Open(path string, bucket string, logger *zap.Logger) (*bolt.DB, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if bucket == "" {
		return nil, errors.New("boltdb: bucket name required")
	}

	existed, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if existed {
		logger.Info("task store exists", zap.String("driver", "bolt"), zap.String("path", path))
	} else {
		logger.Warn("task store doesn't exist, creating", zap.String("driver", "bolt"), zap.String("path", path))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists([]byte(bucket))
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}

	if !existed {
		logger.Info("task store created", zap.String("driver", "bolt"), zap.String("path", path))
	}
	return db, nil
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
