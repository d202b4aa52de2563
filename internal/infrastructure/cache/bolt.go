package cache

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	bolt "go.etcd.io/bbolt"

	"arxivdigest/internal/ports"
)

// Bolt persists collaborator results across runs, so re-generating a page
// does not re-fetch every detail abstract or re-pay for enrichment calls.
type Bolt struct {
	db *bolt.DB
}

var _ ports.Cache = (*Bolt)(nil)

// OpenBolt opens (creating if needed) the cache database at path.
func OpenBolt(path string) (*Bolt, error) {
	if path == "" {
		return nil, errors.New("cache: missing path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, err
	}
	return &Bolt{db: db}, nil
}

// Close releases the underlying database.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the cached value for key within bucket.
func (b *Bolt) Get(bucket, key string) (string, bool) {
	var value string
	var found bool
	_ = b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket([]byte(bucket))
		if bkt == nil {
			return nil
		}
		if raw := bkt.Get([]byte(key)); raw != nil {
			value = string(raw)
			found = true
		}
		return nil
	})
	return value, found
}

// Set stores value under key within bucket, creating the bucket on demand.
func (b *Bolt) Set(bucket, key, value string) error {
	return b.db.Update(func(tx *bolt.Tx) error {
		bkt, err := tx.CreateBucketIfNotExists([]byte(bucket))
		if err != nil {
			return err
		}
		return bkt.Put([]byte(key), []byte(value))
	})
}
