package repository

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/boltdb/bolt"
)

const queriesBucket = "queries"

// ErrNotFound is returned when no entry is stored under a key.
var ErrNotFound = errors.New("entry not found")

// Entry is a cached query response keyed by its request path.
type Entry struct {
	Key       string          `json:"key"`
	FetchedAt time.Time       `json:"fetchedAt"`
	Data      json.RawMessage `json:"data"`
}

// BoltRepository stores query cache entries in a BoltDB file.
type BoltRepository struct {
	db *bolt.DB
}

// NewBoltRepository opens (or creates) the database at dbPath.
func NewBoltRepository(dbPath string) (*BoltRepository, error) {
	db, err := bolt.Open(dbPath, 0o600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists([]byte(queriesBucket)); err != nil {
			return fmt.Errorf("failed to create queries bucket: %w", err)
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create buckets: %w", err)
	}

	return &BoltRepository{
		db: db,
	}, nil
}

// Save persists an entry, replacing any previous entry for the same key.
func (r *BoltRepository) Save(entry *Entry) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", queriesBucket)
		}

		data, err := json.Marshal(entry)
		if err != nil {
			return fmt.Errorf("failed to marshal entry: %w", err)
		}

		if err := bucket.Put([]byte(entry.Key), data); err != nil {
			return fmt.Errorf("failed to save entry: %w", err)
		}

		return nil
	})
}

// Find retrieves the entry stored under key.
func (r *BoltRepository) Find(key string) (*Entry, error) {
	var entry *Entry

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", queriesBucket)
		}

		data := bucket.Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%w: %s", ErrNotFound, key)
		}

		return json.Unmarshal(data, &entry)
	})
	if err != nil {
		return nil, err
	}

	return entry, nil
}

// FindByPrefix retrieves every entry whose key starts with prefix, in key order.
// An empty prefix matches all entries.
func (r *BoltRepository) FindByPrefix(prefix string) ([]*Entry, error) {
	var entries []*Entry

	err := r.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", queriesBucket)
		}

		p := []byte(prefix)
		c := bucket.Cursor()
		for k, v := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, v = c.Next() {
			var entry Entry
			if err := json.Unmarshal(v, &entry); err != nil {
				return fmt.Errorf("failed to unmarshal entry %s: %w", k, err)
			}
			entries = append(entries, &entry)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// FindAll retrieves all entries.
func (r *BoltRepository) FindAll() ([]*Entry, error) {
	return r.FindByPrefix("")
}

// Delete removes the entry stored under key. Deleting a missing key is not an error.
func (r *BoltRepository) Delete(key string) error {
	return r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", queriesBucket)
		}

		return bucket.Delete([]byte(key))
	})
}

// DeletePrefix removes every entry whose key starts with prefix and returns
// the removed keys. An empty prefix is rejected so a caller cannot wipe the
// whole cache by accident.
func (r *BoltRepository) DeletePrefix(prefix string) ([]string, error) {
	if prefix == "" {
		return nil, errors.New("empty prefix")
	}

	var deleted []string

	err := r.db.Update(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(queriesBucket))
		if bucket == nil {
			return fmt.Errorf("bucket not found: %s", queriesBucket)
		}

		p := []byte(prefix)
		c := bucket.Cursor()
		for k, _ := c.Seek(p); k != nil && bytes.HasPrefix(k, p); k, _ = c.Next() {
			deleted = append(deleted, string(k))
		}

		// Deleting through the cursor while iterating skips keys in bolt.
		for _, k := range deleted {
			if err := bucket.Delete([]byte(k)); err != nil {
				return fmt.Errorf("failed to delete entry %s: %w", k, err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// Close closes the database.
func (r *BoltRepository) Close() error {
	return r.db.Close()
}
