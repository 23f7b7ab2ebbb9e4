package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kilupskalvis/abook/internal/models"
	bolt "go.etcd.io/bbolt"
	berrors "go.etcd.io/bbolt/errors"
)

// boltFormatVersion is written to the meta bucket of every collection file
const boltFormatVersion = "1"

// Bucket names used by a collection file.
var (
	bucketContacts = []byte("contacts")
	bucketMeta     = []byte("meta")
)

var keyFormatVersion = []byte("format_version")

// boltBackend stores a collection as JSON values in a bbolt file, keyed by
// big-endian position.
type boltBackend struct{}

func openBolt(path string, readOnly bool) (*bolt.DB, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second, ReadOnly: readOnly})
	if err != nil {
		if errors.Is(err, berrors.ErrInvalid) || errors.Is(err, berrors.ErrVersionMismatch) || errors.Is(err, berrors.ErrChecksum) {
			return nil, &ConversionError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("open database: %w", err)
	}
	return db, nil
}

func positionKey(i int) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, uint64(i))
	return k
}

func (boltBackend) read(ctx context.Context, path string) ([]models.Contact, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := exists(path); err != nil {
		return nil, err
	}
	// A read-only open cannot initialise an empty file
	if fi, err := os.Stat(path); err == nil && fi.Size() == 0 {
		return nil, &ConversionError{Path: path, Err: errors.New("empty file")}
	}

	db, err := openBolt(path, true)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	var recs []contactRecord
	err = db.View(func(tx *bolt.Tx) error {
		meta := tx.Bucket(bucketMeta)
		if meta == nil {
			return &ConversionError{Path: path, Err: errors.New("meta bucket not found")}
		}
		if v := string(meta.Get(keyFormatVersion)); v != boltFormatVersion {
			return &ConversionError{Path: path, Err: fmt.Errorf("unsupported format version %q", v)}
		}

		b := tx.Bucket(bucketContacts)
		if b == nil {
			return &ConversionError{Path: path, Err: errors.New("contacts bucket not found")}
		}
		return b.ForEach(func(k, v []byte) error {
			var r contactRecord
			if err := json.Unmarshal(v, &r); err != nil {
				return &ConversionError{Path: path, Err: fmt.Errorf("unmarshal contact %x: %w", k, err)}
			}
			recs = append(recs, r)
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return toContacts(path, recs)
}

func (boltBackend) write(ctx context.Context, path string, contacts []models.Contact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := ensureDir(path); err != nil {
		return err
	}

	db, err := openBolt(path, false)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.Update(func(tx *bolt.Tx) error {
		meta, err := tx.CreateBucketIfNotExists(bucketMeta)
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", bucketMeta, err)
		}
		if err := meta.Put(keyFormatVersion, []byte(boltFormatVersion)); err != nil {
			return err
		}

		if err := tx.DeleteBucket(bucketContacts); err != nil && err != berrors.ErrBucketNotFound {
			return err
		}
		b, err := tx.CreateBucket(bucketContacts)
		if err != nil {
			return fmt.Errorf("create bucket %s: %w", bucketContacts, err)
		}
		for i, c := range contacts {
			data, err := json.Marshal(toRecord(c))
			if err != nil {
				return fmt.Errorf("marshal contact: %w", err)
			}
			if err := b.Put(positionKey(i), data); err != nil {
				return err
			}
		}
		return nil
	})
}
