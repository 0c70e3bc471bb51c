package artifact

import (
	"context"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/go-sod/sleepq/internal/database"
	"github.com/go-sod/sleepq/internal/logging"
)

var (
	bucketName = []byte("artifacts")
	currentKey = []byte("current")
)

// Store keeps the current artifact as a single value in bbolt. Every write
// replaces the whole blob inside one transaction.
type Store struct {
	sDB *database.DB
}

func NewStore(db *database.DB) *Store {
	return &Store{sDB: db}
}

func (s *Store) Save(ctx context.Context, a *Artifact) error {
	blob, err := Encode(a)
	if err != nil {
		return err
	}
	if err := s.sDB.DB.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(bucketName)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}
		if err := b.Put(currentKey, blob); err != nil {
			return fmt.Errorf("put to bucket error: %w", err)
		}
		return nil
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}
	logging.FromContext(ctx).Infof("model artifact %s saved (%d bytes, weights %s)", a.ID, len(blob), a.Fingerprint())
	return nil
}

// Load returns ErrNotFound when nothing was saved yet and a *CorruptError
// when the stored blob cannot be decoded.
func (s *Store) Load(ctx context.Context) (*Artifact, error) {
	var blob []byte
	if err := s.sDB.DB.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		if v := b.Get(currentKey); v != nil {
			// v is only valid for the lifetime of the transaction
			blob = append([]byte{}, v...)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view transaction error: %w", err)
	}
	if blob == nil {
		return nil, ErrNotFound
	}
	a, err := Decode(blob)
	if err != nil {
		return nil, err
	}
	logging.FromContext(ctx).Debugf("model artifact %s loaded", a.ID)
	return a, nil
}

func (s *Store) Delete(_ context.Context) error {
	if err := s.sDB.DB.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(bucketName)
		if b == nil {
			return nil
		}
		return b.Delete(currentKey)
	}); err != nil {
		return fmt.Errorf("update transaction error: %w", err)
	}
	return nil
}
