package host

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.etcd.io/bbolt"
)

var (
	bucketState         = []byte("state")
	bucketNotifications = []byte("notifications")
)

// BoltConfig groups the parameters of a durable bolt-backed host.
type BoltConfig struct {
	// Path is the database file. The parent directory is created if it
	// does not exist.
	Path string
	// FileMode for the database file. Zero means 0600.
	FileMode os.FileMode
}

// BoltStore persists contract state and the notification log in a bbolt
// database. It implements both BatchStorage and NotificationLog, so a
// single BoltStore can back a Runtime completely.
type BoltStore struct {
	db *bbolt.DB
}

// Compile-time interface checks.
var (
	_ BatchStorage        = (*BoltStore)(nil)
	_ NotificationLog     = (*BoltStore)(nil)
	_ InvocationCommitter = (*BoltStore)(nil)
)

// OpenBoltStore opens or creates the database described by cfg.
func OpenBoltStore(cfg BoltConfig) (*BoltStore, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, fmt.Errorf("host: create directory: %w", err)
	}
	mode := cfg.FileMode
	if mode == 0 {
		mode = 0600
	}
	db, err := bbolt.Open(cfg.Path, mode, nil)
	if err != nil {
		return nil, fmt.Errorf("host: open bolt db: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		for _, name := range [][]byte{bucketState, bucketNotifications} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return fmt.Errorf("create bucket %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("host: create buckets: %w", err)
	}

	return &BoltStore{db: db}, nil
}

// Close closes the underlying database.
func (s *BoltStore) Close() error { return s.db.Close() }

// Get reads a state value. It panics on a database failure, which aborts
// the surrounding invocation.
func (s *BoltStore) Get(key []byte) []byte {
	var value []byte
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(bucketState).Get(key)
		if v != nil {
			value = make([]byte, len(v))
			copy(value, v)
		}
		return nil
	})
	if err != nil {
		panic("host: bolt get: " + err.Error())
	}
	return value
}

// Put writes one state value in its own transaction. Invocations go
// through PutBatch instead.
func (s *BoltStore) Put(key, value []byte) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Put(key, value)
	})
	if err != nil {
		panic("host: bolt put: " + err.Error())
	}
}

// Delete removes one state value in its own transaction.
func (s *BoltStore) Delete(key []byte) {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketState).Delete(key)
	})
	if err != nil {
		panic("host: bolt delete: " + err.Error())
	}
}

// PutBatch applies a whole invocation's write set in one transaction.
func (s *BoltStore) PutBatch(ops []StorageOp) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return applyStateTx(tx, ops)
	})
	if err != nil {
		return fmt.Errorf("host: bolt apply batch: %w", err)
	}
	return nil
}

// Append assigns sequence numbers and persists the notifications, keyed
// by big-endian sequence number so the log reads back in publish order.
func (s *BoltStore) Append(ns []Notification) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		return appendNotificationsTx(tx, ns)
	})
	if err != nil {
		return fmt.Errorf("host: bolt append notifications: %w", err)
	}
	return nil
}

// CommitInvocation applies an invocation's write set and appends its
// notifications in a single transaction, so a failure at any point makes
// neither visible.
func (s *BoltStore) CommitInvocation(ops []StorageOp, ns []Notification) error {
	err := s.db.Update(func(tx *bbolt.Tx) error {
		if err := applyStateTx(tx, ops); err != nil {
			return err
		}
		return appendNotificationsTx(tx, ns)
	})
	if err != nil {
		return fmt.Errorf("host: bolt commit invocation: %w", err)
	}
	return nil
}

func applyStateTx(tx *bbolt.Tx, ops []StorageOp) error {
	b := tx.Bucket(bucketState)
	for _, op := range ops {
		if op.Value == nil {
			if err := b.Delete(op.Key); err != nil {
				return err
			}
			continue
		}
		if err := b.Put(op.Key, op.Value); err != nil {
			return err
		}
	}
	return nil
}

func appendNotificationsTx(tx *bbolt.Tx, ns []Notification) error {
	b := tx.Bucket(bucketNotifications)

	next := uint64(0)
	if k, _ := b.Cursor().Last(); k != nil {
		next = binary.BigEndian.Uint64(k) + 1
	}

	for _, n := range ns {
		n.Seq = next
		data, err := json.Marshal(n)
		if err != nil {
			return fmt.Errorf("encode notification: %w", err)
		}
		if err := b.Put(seqKey(next), data); err != nil {
			return err
		}
		next++
	}
	return nil
}

// Read returns up to max notifications with Seq >= from, in order. A max
// of zero or less means no limit. This is the poll surface for off-chain
// consumers.
func (s *BoltStore) Read(from uint64, max int) ([]Notification, error) {
	var out []Notification
	err := s.db.View(func(tx *bbolt.Tx) error {
		c := tx.Bucket(bucketNotifications).Cursor()
		for k, v := c.Seek(seqKey(from)); k != nil; k, v = c.Next() {
			var n Notification
			if err := json.Unmarshal(v, &n); err != nil {
				return fmt.Errorf("decode notification: %w", err)
			}
			out = append(out, n)
			if max > 0 && len(out) == max {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("host: bolt read notifications: %w", err)
	}
	return out, nil
}

// seqKey encodes a sequence number as an 8-byte big-endian key for
// sorted storage.
func seqKey(seq uint64) []byte {
	k := make([]byte, 8)
	binary.BigEndian.PutUint64(k, seq)
	return k
}
