// Package store is the durable, append-only log of signed envelopes
// cmd/groupctl reads from and writes to (spec §6). It is a collaborator,
// not a core component: group.Interpret never imports it, and nothing
// here participates in C1-C4's computation.
package store

import (
	"encoding/binary"
	"fmt"
	"sync"

	"github.com/syndtr/goleveldb/leveldb"

	"github.com/tos-network/groupdag/log"
)

// Store is a goleveldb-backed append-only log. Keys are an 8-byte
// big-endian sequence number, so goleveldb's natural key ordering
// doubles as insertion order — All replays operations in the order they
// were appended.
type Store struct {
	db *leveldb.DB

	mu   sync.Mutex
	next uint64
}

// Open opens (creating if necessary) a Store backed by a LevelDB
// database rooted at dataDir.
func Open(dataDir string) (*Store, error) {
	db, err := leveldb.OpenFile(dataDir, nil)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", dataDir, err)
	}
	return newStore(db)
}

func newStore(db *leveldb.DB) (*Store, error) {
	s := &Store{db: db}
	next, err := s.loadNext()
	if err != nil {
		db.Close()
		return nil, err
	}
	s.next = next
	return s, nil
}

func (s *Store) loadNext() (uint64, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()
	if iter.Last() {
		seq := binary.BigEndian.Uint64(iter.Key()[:8])
		return seq + 1, iter.Error()
	}
	return 0, iter.Error()
}

func seqKey(n uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, n)
	return b
}

// Append writes raw as the next entry in the log and returns its
// assigned sequence number.
func (s *Store) Append(raw []byte) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := s.next
	if err := s.db.Put(seqKey(seq), raw, nil); err != nil {
		return 0, fmt.Errorf("store: appending entry %d: %w", seq, err)
	}
	s.next++
	log.Debug("appended operation to store", "seq", seq, "bytes", len(raw))
	return seq, nil
}

// All returns every raw envelope in the log, oldest first.
func (s *Store) All() ([][]byte, error) {
	iter := s.db.NewIterator(nil, nil)
	defer iter.Release()

	var out [][]byte
	for iter.Next() {
		out = append(out, append([]byte(nil), iter.Value()...))
	}
	return out, iter.Error()
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }
