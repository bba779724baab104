package score

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	bolt "go.etcd.io/bbolt"
)

var scoresBucket = []byte("scores")

// Entry is one recorded game result.
type Entry struct {
	Score int       `json:"score"`
	Wave  int       `json:"wave"`
	When  time.Time `json:"when"`
}

// Store persists game results in a local bbolt file.
type Store struct {
	db *bolt.DB
}

// Open opens (or creates) the score database at path.
func Open(path string) (*Store, error) {
	db, err := bolt.Open(path, 0666, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("score: open %s: %w", path, err)
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(scoresBucket)
		return err
	})
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("score: create bucket: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Record stores one game result.
func (s *Store) Record(e Entry) error {
	if e.When.IsZero() {
		e.When = time.Now()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("score: marshal entry: %w", err)
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b := tx.Bucket(scoresBucket)
		id, err := b.NextSequence()
		if err != nil {
			return err
		}
		key := make([]byte, 8)
		binary.BigEndian.PutUint64(key, id)
		return b.Put(key, data)
	})
}

// Top returns the n best results, highest score first.
func (s *Store) Top(n int) ([]Entry, error) {
	var entries []Entry
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(scoresBucket).ForEach(func(_, v []byte) error {
			var e Entry
			if err := json.Unmarshal(v, &e); err != nil {
				return err
			}
			entries = append(entries, e)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("score: read entries: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > n {
		entries = entries[:n]
	}
	return entries, nil
}

// HighScore returns the best recorded score, or 0 if none exist.
func (s *Store) HighScore() (int, error) {
	top, err := s.Top(1)
	if err != nil {
		return 0, err
	}
	if len(top) == 0 {
		return 0, nil
	}
	return top[0].Score, nil
}
