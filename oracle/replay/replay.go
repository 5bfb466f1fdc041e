// Package replay records oracle answers in a bolt database so that a
// session against a slow or remote oracle can be re-run offline.
//
// A Recorder passes queries through to the real oracle and saves
// each answer keyed by the query.  A Player answers from the
// database alone; a query that was never recorded is an error, which
// the engine then reports as an oracle failure rather than inventing
// a rejection.
package replay

import (
	"context"
	"encoding/json"
	"time"

	"github.com/Comcast/litmus/core"

	bolt "go.etcd.io/bbolt"
)

var answersBucket = []byte("answers")

// Store is the bolt database holding recorded answers.
type Store struct {
	filename string
	db       *bolt.DB
}

// Open opens (creating if necessary) the database.
func Open(filename string) (*Store, error) {
	opts := &bolt.Options{
		Timeout: time.Second,
	}
	db, err := bolt.Open(filename, 0644, opts)
	if err != nil {
		return nil, err
	}
	if err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(answersBucket)
		return err
	}); err != nil {
		db.Close()
		return nil, err
	}
	return &Store{
		filename: filename,
		db:       db,
	}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// key is the canonical form of a query: its JSON.  Order of fields
// in a struct marshal is fixed, so equal queries get equal keys.
func key(q core.Query) ([]byte, error) {
	return json.Marshal(&q)
}

// Recorder wraps an oracle so that every answered query is saved.
func (s *Store) Recorder(o core.Oracle) core.Oracle {
	return core.OracleFunc(func(ctx context.Context, q core.Query) (core.TransitionResult, error) {
		r, err := o.Query(ctx, q)
		if err != nil {
			return r, err
		}

		k, err := key(q)
		if err != nil {
			return r, err
		}
		v, err := json.Marshal(&r)
		if err != nil {
			return r, err
		}

		err = s.db.Update(func(tx *bolt.Tx) error {
			return tx.Bucket(answersBucket).Put(k, v)
		})
		return r, err
	})
}

// Player answers queries from the store alone.
func (s *Store) Player() core.Oracle {
	return core.OracleFunc(func(ctx context.Context, q core.Query) (core.TransitionResult, error) {
		var r core.TransitionResult

		k, err := key(q)
		if err != nil {
			return r, err
		}

		var v []byte
		if err = s.db.View(func(tx *bolt.Tx) error {
			if bs := tx.Bucket(answersBucket).Get(k); bs != nil {
				v = make([]byte, len(bs))
				copy(v, bs)
			}
			return nil
		}); err != nil {
			return r, err
		}

		if v == nil {
			return r, &NotRecorded{Query: q}
		}
		if err = json.Unmarshal(v, &r); err != nil {
			return r, err
		}
		return r, nil
	})
}

// Count reports how many answers are recorded.
func (s *Store) Count() (int, error) {
	n := 0
	err := s.db.View(func(tx *bolt.Tx) error {
		n = tx.Bucket(answersBucket).Stats().KeyN
		return nil
	})
	return n, err
}

// NotRecorded occurs when a Player is asked a query that the
// recording session never made.
type NotRecorded struct {
	Query core.Query
}

func (e *NotRecorded) Error() string {
	js, err := json.Marshal(&e.Query)
	if err != nil {
		return "query not recorded"
	}
	return "query not recorded: " + string(js)
}
