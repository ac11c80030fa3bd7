// Package store owns the authoritative in-memory contract collection and
// keeps it synchronized with a key/value medium via full-replace writes
// under one fixed key.
package store

import (
	"context"
	"crypto/sha256"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pactwatch/pactwatch/pkg/contracts"
	"github.com/pactwatch/pactwatch/pkg/kv"
)

// DefaultKey is the fixed key the collection persists under. The name is
// carried over from the storage key of the first version of the tracker.
const DefaultKey = "ndaContracts"

// Store is the contract record store. The in-memory collection is the source
// of truth for the running session; persistence failures are surfaced but do
// not roll back mutations.
//
// All mutations happen under one lock, and the corresponding writes are
// issued in mutation order before the lock is released, so the persisted
// collection deterministically reflects the last mutation.
type Store struct {
	mu       sync.Mutex
	kv       kv.Store
	key      string
	log      *slog.Logger
	now      func() time.Time
	newID    func() string
	records  []contracts.Record
	lastHash [sha256.Size]byte
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the persistence key.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// WithClock overrides the commit timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDSource overrides record id generation.
func WithIDSource(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Open constructs the store and loads the persisted collection. A missing,
// unreadable, or corrupt blob initializes an empty collection; construction
// never fails because of bad prior data.
func Open(ctx context.Context, medium kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:    medium,
		key:   DefaultKey,
		log:   slog.Default(),
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.load(ctx)
	return s
}

func (s *Store) load(ctx context.Context) {
	data, ok, err := s.kv.Read(ctx, s.key)
	if err != nil {
		s.log.Warn("contract store: load failed, starting empty",
			slog.String("key", s.key), slog.Any("error", err))
		return
	}
	if !ok {
		return
	}
	records, err := decodeRecords(data)
	if err != nil {
		s.log.Warn("contract store: persisted data unreadable, starting empty",
			slog.String("key", s.key), slog.Any("error", err))
		return
	}
	s.records = records
	s.lastHash = snapshotHash(data)
}

// List returns the collection in insertion order. The result is a copy.
func (s *Store) List() []contracts.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]contracts.Record, len(s.records))
	copy(out, s.records)
	return out
}

// Get returns the record with the given id.
func (s *Store) Get(id string) (contracts.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.records {
		if r.ID == id {
			return r, nil
		}
	}
	return contracts.Record{}, contracts.NotFoundf("id %q", id)
}

// Create commits a draft as a new record appended to the collection. It
// fails with ErrValidation on an empty title, leaving the collection
// untouched. On success the returned record carries a fresh id and a
// DateAdded equal to commit time; an ErrPersistence alongside it means the
// record is in memory but the durable write failed.
func (s *Store) Create(ctx context.Context, draft contracts.Draft) (contracts.Record, error) {
	if err := draft.Validate(); err != nil {
		return contracts.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	record := contracts.Record{
		ID:        s.newID(),
		DateAdded: s.now(),
	}.Apply(draft)
	s.records = append(s.records, record)
	return record, s.persist(ctx)
}

// Update replaces every field of the identified record except ID and
// DateAdded, preserving its position in the collection.
func (s *Store) Update(ctx context.Context, id string, draft contracts.Draft) (contracts.Record, error) {
	if err := draft.Validate(); err != nil {
		return contracts.Record{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			updated := r.Apply(draft)
			s.records[i] = updated
			return updated, s.persist(ctx)
		}
	}
	return contracts.Record{}, contracts.NotFoundf("id %q", id)
}

// Delete removes the identified record. Deleting an unknown id is a no-op,
// not an error.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, r := range s.records {
		if r.ID == id {
			s.records = append(s.records[:i], s.records[i+1:]...)
			return s.persist(ctx)
		}
	}
	return nil
}

// persist re-serializes the entire collection under the fixed key. Callers
// hold s.mu. Writes carrying bytes identical to the last persisted snapshot
// are skipped.
func (s *Store) persist(ctx context.Context) error {
	data, err := encodeRecords(s.records)
	if err != nil {
		// Records are plain strings and timestamps; this does not happen in
		// practice, but the policy is the same as a medium failure.
		err = contracts.Persistencef(err, "encode collection")
		s.log.Error("contract store: persist failed", slog.Any("error", err))
		return err
	}
	hash := snapshotHash(data)
	if hash == s.lastHash {
		return nil
	}
	if err := s.kv.Write(ctx, s.key, data); err != nil {
		err = contracts.Persistencef(err, "write key %q", s.key)
		s.log.Error("contract store: persist failed, in-memory state retained",
			slog.String("key", s.key), slog.Any("error", err))
		return err
	}
	s.lastHash = hash
	return nil
}

// Len reports the number of records.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}
