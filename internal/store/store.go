// Package store owns the live board document: it hydrates it from a kv backend, applies actions
// through the reducer, persists every result and notifies observers.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"sort"
	"sync"

	"kaiser-cli/internal/board"
	"kaiser-cli/internal/boardkey"
	"kaiser-cli/internal/kv"
	"kaiser-cli/internal/model"
)

// Observer is called with the documents before and after each applied action.
// It runs on the dispatching goroutine and must not call Dispatch.
type Observer func(prev, next model.Document)

type Store struct {
	backend    kv.Backend
	reducer    *board.Reducer
	logger     *log.Logger
	namespace  string
	key        string
	storageKey string

	// dispatchMu serialises Dispatch end to end; mu guards doc and observers so observers may read State.
	dispatchMu sync.Mutex
	mu         sync.Mutex
	doc        model.Document
	observers  map[int]Observer
	nextObs    int
}

type Option func(*Store)

func WithNamespace(ns string) Option {
	return func(s *Store) { s.namespace = ns }
}

func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithReducer replaces the reducer, typically to inject a fixed clock and token source.
// A nil Seed or Logger on r is filled in by Open.
func WithReducer(r *board.Reducer) Option {
	return func(s *Store) {
		if r != nil {
			s.reducer = r
		}
	}
}

// Open loads the board named by boardKey (a slug or raw title) from backend.
//
// A missing snapshot yields the seed document: the sample board for the default key and an empty
// board otherwise. A snapshot that does not decode is logged and replaced by the seed as well.
// Backend read errors are returned.
func Open(ctx context.Context, backend kv.Backend, boardKey string, opts ...Option) (*Store, error) {
	if backend == nil {
		return nil, errors.New("store: nil backend")
	}
	s := &Store{
		backend:   backend,
		namespace: boardkey.DefaultNamespace,
		logger:    log.New(io.Discard, "", 0),
		observers: map[int]Observer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	s.key = boardkey.Normalize(boardKey)
	s.storageKey = boardkey.StorageKey(s.namespace, s.key)

	r := board.Reducer{}
	if s.reducer != nil {
		r = *s.reducer
	}
	if r.Seed == nil {
		r.Seed = seedFor(s.key)
	}
	if r.Logger == nil {
		r.Logger = s.logger
	}
	s.reducer = &r

	doc, err := s.hydrate(ctx)
	if err != nil {
		return nil, err
	}
	s.doc = doc
	return s, nil
}

// seedFor returns the seed builder for key. The seed keeps whatever title it is given so that
// ResetBoard preserves a renamed board's title.
func seedFor(key string) func(title string) model.Document {
	if key == boardkey.Default {
		return board.SampleDocument
	}
	return board.EmptyDocument
}

func (s *Store) seed() model.Document {
	return s.reducer.Seed(s.key)
}

func (s *Store) hydrate(ctx context.Context) (model.Document, error) {
	raw, err := s.backend.Get(ctx, s.storageKey)
	if errors.Is(err, kv.ErrNotFound) {
		return s.seed(), nil
	}
	if err != nil {
		return model.Document{}, fmt.Errorf("load %s: %w", s.storageKey, err)
	}
	doc, err := decodeSnapshot(raw)
	if err != nil {
		s.logger.Printf("snapshot %s is unreadable, starting from seed: %v", s.storageKey, err)
		return s.seed(), nil
	}
	return doc, nil
}

func (s *Store) Key() string        { return s.key }
func (s *Store) StorageKey() string { return s.storageKey }
func (s *Store) Namespace() string  { return s.namespace }

// State returns the current document. Callers must treat it as read-only.
func (s *Store) State() model.Document {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// Subscribe registers fn and returns a function that removes it.
func (s *Store) Subscribe(fn Observer) (unsubscribe func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextObs
	s.nextObs++
	s.observers[id] = fn
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.observers, id)
	}
}

// Dispatch applies a and persists the result.
//
// Reducer errors leave the document unchanged and are returned as is. A failed write keeps the new
// document in memory and returns it together with a *PersistError.
func (s *Store) Dispatch(ctx context.Context, a board.Action) (model.Document, error) {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	prev := s.State()
	next, err := s.reducer.Apply(prev, a)
	if err != nil {
		return prev, err
	}
	if u, ok := a.(board.Unknown); ok {
		s.logger.Printf("ignoring unknown action %q", u.Kind)
	}

	s.mu.Lock()
	s.doc = next
	obs := s.observerList()
	s.mu.Unlock()

	perr := s.persist(ctx, next)
	for _, fn := range obs {
		fn(prev, next)
	}
	if perr != nil {
		return next, perr
	}
	return next, nil
}

// observerList returns observers in subscription order. Caller holds mu.
func (s *Store) observerList() []Observer {
	ids := make([]int, 0, len(s.observers))
	for id := range s.observers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	out := make([]Observer, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.observers[id])
	}
	return out
}

func (s *Store) persist(ctx context.Context, doc model.Document) error {
	b, err := json.Marshal(doc)
	if err != nil {
		return &PersistError{Key: s.storageKey, Err: err}
	}
	if err := s.backend.Put(ctx, s.storageKey, b); err != nil {
		s.logger.Printf("persist %s: %v", s.storageKey, err)
		return &PersistError{Key: s.storageKey, Err: err}
	}
	return nil
}

// Delete removes the persisted snapshot and resets the in-memory document to the seed.
func (s *Store) Delete(ctx context.Context) error {
	s.dispatchMu.Lock()
	defer s.dispatchMu.Unlock()

	if err := s.backend.Delete(ctx, s.storageKey); err != nil {
		if errors.Is(err, kv.ErrNotFound) {
			return fmt.Errorf("board %s has no saved snapshot: %w", s.key, err)
		}
		return fmt.Errorf("delete %s: %w", s.storageKey, err)
	}
	prev := s.State()
	next := s.seed()
	s.mu.Lock()
	s.doc = next
	obs := s.observerList()
	s.mu.Unlock()
	for _, fn := range obs {
		fn(prev, next)
	}
	return nil
}

// List returns the board keys persisted under namespace, sorted.
func List(ctx context.Context, backend kv.Backend, namespace string) ([]string, error) {
	keys, err := backend.Keys(ctx, boardkey.Prefix(namespace))
	if err != nil {
		return nil, fmt.Errorf("list boards: %w", err)
	}
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if bk, ok := boardkey.FromStorageKey(namespace, k); ok {
			out = append(out, bk)
		}
	}
	return out, nil
}

// decodeSnapshot parses a persisted document. A JSON null or a lane pointing at a missing column
// is as unusable as malformed JSON.
func decodeSnapshot(raw []byte) (model.Document, error) {
	var doc *model.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.Document{}, err
	}
	if doc == nil {
		return model.Document{}, errors.New("snapshot is null")
	}
	next := doc.Normalize()
	if err := board.Validate(next); err != nil {
		return model.Document{}, err
	}
	return next, nil
}
