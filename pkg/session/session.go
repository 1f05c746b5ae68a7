// Package session keeps interactive treegraph charts alive between
// requests.
//
// A [Session] owns one live [treegraph.Series] so a client can create a
// chart once and then toggle nodes or resize it without resending data.
// Sessions expire after a TTL; [Store.Cleanup] drops expired ones.
//
// # Usage
//
//	store := session.NewMemoryStore()
//
//	sess := session.New(series, session.DefaultTTL)
//	store.Set(ctx, sess)
//
//	sess, err := store.Get(ctx, id)
//	if errors.Is(err, session.ErrNotFound) {
//	    // unknown or expired chart
//	}
//	err = sess.Do(func(s *treegraph.Series) error {
//	    return s.Toggle("node-1")
//	})
//
// Access to a session's series is serialized by [Session.Do]; different
// sessions never block each other.
//
// [MemoryStore] hands out the stored *Session itself. [MongoStore] keeps a
// [Record] per session and rebuilds the series on every Get, so callers
// that mutate a session must Set it again.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/erfan1375er/highcharts/pkg/treegraph"
)

// Sentinel errors for session operations.
var (
	// ErrNotFound is returned when a session does not exist.
	ErrNotFound = errors.New("session not found")

	// ErrExpired is returned when a session has exceeded its TTL.
	ErrExpired = errors.New("session expired")
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = time.Hour

// Session is one live chart.
type Session struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	mu        sync.Mutex
	ttl       time.Duration
	expiresAt time.Time
	series    *treegraph.Series
}

// New wraps series in a session with a fresh random id.
func New(series *treegraph.Series, ttl time.Duration) *Session {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		CreatedAt: now,
		ttl:       ttl,
		expiresAt: now.Add(ttl),
		series:    series,
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return time.Now().After(s.expiresAt)
}

// ExpiresAt returns the current expiry time.
func (s *Session) ExpiresAt() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// Do runs fn with exclusive access to the series and extends the session
// by its TTL.
func (s *Session) Do(fn func(*treegraph.Series) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = time.Now().Add(s.ttl)
	return fn(s.series)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns ErrNotFound if the session doesn't exist and ErrExpired if it
	// exists but has expired; expired sessions are removed.
	Get(ctx context.Context, id string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, s *Session) error

	// Delete removes a session. Returns ErrNotFound if it doesn't exist.
	Delete(ctx context.Context, id string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}

// Record is the persisted form of a session.
type Record struct {
	ID        string
	CreatedAt time.Time
	ExpiresAt time.Time
	TTL       time.Duration
	State     treegraph.Snapshot
}

// Record captures the session and its series input.
func (s *Session) Record() Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Record{
		ID:        s.ID,
		CreatedAt: s.CreatedAt,
		ExpiresAt: s.expiresAt,
		TTL:       s.ttl,
		State:     s.series.Snapshot(),
	}
}

// FromRecord rebuilds a session, re-running the layout for its series.
func FromRecord(r Record, logger *log.Logger) (*Session, error) {
	series, err := treegraph.Restore(r.State, logger, nil)
	if err != nil {
		return nil, err
	}
	ttl := r.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Session{
		ID:        r.ID,
		CreatedAt: r.CreatedAt,
		ttl:       ttl,
		expiresAt: r.ExpiresAt,
		series:    series,
	}, nil
}
