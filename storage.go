package commsig

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// ──────────────────────────────────────────────
// Storage — profile, assessment and purchase records
// ──────────────────────────────────────────────

// ErrNotFound is returned by every Storage implementation when a record
// does not exist.
var ErrNotFound = errors.New("commsig: not found")

// ProfileRecord is a user's stored assessment outcome.
type ProfileRecord struct {
	UserID    string                    `json:"user_id"`
	Signature string                    `json:"signature"`
	Traits    map[TraitDimension]string `json:"traits"`
	UpdatedAt time.Time                 `json:"updated_at"`
}

// TraitProfile converts the record into the engine's input shape. A nil
// record converts to a nil profile.
func (r *ProfileRecord) TraitProfile() *TraitProfile {
	if r == nil {
		return nil
	}
	return &TraitProfile{Signature: r.Signature, Traits: r.Traits}
}

// AssessmentRecord is one stored survey submission with its scored outcome.
type AssessmentRecord struct {
	ID          string                    `json:"id"`
	UserID      string                    `json:"user_id"`
	Answers     []SurveyAnswer            `json:"answers"`
	Traits      map[TraitDimension]string `json:"traits"`
	Signature   string                    `json:"signature"`
	ContentHash uint64                    `json:"content_hash"`
	CreatedAt   time.Time                 `json:"created_at"`
}

// PurchaseRecord is one captured or declined payment.
type PurchaseRecord struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Plan        string    `json:"plan"`
	AmountCents int64     `json:"amount_cents"`
	Status      string    `json:"status"`
	Receipt     string    `json:"receipt,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Storage persists profiles, assessments and purchases. Implementations
// must be safe for concurrent use; lookups that miss return ErrNotFound.
type Storage interface {
	Profile(ctx context.Context, userID string) (*ProfileRecord, error)
	PutProfile(ctx context.Context, rec *ProfileRecord) error

	Assessment(ctx context.Context, id string) (*AssessmentRecord, error)
	AssessmentByHash(ctx context.Context, userID string, hash uint64) (*AssessmentRecord, error)
	PutAssessment(ctx context.Context, rec *AssessmentRecord) error

	Purchases(ctx context.Context, userID string) ([]*PurchaseRecord, error)
	PutPurchase(ctx context.Context, rec *PurchaseRecord) error

	Close() error
}

// InMemoryStorage is a thread-safe in-memory Storage for development and
// tests. Data is lost on restart.
type InMemoryStorage struct {
	mu          sync.RWMutex
	profiles    map[string]ProfileRecord
	assessments map[string]AssessmentRecord
	byHash      map[string]string // "user/hash" → assessment ID
	purchases   map[string][]PurchaseRecord
}

var _ Storage = (*InMemoryStorage)(nil)

// NewInMemoryStorage creates an empty in-memory store.
func NewInMemoryStorage() *InMemoryStorage {
	return &InMemoryStorage{
		profiles:    make(map[string]ProfileRecord),
		assessments: make(map[string]AssessmentRecord),
		byHash:      make(map[string]string),
		purchases:   make(map[string][]PurchaseRecord),
	}
}

func (s *InMemoryStorage) Profile(ctx context.Context, userID string) (*ProfileRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneProfile(&rec)
	return &out, nil
}

func (s *InMemoryStorage) PutProfile(ctx context.Context, rec *ProfileRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[rec.UserID] = cloneProfile(rec)
	return nil
}

func (s *InMemoryStorage) Assessment(ctx context.Context, id string) (*AssessmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAssessment(&rec)
	return &out, nil
}

func (s *InMemoryStorage) AssessmentByHash(ctx context.Context, userID string, hash uint64) (*AssessmentRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byHash[hashKey(userID, hash)]
	if !ok {
		return nil, ErrNotFound
	}
	rec, ok := s.assessments[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneAssessment(&rec)
	return &out, nil
}

func (s *InMemoryStorage) PutAssessment(ctx context.Context, rec *AssessmentRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.assessments[rec.ID] = cloneAssessment(rec)
	s.byHash[hashKey(rec.UserID, rec.ContentHash)] = rec.ID
	return nil
}

func (s *InMemoryStorage) Purchases(ctx context.Context, userID string) ([]*PurchaseRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	stored := s.purchases[userID]
	out := make([]*PurchaseRecord, 0, len(stored))
	for i := range stored {
		rec := stored[i]
		out = append(out, &rec)
	}
	return out, nil
}

func (s *InMemoryStorage) PutPurchase(ctx context.Context, rec *PurchaseRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.purchases[rec.UserID] = append(s.purchases[rec.UserID], *rec)
	return nil
}

func (s *InMemoryStorage) Close() error { return nil }

// hashKey builds the secondary index key for assessment dedup lookups.
func hashKey(userID string, hash uint64) string {
	return fmt.Sprintf("%s/%d", userID, hash)
}

// Records are cloned on both the put and get paths: a plain struct copy
// would share the traits map and answers slice between the store and its
// callers. PurchaseRecord carries only value fields, so its struct copies
// are already isolated.

func cloneTraits(in map[TraitDimension]string) map[TraitDimension]string {
	if in == nil {
		return nil
	}
	out := make(map[TraitDimension]string, len(in))
	for dim, value := range in {
		out[dim] = value
	}
	return out
}

func cloneProfile(rec *ProfileRecord) ProfileRecord {
	out := *rec
	out.Traits = cloneTraits(rec.Traits)
	return out
}

func cloneAssessment(rec *AssessmentRecord) AssessmentRecord {
	out := *rec
	out.Traits = cloneTraits(rec.Traits)
	if rec.Answers != nil {
		out.Answers = make([]SurveyAnswer, len(rec.Answers))
		copy(out.Answers, rec.Answers)
	}
	return out
}
