package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	commsig "github.com/commsiglabs/commsig-go"
)

// ══════════════════════════════════════════════
// RedisStorage tests (miniredis)
// ══════════════════════════════════════════════

func newTestRedis(t *testing.T, config ...RedisConfig) (*RedisStorage, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedisStorage(client, config...)
	t.Cleanup(func() { s.Close() })
	return s, mr
}

func redisProfile(userID string) *commsig.ProfileRecord {
	return &commsig.ProfileRecord{
		UserID:    userID,
		Signature: "Investigative Listener",
		Traits: map[commsig.TraitDimension]string{
			commsig.DimDrive:        "research",
			commsig.DimExpression:   "attentive",
			commsig.DimAdaptive:     "deliberate",
			commsig.DimIntelligence: "strategic",
		},
		UpdatedAt: time.Now().UTC().Truncate(time.Second),
	}
}

func TestRedisStorage_ProfileRoundTrip(t *testing.T) {
	s, _ := newTestRedis(t)
	ctx := context.Background()

	if err := s.PutProfile(ctx, redisProfile("u1")); err != nil {
		t.Fatalf("put: %v", err)
	}

	got, err := s.Profile(ctx, "u1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Signature != "Investigative Listener" {
		t.Fatalf("signature = %q", got.Signature)
	}
	if got.Traits[commsig.DimAdaptive] != "deliberate" {
		t.Fatalf("adaptive = %q", got.Traits[commsig.DimAdaptive])
	}
}

func TestRedisStorage_ProfileNotFound(t *testing.T) {
	s, _ := newTestRedis(t)
	_, err := s.Profile(context.Background(), "nobody")
	if !errors.Is(err, commsig.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisStorage_KeyLayout(t *testing.T) {
	s, mr := newTestRedis(t, RedisConfig{Prefix: "test"})
	ctx := context.Background()

	if err := s.PutProfile(ctx, redisProfile("u1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("test:profile:u1") {
		t.Fatal("expected key test:profile:u1")
	}
}

func TestRedisStorage_AssessmentAndHashIndex(t *testing.T) {
	s, mr := newTestRedis(t)
	ctx := context.Background()

	rec := &commsig.AssessmentRecord{
		ID:          "a1",
		UserID:      "u1",
		Answers:     []commsig.SurveyAnswer{{QuestionID: "q1", ChoiceID: "a"}},
		Traits:      map[commsig.TraitDimension]string{commsig.DimDrive: "action"},
		Signature:   "Driven Communicator",
		ContentHash: 18446744073709551615, // max uint64 must survive the trip
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
	if err := s.PutAssessment(ctx, rec); err != nil {
		t.Fatalf("put: %v", err)
	}

	byID, err := s.Assessment(ctx, "a1")
	if err != nil {
		t.Fatalf("get by id: %v", err)
	}
	if byID.ContentHash != rec.ContentHash {
		t.Fatalf("hash = %d, expected %d", byID.ContentHash, rec.ContentHash)
	}

	byHash, err := s.AssessmentByHash(ctx, "u1", rec.ContentHash)
	if err != nil {
		t.Fatalf("get by hash: %v", err)
	}
	if byHash.ID != "a1" {
		t.Fatalf("expected a1, got %s", byHash.ID)
	}

	if !mr.Exists("commsig:assessment_hash:u1:18446744073709551615") {
		t.Fatal("expected hash index key")
	}

	if _, err := s.AssessmentByHash(ctx, "u2", rec.ContentHash); !errors.Is(err, commsig.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for other user, got %v", err)
	}
}

func TestRedisStorage_PurchasesOrdered(t *testing.T) {
	s, _ := newTestRedis(t)
	ctx := context.Background()

	for _, plan := range []string{"basic", "pro", "team"} {
		rec := &commsig.PurchaseRecord{
			ID:          plan,
			UserID:      "u1",
			Plan:        plan,
			AmountCents: 1000,
			Status:      commsig.PurchaseCaptured,
			CreatedAt:   time.Now().UTC(),
		}
		if err := s.PutPurchase(ctx, rec); err != nil {
			t.Fatalf("put %s: %v", plan, err)
		}
	}

	got, err := s.Purchases(ctx, "u1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 purchases, got %d", len(got))
	}
	for i, plan := range []string{"basic", "pro", "team"} {
		if got[i].Plan != plan {
			t.Errorf("purchase %d = %s, expected %s", i, got[i].Plan, plan)
		}
	}
}

func TestRedisStorage_PurchasesEmpty(t *testing.T) {
	s, _ := newTestRedis(t)
	got, err := s.Purchases(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no purchases, got %d", len(got))
	}
}

func TestRedisStorage_TTL(t *testing.T) {
	s, mr := newTestRedis(t, RedisConfig{TTL: time.Minute})
	ctx := context.Background()

	if err := s.PutProfile(ctx, redisProfile("u1")); err != nil {
		t.Fatalf("put: %v", err)
	}
	if ttl := mr.TTL("commsig:profile:u1"); ttl != time.Minute {
		t.Fatalf("expected 1m TTL, got %v", ttl)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := s.Profile(ctx, "u1"); !errors.Is(err, commsig.ErrNotFound) {
		t.Fatalf("expected expiry, got %v", err)
	}
}
