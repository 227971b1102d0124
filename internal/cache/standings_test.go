package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"

	"bracket-service/internal/domain/teams"
)

type stubStore struct {
	data    map[string]string
	getErr  error
	setErr  error
	setKeys []string
}

func newStubStore() *stubStore {
	return &stubStore{data: map[string]string{}}
}

func (s *stubStore) Get(ctx context.Context, key string) (string, error) {
	if s.getErr != nil {
		return "", s.getErr
	}
	val, ok := s.data[key]
	if !ok {
		return "", redis.Nil
	}
	return val, nil
}

func (s *stubStore) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.setKeys = append(s.setKeys, key)
	s.data[key] = string(value.([]byte))
	return nil
}

type countingStandings struct {
	rankings []teams.Ranking
	err      error
	calls    int
}

func (c *countingStandings) FetchStandings(ctx context.Context, standingsKey string) ([]teams.Ranking, error) {
	c.calls++
	return c.rankings, c.err
}

func TestCachedStandingsMissThenHit(t *testing.T) {
	store := newStubStore()
	inner := &countingStandings{rankings: []teams.Ranking{{TeamID: "83", Rank: 9}}}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	first, err := p.FetchStandings(context.Background(), "nba")
	if err != nil || len(first) != 1 {
		t.Fatalf("first fetch: %v %v", first, err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}

	second, err := p.FetchStandings(context.Background(), "nba")
	if err != nil || len(second) != 1 || second[0].TeamID != "83" {
		t.Fatalf("cached fetch: %v %v", second, err)
	}
	if inner.calls != 1 {
		t.Fatalf("cache hit must not call inner again, calls = %d", inner.calls)
	}
	if len(store.setKeys) != 1 || store.setKeys[0] != "standings:nba" {
		t.Fatalf("unexpected cache keys: %v", store.setKeys)
	}
}

func TestCachedStandingsFailsOpenOnReadError(t *testing.T) {
	store := newStubStore()
	store.getErr = errors.New("redis down")
	inner := &countingStandings{rankings: []teams.Ranking{{TeamID: "1"}}}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	rankings, err := p.FetchStandings(context.Background(), "nba")
	if err != nil || len(rankings) != 1 {
		t.Fatalf("read error must fall through: %v %v", rankings, err)
	}
}

func TestCachedStandingsIgnoresCorruptEntry(t *testing.T) {
	store := newStubStore()
	store.data["standings:nba"] = "{not json"
	inner := &countingStandings{rankings: []teams.Ranking{{TeamID: "1"}}}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	rankings, err := p.FetchStandings(context.Background(), "nba")
	if err != nil || len(rankings) != 1 {
		t.Fatalf("corrupt entry must fall through: %v %v", rankings, err)
	}
	if inner.calls != 1 {
		t.Fatalf("inner calls = %d, want 1", inner.calls)
	}
}

func TestCachedStandingsWriteErrorNonFatal(t *testing.T) {
	store := newStubStore()
	store.setErr = errors.New("redis down")
	inner := &countingStandings{rankings: []teams.Ranking{{TeamID: "1"}}}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	if _, err := p.FetchStandings(context.Background(), "nba"); err != nil {
		t.Fatalf("write error must not fail the fetch: %v", err)
	}
}

func TestCachedStandingsPropagatesInnerError(t *testing.T) {
	store := newStubStore()
	inner := &countingStandings{err: errors.New("upstream down")}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	if _, err := p.FetchStandings(context.Background(), "nba"); err == nil {
		t.Fatalf("expected inner error")
	}
	if len(store.setKeys) != 0 {
		t.Fatalf("failed fetch must not populate the cache")
	}
}

func TestCachedStandingsStoredPayloadIsJSON(t *testing.T) {
	store := newStubStore()
	inner := &countingStandings{rankings: []teams.Ranking{{TeamID: "83", Rank: 9}}}
	p := NewCachedStandingsProvider(inner, store, time.Minute, nil)

	p.FetchStandings(context.Background(), "ucl")

	var decoded []teams.Ranking
	if err := json.Unmarshal([]byte(store.data["standings:ucl"]), &decoded); err != nil {
		t.Fatalf("stored payload not json: %v", err)
	}
	if len(decoded) != 1 || decoded[0].Rank != 9 {
		t.Fatalf("roundtrip mismatch: %+v", decoded)
	}
}
