package store

import (
	"context"
	"sync"
	"time"

	"raidboard/internal/model"
)

// MemoryRaidStore is the in-process backend. It honors the same
// contract as the Redis store, including expiry, but records die with
// the process.
type MemoryRaidStore struct {
	mu      sync.Mutex
	ttl     time.Duration
	records map[string]memoryRecord

	now func() time.Time
}

type memoryRecord struct {
	payload   []byte
	expiresAt time.Time
}

func NewMemoryRaidStore(ttl time.Duration) *MemoryRaidStore {
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &MemoryRaidStore{
		ttl:     ttl,
		records: make(map[string]memoryRecord),
		now:     time.Now,
	}
}

func (s *MemoryRaidStore) Put(_ context.Context, raid *model.Raid) error {
	payload, err := encodeRaid(raid)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[raid.Code] = memoryRecord{
		payload:   payload,
		expiresAt: s.now().Add(s.ttl),
	}
	return nil
}

func (s *MemoryRaidStore) Get(_ context.Context, code string) (*model.Raid, error) {
	s.mu.Lock()
	rec, ok := s.records[code]
	if ok && s.now().After(rec.expiresAt) {
		delete(s.records, code)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, ErrNotFound
	}
	return decodeRaid(rec.payload)
}

// MemoryKeyedSet is the in-process KeyedSet backend.
type MemoryKeyedSet struct {
	mu     sync.Mutex
	labels map[int64]string
}

func NewMemoryKeyedSet() *MemoryKeyedSet {
	return &MemoryKeyedSet{labels: make(map[int64]string)}
}

func (s *MemoryKeyedSet) Add(_ context.Context, id int64, label string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.labels[id] = label
	return nil
}

func (s *MemoryKeyedSet) Remove(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.labels, id)
	return nil
}

func (s *MemoryKeyedSet) Contains(_ context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.labels[id]
	return ok, nil
}
