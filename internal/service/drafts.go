package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/pageza/nutrilens/backend/internal/onboarding"
	"github.com/redis/go-redis/v9"
)

var (
	ErrDraftNotFound      = errors.New("no onboarding draft in progress")
	ErrSubmissionInFlight = errors.New("a submission for this profile is already in progress")
)

// DefaultDraftTTL is how long an untouched onboarding draft is kept.
const DefaultDraftTTL = 24 * time.Hour

// submitLockTTL bounds how long a crashed submission can block the next one.
const submitLockTTL = 30 * time.Second

// DraftStore keeps onboarding sessions between requests and serializes
// submissions per user.
type DraftStore interface {
	Save(ctx context.Context, s onboarding.Session) error
	Load(ctx context.Context, userID string) (onboarding.Session, error)
	Delete(ctx context.Context, userID string) error
	// Acquire takes the per-user submission lock. It fails with
	// ErrSubmissionInFlight while another holder has it.
	Acquire(ctx context.Context, userID string) (release func(), err error)
}

// RedisDraftStore keeps drafts in Redis with a sliding TTL.
type RedisDraftStore struct {
	client *redis.Client
	ttl    time.Duration
}

var _ DraftStore = (*RedisDraftStore)(nil)

func NewRedisDraftStore(client *redis.Client, ttl time.Duration) *RedisDraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &RedisDraftStore{client: client, ttl: ttl}
}

func draftKey(userID string) string {
	return fmt.Sprintf("onboarding:draft:%s", userID)
}

func submitLockKey(userID string) string {
	return fmt.Sprintf("onboarding:submit:%s", userID)
}

func (s *RedisDraftStore) Save(ctx context.Context, sess onboarding.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	if err := s.client.Set(ctx, draftKey(sess.UserID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Load(ctx context.Context, userID string) (onboarding.Session, error) {
	data, err := s.client.Get(ctx, draftKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return onboarding.Session{}, ErrDraftNotFound
		}
		return onboarding.Session{}, fmt.Errorf("failed to get draft: %w", err)
	}

	var sess onboarding.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return onboarding.Session{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return sess, nil
}

func (s *RedisDraftStore) Delete(ctx context.Context, userID string) error {
	if err := s.client.Del(ctx, draftKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft: %w", err)
	}
	return nil
}

func (s *RedisDraftStore) Acquire(ctx context.Context, userID string) (func(), error) {
	key := submitLockKey(userID)
	ok, err := s.client.SetNX(ctx, key, time.Now().UTC().Format(time.RFC3339Nano), submitLockTTL).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to take submission lock: %w", err)
	}
	if !ok {
		return nil, ErrSubmissionInFlight
	}
	return func() {
		s.client.Del(context.WithoutCancel(ctx), key)
	}, nil
}

// MemoryDraftStore is an in-process DraftStore for tests and single-instance
// development setups.
type MemoryDraftStore struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]memoryDraft
	inFlight map[string]struct{}
}

type memoryDraft struct {
	data    []byte
	expires time.Time
}

var _ DraftStore = (*MemoryDraftStore)(nil)

func NewMemoryDraftStore(ttl time.Duration) *MemoryDraftStore {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &MemoryDraftStore{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]memoryDraft),
		inFlight: make(map[string]struct{}),
	}
}

// Sessions are stored encoded so callers never share slices with the store.
func (s *MemoryDraftStore) Save(_ context.Context, sess onboarding.Session) error {
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.UserID] = memoryDraft{data: data, expires: s.now().Add(s.ttl)}
	return nil
}

func (s *MemoryDraftStore) Load(_ context.Context, userID string) (onboarding.Session, error) {
	s.mu.Lock()
	d, ok := s.sessions[userID]
	if ok && !s.now().Before(d.expires) {
		delete(s.sessions, userID)
		ok = false
	}
	s.mu.Unlock()
	if !ok {
		return onboarding.Session{}, ErrDraftNotFound
	}

	var sess onboarding.Session
	if err := json.Unmarshal(d.data, &sess); err != nil {
		return onboarding.Session{}, fmt.Errorf("failed to unmarshal draft: %w", err)
	}
	return sess, nil
}

func (s *MemoryDraftStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
	return nil
}

func (s *MemoryDraftStore) Acquire(_ context.Context, userID string) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, busy := s.inFlight[userID]; busy {
		return nil, ErrSubmissionInFlight
	}
	s.inFlight[userID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.inFlight, userID)
			s.mu.Unlock()
		})
	}, nil
}
