package services

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
)

type fakeUserRepo struct {
	mu       sync.Mutex
	byEmail  map[string]*domain.User
	byID     map[uuid.UUID]*domain.User
	failWith error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: map[string]*domain.User{},
		byID:    map[uuid.UUID]*domain.User{},
	}
}

func (r *fakeUserRepo) add(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	if _, ok := r.byEmail[user.Email]; ok {
		return nil, domain.ErrEmailExists
	}
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	u := *user
	r.byEmail[u.Email] = &u
	r.byID[u.ID] = &u
	return user, nil
}

func (r *fakeUserRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	user, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *fakeUserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	user, ok := r.byEmail[email]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	u := *user
	return &u, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return nil, r.failWith
	}
	current, ok := r.byID[user.ID]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Username != "" {
		current.Username = user.Username
	}
	if user.Email != "" && user.Email != current.Email {
		delete(r.byEmail, current.Email)
		current.Email = user.Email
		r.byEmail[current.Email] = current
	}
	if user.Password != "" {
		current.Password = user.Password
	}
	current.UpdatedAt = time.Now()
	u := *current
	return &u, nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	user, ok := r.byID[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	delete(r.byEmail, user.Email)
	delete(r.byID, id)
	return nil
}

// fakeHasher marks hashes with a prefix so tests can assert hashing happened
// without paying for argon2.
type fakeHasher struct {
	failWith error
}

func (h *fakeHasher) Hash(password string) (string, error) {
	if h.failWith != nil {
		return "", h.failWith
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(password, encodedHash string) bool {
	return encodedHash == "hashed:"+password
}

type fakeTokenService struct {
	failWith error
}

func (t *fakeTokenService) CreateToken(subject string) (string, error) {
	if t.failWith != nil {
		return "", t.failWith
	}
	return "token-for-" + subject, nil
}

func (t *fakeTokenService) VerifyToken(token string) (string, error) {
	const prefix = "token-for-"
	if len(token) <= len(prefix) || token[:len(prefix)] != prefix {
		return "", domain.ErrTokenInvalid
	}
	return token[len(prefix):], nil
}

type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, errors.New("cache miss")
	}
	return value, nil
}

func (c *fakeCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *fakeCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

type fakePublisher struct {
	mu       sync.Mutex
	topics   []string
	keys     []string
	payloads [][]byte
	failWith error
}

func (p *fakePublisher) Publish(ctx context.Context, topic, key string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.failWith != nil {
		return p.failWith
	}
	p.topics = append(p.topics, topic)
	p.keys = append(p.keys, key)
	p.payloads = append(p.payloads, payload)
	return nil
}

func (p *fakePublisher) Close() error { return nil }

type nopLogger struct{}

func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}
func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}
