package http

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
)

type nopLogger struct{}

func (nopLogger) Info(msg string, fields map[string]interface{})  {}
func (nopLogger) Error(msg string, fields map[string]interface{}) {}
func (nopLogger) Debug(msg string, fields map[string]interface{}) {}
func (nopLogger) Warn(msg string, fields map[string]interface{})  {}

type nopMetrics struct{}

func (nopMetrics) IncrementCounter(name string, labels map[string]string)                       {}
func (nopMetrics) RecordDuration(name string, duration time.Duration, labels map[string]string) {}
func (nopMetrics) RecordMetrics(c *gin.Context, start time.Time)                                {}

// fakeAuthService accepts a single fixed credential pair.
type fakeAuthService struct {
	email    string
	password string
	token    string
	failWith error
}

func (s *fakeAuthService) Login(ctx context.Context, email, password string) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	if email != s.email || password != s.password {
		return "", domain.ErrInvalidCredentials
	}
	return s.token, nil
}

type fakeUserService struct {
	users    map[string]*domain.User
	failWith error
}

func newFakeUserService(users ...*domain.User) *fakeUserService {
	s := &fakeUserService{users: map[string]*domain.User{}}
	for _, u := range users {
		s.users[u.ID.String()] = u
	}
	return s
}

func (s *fakeUserService) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	created := *user
	created.Password = ""
	s.users[created.ID.String()] = &created
	return &created, nil
}

func (s *fakeUserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	user, ok := s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *fakeUserService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	current, ok := s.users[user.ID.String()]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if user.Username != "" {
		current.Username = user.Username
	}
	if user.Email != "" {
		current.Email = user.Email
	}
	return current, nil
}

func (s *fakeUserService) DeleteUser(ctx context.Context, id string) error {
	if s.failWith != nil {
		return s.failWith
	}
	if _, ok := s.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}
