package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

const userByEmailCacheTTL = 10 * time.Minute

type AuthService struct {
	userRepo     ports.UserRepository
	hasher       ports.PasswordHasher
	tokenService ports.TokenService
	logger       ports.LoggerPort
	cache        ports.CachePort
}

func NewAuthService(
	userRepo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokenService ports.TokenService,
	logger ports.LoggerPort,
	cache ports.CachePort,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		hasher:       hasher,
		tokenService: tokenService,
		logger:       logger,
		cache:        cache,
	}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login looks up the credential by email, verifies the password against the
// stored hash and mints a token with the user id as subject. An unknown email
// and a wrong password both come back as ErrInvalidCredentials; everything
// else is ErrInternal. The store is never written to.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.lookupUser(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.logger.Info("Login failed: unknown email", map[string]interface{}{
				"email": email,
			})
			return "", domain.ErrInvalidCredentials
		}
		s.logger.Error("Failed to get user by email", map[string]interface{}{
			"email": email,
			"error": err.Error(),
		})
		return "", domain.ErrInternal
	}

	if !s.hasher.Verify(password, user.Password) {
		s.logger.Info("Invalid password attempt", map[string]interface{}{
			"email": email,
		})
		return "", domain.ErrInvalidCredentials
	}

	token, err := s.tokenService.CreateToken(user.ID.String())
	if err != nil {
		s.logger.Error("Failed to create token", map[string]interface{}{
			"error":   err.Error(),
			"user_id": user.ID,
		})
		return "", domain.ErrInternal
	}

	return token, nil
}

func (s *AuthService) lookupUser(ctx context.Context, email string) (*domain.User, error) {
	cacheKey := fmt.Sprintf("user_email:%s", email)

	if cachedData, err := s.cache.Get(ctx, cacheKey); err == nil {
		var cachedUser domain.User
		if err := json.Unmarshal(cachedData, &cachedUser); err == nil {
			s.logger.Debug("User found in email cache", map[string]interface{}{
				"email": email,
			})
			return &cachedUser, nil
		}
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	if userData, err := json.Marshal(user); err == nil {
		if err := s.cache.Set(ctx, cacheKey, userData, userByEmailCacheTTL); err != nil {
			s.logger.Warn("Failed to cache user by email", map[string]interface{}{
				"error": err.Error(),
				"email": email,
			})
		}
	}

	return user, nil
}
