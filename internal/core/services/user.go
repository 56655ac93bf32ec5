package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/webstack-labs/user-auth-services/internal/core/domain"
	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

const (
	userByIDCacheTTL = 15 * time.Minute

	userCreatedTopic = "user.created"
)

type UserService struct {
	repo      ports.UserRepository
	hasher    ports.PasswordHasher
	logger    ports.LoggerPort
	validate  *validator.Validate
	cache     ports.CachePort
	publisher ports.EventPublisher
}

func NewUserService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	logger ports.LoggerPort,
	validate *validator.Validate,
	cache ports.CachePort,
	publisher ports.EventPublisher,
) *UserService {
	return &UserService{
		repo:      repo,
		hasher:    hasher,
		logger:    logger,
		validate:  validate,
		cache:     cache,
		publisher: publisher,
	}
}

var _ ports.UserService = (*UserService)(nil)

// NewValidator builds the validator used for user input, with the strongpw
// rule registered: at least one uppercase, one lowercase, one digit and one
// non-alphanumeric character.
func NewValidator() *validator.Validate {
	validate := validator.New()
	_ = validate.RegisterValidation("strongpw", func(fl validator.FieldLevel) bool {
		var hasUpper, hasLower, hasDigit, hasSpecial bool
		for _, c := range fl.Field().String() {
			switch {
			case unicode.IsUpper(c):
				hasUpper = true
			case unicode.IsLower(c):
				hasLower = true
			case unicode.IsDigit(c):
				hasDigit = true
			default:
				hasSpecial = true
			}
		}
		return hasUpper && hasLower && hasDigit && hasSpecial
	})
	return validate
}

type userCreatedEvent struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (us *UserService) Register(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := us.validate.Struct(user); err != nil {
		us.logger.Info("Validation failed", map[string]interface{}{
			"error":  err.Error(),
			"method": "Register",
		})
		return nil, fmt.Errorf("%w: %s", domain.ErrValidation, validationDetail(err))
	}

	hashedPassword, err := us.hasher.Hash(user.Password)
	if err != nil {
		us.logger.Error("Error during hashing", map[string]interface{}{
			"error":  err.Error(),
			"method": "Register",
		})
		return nil, domain.ErrInternal
	}

	user.Password = hashedPassword

	user, err = us.repo.CreateUser(ctx, user)
	if err != nil {
		us.logger.Error("Failed to create user in database", map[string]interface{}{
			"error":  err.Error(),
			"method": "Register",
		})
		return nil, err
	}

	us.publishUserCreated(ctx, user)

	created := *user
	created.Password = ""
	return &created, nil
}

// publishUserCreated is best-effort: a dead broker must not fail
// registration.
func (us *UserService) publishUserCreated(ctx context.Context, user *domain.User) {
	payload, err := json.Marshal(userCreatedEvent{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		us.logger.Warn("Failed to marshal user.created event", map[string]interface{}{
			"error": err.Error(),
			"id":    user.ID.String(),
		})
		return
	}

	if err := us.publisher.Publish(ctx, userCreatedTopic, user.ID.String(), payload); err != nil {
		us.logger.Warn("Failed to publish user.created event", map[string]interface{}{
			"error": err.Error(),
			"id":    user.ID.String(),
		})
	}
}

func (us *UserService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		us.logger.Info("Invalid UUID format", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return nil, fmt.Errorf("%w: invalid id format", domain.ErrValidation)
	}

	cacheKey := fmt.Sprintf("user:%s", id)
	if cachedData, err := us.cache.Get(ctx, cacheKey); err == nil {
		var cachedUser domain.User
		if err := json.Unmarshal(cachedData, &cachedUser); err == nil {
			us.logger.Debug("User found in cache", map[string]interface{}{
				"id": id,
			})
			return &cachedUser, nil
		}
	}

	user, err := us.repo.GetUserByID(ctx, userID)
	if err != nil {
		us.logger.Error("Failed to get user", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return nil, err
	}

	if userData, err := json.Marshal(user); err == nil {
		if err := us.cache.Set(ctx, cacheKey, userData, userByIDCacheTTL); err != nil {
			us.logger.Warn("Failed to cache user", map[string]interface{}{
				"error": err.Error(),
				"id":    id,
			})
		}
	}

	return user, nil
}

func (us *UserService) UpdateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	if err := us.validateUpdate(user); err != nil {
		us.logger.Info("Validation failed", map[string]interface{}{
			"error":  err.Error(),
			"method": "UpdateUser",
		})
		return nil, err
	}

	current, err := us.repo.GetUserByID(ctx, user.ID)
	if err != nil {
		us.logger.Error("Failed to get user before update", map[string]interface{}{
			"id":    user.ID,
			"error": err.Error(),
		})
		return nil, err
	}

	if user.Password != "" {
		hashedPassword, err := us.hasher.Hash(user.Password)
		if err != nil {
			us.logger.Error("Error during hashing", map[string]interface{}{
				"error":  err.Error(),
				"method": "UpdateUser",
			})
			return nil, domain.ErrInternal
		}
		user.Password = hashedPassword
	}

	updatedUser, err := us.repo.UpdateUser(ctx, user)
	if err != nil {
		us.logger.Error("Failed to update user", map[string]interface{}{
			"id":    user.ID,
			"error": err.Error(),
		})
		return nil, err
	}

	us.invalidateUserCache(ctx, updatedUser.ID.String(), updatedUser.Email)

	// On an email change the old address may still be cached from a login;
	// left in place it would keep authenticating until its TTL runs out.
	if current.Email != updatedUser.Email {
		if err := us.cache.Delete(ctx, fmt.Sprintf("user_email:%s", current.Email)); err != nil {
			us.logger.Warn("Failed to invalidate user email cache", map[string]interface{}{
				"error": err.Error(),
				"email": current.Email,
			})
		}
	}

	updated := *updatedUser
	updated.Password = ""
	return &updated, nil
}

func (us *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		us.logger.Info("Invalid UUID format", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return fmt.Errorf("%w: invalid id format", domain.ErrValidation)
	}

	user, err := us.repo.GetUserByID(ctx, userID)
	if err != nil {
		us.logger.Error("Failed to get user before deletion", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return err
	}

	if err := us.repo.DeleteUser(ctx, userID); err != nil {
		us.logger.Error("Failed to delete user", map[string]interface{}{
			"id":    id,
			"error": err.Error(),
		})
		return err
	}

	us.invalidateUserCache(ctx, id, user.Email)

	us.logger.Info("User deleted", map[string]interface{}{
		"id": id,
	})
	return nil
}

// validateUpdate applies the registration rules to whichever fields are
// actually being changed; empty fields mean "keep the current value".
func (us *UserService) validateUpdate(user *domain.User) error {
	if user.Username != "" {
		if err := us.validate.Var(user.Username, "min=3,max=50"); err != nil {
			return fmt.Errorf("%w: username must be between 3 and 50 characters", domain.ErrValidation)
		}
	}
	if user.Email != "" {
		if err := us.validate.Var(user.Email, "email"); err != nil {
			return fmt.Errorf("%w: email must be a valid address", domain.ErrValidation)
		}
	}
	if user.Password != "" {
		if err := us.validate.Var(user.Password, "min=8,strongpw"); err != nil {
			return fmt.Errorf("%w: password must be at least 8 characters and contain an uppercase letter, a lowercase letter, a digit and a special character", domain.ErrValidation)
		}
	}
	return nil
}

func (us *UserService) invalidateUserCache(ctx context.Context, id, email string) {
	if err := us.cache.Delete(ctx, fmt.Sprintf("user:%s", id)); err != nil {
		us.logger.Warn("Failed to invalidate user cache", map[string]interface{}{
			"error": err.Error(),
			"id":    id,
		})
	}
	if err := us.cache.Delete(ctx, fmt.Sprintf("user_email:%s", email)); err != nil {
		us.logger.Warn("Failed to invalidate user email cache", map[string]interface{}{
			"error": err.Error(),
			"email": email,
		})
	}
}

// validationDetail flattens validator errors into a single field-level
// message without echoing submitted values.
func validationDetail(err error) string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok || len(validationErrors) == 0 {
		return "invalid input"
	}

	fe := validationErrors[0]
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fieldName(fe))
	case "email":
		return "email must be a valid address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fieldName(fe), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fieldName(fe), fe.Param())
	case "strongpw":
		return "password must contain an uppercase letter, a lowercase letter, a digit and a special character"
	default:
		return fmt.Sprintf("%s is invalid", fieldName(fe))
	}
}

func fieldName(fe validator.FieldError) string {
	switch fe.Field() {
	case "Username":
		return "username"
	case "Email":
		return "email"
	case "Password":
		return "password"
	default:
		return fe.Field()
	}
}
