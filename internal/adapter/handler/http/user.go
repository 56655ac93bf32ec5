package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

type UserHandler struct {
	userService ports.UserService
	logger      ports.LoggerPort
	metrics     ports.MetricsPort
}

type CreateUserRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type UpdateUserRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// UserDTO never carries the password hash.
type UserDTO struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:       user.ID.String(),
		Username: user.Username,
		Email:    user.Email,
	}
}

func NewUserHandler(
	userService ports.UserService,
	logger ports.LoggerPort,
	metrics ports.MetricsPort,
) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
		metrics:     metrics,
	}
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	var req CreateUserRequest

	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Info("Failed JSON parse in registration", map[string]interface{}{
			"error": err.Error(),
		})
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user := &domain.User{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	}

	createdUser, err := h.userService.Register(c.Request.Context(), user)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.logger.Info("User created successfully", map[string]interface{}{
		"email":   createdUser.Email,
		"user_id": createdUser.ID,
	})

	c.JSON(http.StatusOK, toUserDTO(createdUser))
}

func (h *UserHandler) GetUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")
	if !h.requireOwner(c, userID) {
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserDTO(user))
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")
	if !h.requireOwner(c, userID) {
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid request body")
		return
	}

	user, err := h.userService.GetUser(c.Request.Context(), userID)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	updated := domain.User{ID: user.ID}
	if req.Username != nil {
		updated.Username = *req.Username
	}
	if req.Email != nil {
		updated.Email = *req.Email
	}
	if req.Password != nil {
		updated.Password = *req.Password
	}

	result, err := h.userService.UpdateUser(c.Request.Context(), &updated)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUserDTO(result))
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	start := time.Now()
	defer func() {
		h.metrics.RecordMetrics(c, start)
	}()

	userID := c.Param("id")
	if !h.requireOwner(c, userID) {
		return
	}

	if err := h.userService.DeleteUser(c.Request.Context(), userID); err != nil {
		handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// requireOwner restricts /users/:id operations to the token subject itself.
func (h *UserHandler) requireOwner(c *gin.Context, userID string) bool {
	subject, ok := getAuthSubject(c)
	if !ok {
		newErrorResponse(c, http.StatusUnauthorized, "unauthorized")
		return false
	}
	if subject != userID {
		h.logger.Warn("Access denied to user profile", map[string]interface{}{
			"requester_id": subject,
			"requested_id": userID,
		})
		newErrorResponse(c, http.StatusForbidden, "access denied")
		return false
	}
	return true
}
