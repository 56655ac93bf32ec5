package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

const (
	authorizationHeaderKey  = "authorization"
	authorizationType       = "bearer"
	authorizationSubjectKey = "authorization_subject"
)

func AuthMiddleware(token ports.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authorizationHeader := c.GetHeader(authorizationHeaderKey)
		if authorizationHeader == "" {
			newErrorResponse(c, http.StatusUnauthorized, "authorization header required")
			return
		}

		fields := strings.Fields(authorizationHeader)
		if len(fields) != 2 || strings.ToLower(fields[0]) != authorizationType {
			newErrorResponse(c, http.StatusUnauthorized, "bearer token required")
			return
		}

		subject, err := token.VerifyToken(fields[1])
		if err != nil {
			newErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		c.Set(authorizationSubjectKey, subject)
		c.Next()
	}
}

func getAuthSubject(c *gin.Context) (string, bool) {
	value, exists := c.Get(authorizationSubjectKey)
	if !exists {
		return "", false
	}
	subject, ok := value.(string)
	return subject, ok
}
