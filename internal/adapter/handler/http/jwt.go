package http

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/webstack-labs/user-auth-services/internal/core/domain"
	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

// JWTTokenService signs and checks HS256 bearer tokens with {sub, exp}
// claims. Both services share this one claims layout.
type JWTTokenService struct {
	secretKey  []byte
	expiration time.Duration
	logger     ports.LoggerPort
}

func NewJWTTokenService(secretKey string, expiration time.Duration, logger ports.LoggerPort) *JWTTokenService {
	return &JWTTokenService{
		secretKey:  []byte(secretKey),
		expiration: expiration,
		logger:     logger,
	}
}

var _ ports.TokenService = (*JWTTokenService)(nil)

func (j *JWTTokenService) CreateToken(subject string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(j.expiration)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// VerifyToken checks the signature and expiry and returns the subject claim.
// An expired token and a bad signature come back as distinct errors so the
// middleware can log them apart; the caller sees 401 either way.
func (j *JWTTokenService) VerifyToken(token string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	parsedToken, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return j.secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrTokenExpired
		}
		j.logger.Debug("Failed to parse jwt", map[string]interface{}{
			"error": err.Error(),
		})
		return "", domain.ErrTokenInvalid
	}

	if !parsedToken.Valid || claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}

	return claims.Subject, nil
}
