package ports

import "context"

// TokenService issues and checks bearer tokens. The subject is the user id
// in string form; both services share one claims layout.
type TokenService interface {
	CreateToken(subject string) (string, error)
	VerifyToken(token string) (string, error)
}

type AuthService interface {
	Login(ctx context.Context, email, password string) (string, error)
}
