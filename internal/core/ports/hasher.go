package ports

// PasswordHasher is a one-way salted hash. Verify must fail closed on a
// malformed encoded hash and never report why a check failed.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encodedHash string) bool
}
