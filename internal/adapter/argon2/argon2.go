// Package argon2 hashes passwords with argon2id and a random per-call salt,
// encoded in the PHC string format:
//
//	$argon2id$v=19$m=MEMORY,t=TIME,p=THREADS$SALT$HASH
package argon2

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"

	"github.com/webstack-labs/user-auth-services/internal/core/ports"
)

// OWASP-recommended argon2id parameters.
const (
	defaultTime    = 1
	defaultMemory  = 64 * 1024
	defaultThreads = 4
	defaultKeyLen  = 32
	defaultSaltLen = 16
)

type Hasher struct {
	time    uint32
	memory  uint32
	threads uint8
	keyLen  uint32
	saltLen int
}

type Option func(*Hasher)

// WithTime sets the number of iterations.
func WithTime(t uint32) Option {
	return func(h *Hasher) { h.time = t }
}

// WithMemory sets the memory usage in KiB.
func WithMemory(m uint32) Option {
	return func(h *Hasher) { h.memory = m }
}

// WithThreads sets the parallelism.
func WithThreads(t uint8) Option {
	return func(h *Hasher) { h.threads = t }
}

func NewHasher(opts ...Option) *Hasher {
	h := &Hasher{
		time:    defaultTime,
		memory:  defaultMemory,
		threads: defaultThreads,
		keyLen:  defaultKeyLen,
		saltLen: defaultSaltLen,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

var _ ports.PasswordHasher = (*Hasher)(nil)

// Hash derives an argon2id hash with a fresh random salt. An entropy-source
// failure is returned as an error and must abort the caller's operation.
func (h *Hasher) Hash(password string) (string, error) {
	salt := make([]byte, h.saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("argon2: generate salt: %w", err)
	}

	hash := argon2.IDKey([]byte(password), salt, h.time, h.memory, h.threads, h.keyLen)

	encoded := fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		h.memory, h.time, h.threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(hash),
	)
	return encoded, nil
}

// Verify recomputes the hash with the salt and cost parameters embedded in
// encodedHash and compares in constant time. A malformed encoded hash fails
// closed: the answer is false, never an error.
func (h *Hasher) Verify(password, encodedHash string) bool {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return false
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return false
	}

	var memory, time uint32
	var threads uint8
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &memory, &time, &threads); err != nil {
		return false
	}
	if memory == 0 || time == 0 || threads == 0 {
		return false
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return false
	}

	expected, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil || len(expected) == 0 {
		return false
	}

	hash := argon2.IDKey([]byte(password), salt, time, memory, threads, uint32(len(expected)))
	return subtle.ConstantTimeCompare(hash, expected) == 1
}
