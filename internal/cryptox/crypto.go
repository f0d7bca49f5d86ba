// Package cryptox implements the password hashers used by the credential
// store and the verification of stored hashes.
//
// Three encodings are supported and can coexist in one users file:
//
//	sha256    64 lowercase hex characters, unsalted (legacy default)
//	argon2id  $argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//	bcrypt    $2a$10$...
//
// The users file delimiter must not be a character any of them can produce;
// see ConflictsWithHashes.
package cryptox

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"github.com/dmitrijs2005/loginsystem/internal/common"
	"github.com/pkg/errors"
)

// Algorithm names accepted by NewHasher and returned by Identify.
const (
	AlgorithmSHA256   = "sha256"
	AlgorithmArgon2id = "argon2id"
	AlgorithmBcrypt   = "bcrypt"
)

// Hasher turns a plaintext password into its stored form and checks a
// plaintext password against a stored form it produced.
type Hasher interface {
	// Hash returns the encoded hash of password.
	Hash(password string) (string, error)

	// Check reports whether password matches hash.
	Check(password, hash string) bool

	// Algorithm returns the name of the algorithm.
	Algorithm() string
}

// hashAlphabet is every character a supported encoding can produce: hex digits,
// bcrypt's base64 variant, standard base64 and the PHC separators.
const hashAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789$./+=,"

// ConflictsWithHashes reports whether s contains a character that can appear
// in a stored hash.
func ConflictsWithHashes(s string) bool {
	return strings.ContainsAny(s, hashAlphabet)
}

// NewHasher returns the hasher for algorithm. bcryptCost is only used by the
// bcrypt hasher; zero selects bcrypt's default cost.
func NewHasher(algorithm string, bcryptCost int) (Hasher, error) {
	switch strings.ToLower(algorithm) {
	case AlgorithmSHA256, "":
		return SHA256Hasher{}, nil
	case AlgorithmArgon2id:
		return NewArgon2idHasher(), nil
	case AlgorithmBcrypt:
		return NewBcryptHasher(bcryptCost), nil
	}
	return nil, errors.Wrapf(common.ErrHashingUnavailable, "unknown algorithm %q", algorithm)
}

// Identify returns the algorithm that produced hash, or "" when the format
// is not recognised.
func Identify(hash string) string {
	switch {
	case strings.HasPrefix(hash, argon2idPrefix):
		return AlgorithmArgon2id
	case strings.HasPrefix(hash, "$2a$"), strings.HasPrefix(hash, "$2b$"), strings.HasPrefix(hash, "$2y$"):
		return AlgorithmBcrypt
	case isSHA256Hex(hash):
		return AlgorithmSHA256
	}
	return ""
}

// Verify checks password against a stored hash of any supported format.
func Verify(password, hash string) bool {
	switch Identify(hash) {
	case AlgorithmSHA256:
		return SHA256Hasher{}.Check(password, hash)
	case AlgorithmArgon2id:
		return argon2idCheck(password, hash)
	case AlgorithmBcrypt:
		return BcryptHasher{}.Check(password, hash)
	}
	return false
}

// SHA256Hasher is the single-round unsalted SHA-256 scheme of the original
// users file format.
type SHA256Hasher struct{}

// HashSHA256Hex returns the lowercase hex SHA-256 digest of password.
func HashSHA256Hex(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

func (SHA256Hasher) Hash(password string) (string, error) {
	return HashSHA256Hex(password), nil
}

func (SHA256Hasher) Check(password, hash string) bool {
	want := HashSHA256Hex(password)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(hash))) == 1
}

func (SHA256Hasher) Algorithm() string { return AlgorithmSHA256 }

func isSHA256Hex(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
