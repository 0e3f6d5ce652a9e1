// AngelaMos | 2026
// security.go

package core

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/pbkdf2"
)

// PasswordIterations and PasswordKeyLength are part of the stored password
// format. Changing either invalidates every persisted hash.
const (
	PasswordIterations = 120_000
	PasswordKeyLength  = 32
	SaltLength         = 32
)

// DeriveKey runs PBKDF2-SHA512 over password and salt.
func DeriveKey(password string, salt []byte) []byte {
	return pbkdf2.Key(
		[]byte(password),
		salt,
		PasswordIterations,
		PasswordKeyLength,
		sha512.New,
	)
}

// HashPassword returns a fresh hex salt and the hex derived key for password.
func HashPassword(password string) (string, string, error) {
	salt := make([]byte, SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}

	key := DeriveKey(password, salt)

	return hex.EncodeToString(salt), hex.EncodeToString(key), nil
}

// VerifyPassword reports whether password matches the stored salt and hash.
// Malformed stored values never match.
func VerifyPassword(password, salt, hash string) bool {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return false
	}

	want, err := hex.DecodeString(hash)
	if err != nil || len(want) != PasswordKeyLength {
		return false
	}

	got := DeriveKey(password, rawSalt)

	return subtle.ConstantTimeCompare(got, want) == 1
}

// StoredCredentials is the salt and hash pair persisted for a user.
type StoredCredentials struct {
	Salt string
	Hash string
}

var dummyCredentials StoredCredentials

func init() {
	salt, hash, err := HashPassword("dummy_password_for_timing_attack_prevention")
	if err != nil {
		panic(fmt.Sprintf("security: failed to generate dummy hash: %v", err))
	}
	dummyCredentials = StoredCredentials{Salt: salt, Hash: hash}
}

// VerifyPasswordTimingSafe runs a full derivation even when creds is nil so
// that unknown usernames cost the same as wrong passwords.
func VerifyPasswordTimingSafe(password string, creds *StoredCredentials) bool {
	if creds == nil || creds.Salt == "" || creds.Hash == "" {
		VerifyPassword(password, dummyCredentials.Salt, dummyCredentials.Hash)
		return false
	}

	return VerifyPassword(password, creds.Salt, creds.Hash)
}

func GenerateSecureToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

func GenerateSessionToken() (string, error) {
	return GenerateSecureToken(32)
}

func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

func CompareTokenHash(token, hash string) bool {
	tokenHash := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(tokenHash), []byte(hash)) == 1
}
