package utils

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/argon2"
)

const saltLen = 16

// GenerateSalt returns a fresh random salt, hex encoded.
func GenerateSalt() (string, error) {
	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return hex.EncodeToString(salt), nil
}

// HashPassword derives the stored hash from a password and a salt
// produced by GenerateSalt.
func HashPassword(password, salt string) string {
	key := argon2.IDKey([]byte(password), []byte(salt), 1, 64*1024, 4, 32)
	return hex.EncodeToString(key)
}

// CheckPassword reports whether password hashes to the stored value
// under the stored salt. Constant-time on the comparison so timing does
// not leak how close a guess was.
func CheckPassword(password, salt, hash string) bool {
	candidate := HashPassword(password, salt)
	return subtle.ConstantTimeCompare([]byte(candidate), []byte(hash)) == 1
}
