package service

import "golang.org/x/crypto/bcrypt"

// HashPassword produces a salted bcrypt hash of the password. Two calls on
// the same input yield different strings; the algorithm and cost are
// embedded in the hash itself, so the scheme can be migrated later without
// touching stored records.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches the stored hash. A
// malformed hash is treated as a mismatch, never as an error.
func VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
