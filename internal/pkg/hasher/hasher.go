// Package hasher provides one-way password hashing backed by bcrypt.
package hasher

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted bcrypt hash of password. The salt is randomized
// per call, so hashing the same password twice yields different outputs.
func Hash(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether password reproduces hash. The comparison is
// constant-time; a malformed or corrupt hash simply yields false.
func Verify(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
