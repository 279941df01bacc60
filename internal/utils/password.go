package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword runs the plaintext through bcrypt at the given work factor.
// The salt is generated per call, so two hashes of the same password never
// match and the plaintext is unrecoverable from what gets stored.
func HashPassword(plain string, cost int) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt hash.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
