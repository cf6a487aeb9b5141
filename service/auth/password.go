package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a salted bcrypt hash; the salt is embedded in the
// returned string.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether password matches the stored hash. A malformed
// stored hash counts as a mismatch so callers cannot distinguish it from a
// wrong password.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
