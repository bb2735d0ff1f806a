package auth

import "golang.org/x/crypto/bcrypt"

// HashPassword returns the bcrypt hash of pwd.
func HashPassword(pwd string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	return string(hash), err
}

// CheckPassword reports whether pwd matches the stored bcrypt hash.
func CheckPassword(pwd, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(pwd)) == nil
}
