package account

import "golang.org/x/crypto/bcrypt"

// HashPassword derives the stored credential material from a plaintext
// password. Plaintext never reaches a repository.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// CheckPassword reports whether the password matches the stored hash.
func CheckPassword(hash []byte, password string) bool {
	return bcrypt.CompareHashAndPassword(hash, []byte(password)) == nil
}
