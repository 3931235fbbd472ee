package auth

import "golang.org/x/crypto/bcrypt"

// User is a portal operator account. Portal users act on employees' access;
// they are not the employees whose status the backends track.
type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash []byte `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// MatchPassword compares a candidate password against the stored hash.
func (u *User) MatchPassword(password string) bool {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(password)) == nil
}

// HashPassword produces a bcrypt hash for storage.
func HashPassword(password string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}
