package models

// User is a registered donor. PasswordHash holds a bcrypt hash, never the
// plain secret.
type User struct {
	ID           int64
	UserName     string
	PasswordHash string
	Email        string
}
