package service

// PasswordService hashes and checks passwords. Implemented with Argon2id in
// internal/infrastructure/security.
type PasswordService interface {
	HashPassword(password string) (string, error)
	CheckPasswordHash(password, encodedHash string) (bool, error)
}
