package ports

import "pulseboard-analytics-core/internal/domain"

// EncryptionService is the credential vault gate. No other component may read
// or write stored access tokens except through this interface.
type EncryptionService interface {
	Encrypt(plaintext string) (domain.EncryptedSecret, error)
	Decrypt(secret domain.EncryptedSecret) (string, error)
}
