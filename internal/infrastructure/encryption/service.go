// Package encryption implements the credential vault: AES-256-GCM encryption
// of platform access tokens before they touch the database.
package encryption

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/ports"
)

// Service encrypts and decrypts secrets with a process-wide symmetric key
type Service struct {
	aead cipher.AEAD
}

// NewService creates the vault from a 64-character hex key (32 bytes)
func NewService(hexKey string) (ports.EncryptionService, error) {
	key, err := hex.DecodeString(hexKey)
	if err != nil {
		return nil, &domain.CryptoError{Op: "init", Err: fmt.Errorf("key is not valid hex: %w", err)}
	}
	if len(key) != 32 {
		return nil, &domain.CryptoError{Op: "init", Err: fmt.Errorf("key must be 32 bytes, got %d", len(key))}
	}

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, &domain.CryptoError{Op: "init", Err: err}
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, &domain.CryptoError{Op: "init", Err: err}
	}

	return &Service{aead: aead}, nil
}

// Encrypt seals a plaintext and returns hex ciphertext plus the hex IV used
func (s *Service) Encrypt(plaintext string) (domain.EncryptedSecret, error) {
	if plaintext == "" {
		return domain.EncryptedSecret{}, &domain.CryptoError{Op: "encrypt", Err: errors.New("plaintext is empty")}
	}

	iv := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, iv); err != nil {
		return domain.EncryptedSecret{}, &domain.CryptoError{Op: "encrypt", Err: err}
	}

	sealed := s.aead.Seal(nil, iv, []byte(plaintext), nil)
	return domain.EncryptedSecret{
		Ciphertext: hex.EncodeToString(sealed),
		IV:         hex.EncodeToString(iv),
	}, nil
}

// Decrypt opens a secret. A tampered ciphertext or an IV that does not match
// the one produced at encryption time fails GCM authentication and surfaces
// here as an error, never as silent garbage.
func (s *Service) Decrypt(secret domain.EncryptedSecret) (string, error) {
	ciphertext, err := hex.DecodeString(secret.Ciphertext)
	if err != nil {
		return "", &domain.CryptoError{Op: "decrypt", Err: fmt.Errorf("ciphertext is not valid hex: %w", err)}
	}
	iv, err := hex.DecodeString(secret.IV)
	if err != nil {
		return "", &domain.CryptoError{Op: "decrypt", Err: fmt.Errorf("iv is not valid hex: %w", err)}
	}
	if len(iv) != s.aead.NonceSize() {
		return "", &domain.CryptoError{Op: "decrypt", Err: fmt.Errorf("iv must be %d bytes, got %d", s.aead.NonceSize(), len(iv))}
	}

	plaintext, err := s.aead.Open(nil, iv, ciphertext, nil)
	if err != nil {
		return "", &domain.CryptoError{Op: "decrypt", Err: err}
	}
	return string(plaintext), nil
}
