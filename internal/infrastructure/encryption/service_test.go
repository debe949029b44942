package encryption_test

import (
	"strings"
	"testing"

	"pulseboard-analytics-core/internal/domain"
	"pulseboard-analytics-core/internal/infrastructure/encryption"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

func TestEncryptDecryptRoundTrip(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	secret, err := vault.Encrypt("EAAB-long-lived-token")
	require.NoError(t, err)
	assert.NotEmpty(t, secret.Ciphertext)
	assert.NotEmpty(t, secret.IV)
	assert.NotContains(t, secret.Ciphertext, "EAAB")

	plaintext, err := vault.Decrypt(secret)
	require.NoError(t, err)
	assert.Equal(t, "EAAB-long-lived-token", plaintext)
}

func TestEncryptUsesFreshIV(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	first, err := vault.Encrypt("same-token")
	require.NoError(t, err)
	second, err := vault.Encrypt("same-token")
	require.NoError(t, err)

	assert.NotEqual(t, first.IV, second.IV)
	assert.NotEqual(t, first.Ciphertext, second.Ciphertext)
}

func TestEncryptRejectsEmptyPlaintext(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	_, err = vault.Encrypt("")
	var cryptoErr *domain.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, "encrypt", cryptoErr.Op)
}

func TestNewServiceRejectsBadKeys(t *testing.T) {
	cases := map[string]string{
		"not hex":   "zzzz",
		"too short": "0123456789abcdef",
		"empty":     "",
	}
	for name, key := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := encryption.NewService(key)
			var cryptoErr *domain.CryptoError
			require.ErrorAs(t, err, &cryptoErr)
		})
	}
}

func TestDecryptFailsOnTamperedCiphertext(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	secret, err := vault.Encrypt("token")
	require.NoError(t, err)

	// Flip one hex digit
	tampered := secret
	if strings.HasPrefix(tampered.Ciphertext, "0") {
		tampered.Ciphertext = "1" + tampered.Ciphertext[1:]
	} else {
		tampered.Ciphertext = "0" + tampered.Ciphertext[1:]
	}

	_, err = vault.Decrypt(tampered)
	var cryptoErr *domain.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
	assert.Equal(t, "decrypt", cryptoErr.Op)
}

func TestDecryptFailsOnMismatchedIV(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	secret, err := vault.Encrypt("token")
	require.NoError(t, err)
	other, err := vault.Encrypt("other")
	require.NoError(t, err)

	secret.IV = other.IV
	_, err = vault.Decrypt(secret)
	var cryptoErr *domain.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
}

func TestDecryptFailsOnGarbageInput(t *testing.T) {
	vault, err := encryption.NewService(testKey)
	require.NoError(t, err)

	_, err = vault.Decrypt(domain.EncryptedSecret{Ciphertext: "not-hex", IV: "also-not-hex"})
	var cryptoErr *domain.CryptoError
	require.ErrorAs(t, err, &cryptoErr)
}
