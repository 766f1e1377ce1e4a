// Package security wraps fernet token handling for secrets stored at rest,
// such as the report API key in the system settings table.
package security

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/realtrackapp/BackOffice-Backend/internal/apperrors"
)

// Encryptor encrypts and decrypts short secrets with a fernet key.
// Tokens carry no TTL: a stored secret stays valid until rotated.
type Encryptor struct {
	keys []*fernet.Key
}

// NewEncryptor creates an Encryptor from a base64-encoded fernet key.
// An empty key generates an ephemeral one, which is only useful for tests
// and single-run setups: secrets encrypted with it do not survive a restart.
func NewEncryptor(encodedKey string) (*Encryptor, error) {
	if encodedKey == "" {
		var key fernet.Key
		if err := key.Generate(); err != nil {
			return nil, fmt.Errorf("failed to generate fernet key: %w", err)
		}
		return &Encryptor{keys: []*fernet.Key{&key}}, nil
	}

	keys, err := fernet.DecodeKeys(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidEncryptionKey, err)
	}
	return &Encryptor{keys: keys}, nil
}

// Encrypt returns the fernet token for the given plaintext.
func (e *Encryptor) Encrypt(plaintext string) (string, error) {
	token, err := fernet.EncryptAndSign([]byte(plaintext), e.keys[0])
	if err != nil {
		return "", fmt.Errorf("failed to encrypt secret: %w", err)
	}
	return string(token), nil
}

// Decrypt verifies and decrypts a fernet token produced by Encrypt.
func (e *Encryptor) Decrypt(token string) (string, error) {
	plaintext := fernet.VerifyAndDecrypt([]byte(token), 0, e.keys)
	if plaintext == nil {
		return "", apperrors.ErrDecryptionFailed
	}
	return string(plaintext), nil
}
