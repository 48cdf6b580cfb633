// Package cryptox seals small values (credentials) at rest with AES-256-GCM
// under a key derived from a local secret with Argon2id.
package cryptox

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// SaltSize is the length of the per-install salt fed to DeriveKey.
const SaltSize = 16

var ErrCiphertextTooShort = errors.New("ciphertext too short")

// Sealer encrypts and decrypts opaque blobs.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(blob []byte) ([]byte, error)
}

// DeriveKey stretches secret with salt into a 32-byte AES key.
func DeriveKey(secret []byte, salt []byte) []byte {
	return argon2.IDKey(secret, salt, 1, 64*1024, 4, 32)
}

// AESGCM is a Sealer producing nonce||ciphertext blobs.
type AESGCM struct {
	aead cipher.AEAD
}

// NewAESGCM builds a sealer from a 16, 24 or 32 byte key.
func NewAESGCM(key []byte) (*AESGCM, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("new cipher: %w", err)
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("new gcm: %w", err)
	}
	return &AESGCM{aead: aead}, nil
}

// NewSealer derives a key from secret and salt. An empty secret yields a
// pass-through sealer, so credentials are stored unencrypted.
func NewSealer(secret []byte, salt []byte) (Sealer, error) {
	if len(secret) == 0 {
		return Plain{}, nil
	}
	return NewAESGCM(DeriveKey(secret, salt))
}

func (s *AESGCM) Seal(plaintext []byte) ([]byte, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return s.aead.Seal(nonce, nonce, plaintext, nil), nil
}

func (s *AESGCM) Open(blob []byte) ([]byte, error) {
	n := s.aead.NonceSize()
	if len(blob) < n {
		return nil, ErrCiphertextTooShort
	}
	return s.aead.Open(nil, blob[:n], blob[n:], nil)
}

// Plain stores values as-is.
type Plain struct{}

func (Plain) Seal(plaintext []byte) ([]byte, error) { return append([]byte(nil), plaintext...), nil }
func (Plain) Open(blob []byte) ([]byte, error)      { return append([]byte(nil), blob...), nil }
