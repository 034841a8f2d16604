// Package cryptox seals small secrets (session credentials) before they are
// written to the local database.
package cryptox

import (
	"crypto/cipher"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/useradmin/internal/common"
	"golang.org/x/crypto/chacha20poly1305"
)

// KeySize is the length of a sealing key in bytes.
const KeySize = chacha20poly1305.KeySize

var ErrShortCiphertext = errors.New("ciphertext too short")

// Sealer encrypts and authenticates values with XChaCha20-Poly1305. The
// output layout is nonce || ciphertext.
type Sealer struct {
	aead cipher.AEAD
}

// NewSealer builds a Sealer from a KeySize-byte key.
func NewSealer(key []byte) (*Sealer, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, fmt.Errorf("init aead: %w", err)
	}
	return &Sealer{aead: aead}, nil
}

// NewKey returns a fresh random sealing key.
func NewKey() []byte {
	return common.GenerateRandByteArray(KeySize)
}

// Seal encrypts plaintext. The additional data binds the ciphertext to a
// storage slot so values cannot be swapped between keys.
func (s *Sealer) Seal(plaintext, additionalData []byte) []byte {
	nonce := common.GenerateRandByteArray(s.aead.NonceSize())
	out := make([]byte, 0, len(nonce)+len(plaintext)+s.aead.Overhead())
	out = append(out, nonce...)
	return s.aead.Seal(out, nonce, plaintext, additionalData)
}

// Open reverses Seal.
func (s *Sealer) Open(sealed, additionalData []byte) ([]byte, error) {
	ns := s.aead.NonceSize()
	if len(sealed) < ns+s.aead.Overhead() {
		return nil, ErrShortCiphertext
	}
	plaintext, err := s.aead.Open(nil, sealed[:ns], sealed[ns:], additionalData)
	if err != nil {
		return nil, fmt.Errorf("open sealed value: %w", err)
	}
	return plaintext, nil
}
