package secrets

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"io"
)

// Cipher seals and opens values under scope-derived keys.
type Cipher struct {
	master []byte
}

// New creates a Cipher from a 32-byte master key.
func New(master []byte) (*Cipher, error) {
	if len(master) != KeySize {
		return nil, ErrInvalidKey
	}
	return &Cipher{master: append([]byte(nil), master...)}, nil
}

// Seal encrypts data for scope. Output layout: nonce | ciphertext | tag.
func (c *Cipher) Seal(scope string, data []byte) ([]byte, error) {
	aead, err := c.aead(scope)
	if err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, errors.Join(ErrEncryptionFailed, err)
	}
	return aead.Seal(nonce, nonce, data, []byte(scope)), nil
}

// Open decrypts a value produced by Seal for the same scope.
func (c *Cipher) Open(scope string, sealed []byte) ([]byte, error) {
	aead, err := c.aead(scope)
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	n := aead.NonceSize()
	if len(sealed) < n+aead.Overhead() {
		return nil, ErrInvalidCiphertext
	}
	plain, err := aead.Open(make([]byte, 0, len(sealed)-n-aead.Overhead()), sealed[:n], sealed[n:], []byte(scope))
	if err != nil {
		return nil, errors.Join(ErrDecryptionFailed, err)
	}
	return plain, nil
}

func (c *Cipher) aead(scope string) (cipher.AEAD, error) {
	key, err := deriveKey(c.master, scope)
	if err != nil {
		return nil, err
	}
	defer clearBytes(key)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}
