package database

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"os"

	"golang.org/x/crypto/chacha20poly1305"
)

// ValueCipher seals partial answer values before they hit the database and
// opens them when read back. Rows hold nonce||ciphertext.
type ValueCipher struct {
	key []byte
}

func NewValueCipher(key []byte) (*ValueCipher, error) {
	if len(key) != chacha20poly1305.KeySize {
		return nil, fmt.Errorf("answer key must be %d bytes, got %d", chacha20poly1305.KeySize, len(key))
	}
	return &ValueCipher{key: key}, nil
}

// NewValueCipherFromEnv reads the base64-encoded ANSWER_KEY environment variable.
func NewValueCipherFromEnv() (*ValueCipher, error) {
	encoded := os.Getenv("ANSWER_KEY")
	if encoded == "" {
		return nil, fmt.Errorf("ANSWER_KEY environment variable not set")
	}

	key, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("error decoding ANSWER_KEY: %v", err)
	}

	return NewValueCipher(key)
}

func (c *ValueCipher) Seal(value string) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return nil, fmt.Errorf("error creating cipher: %v", err)
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, fmt.Errorf("error generating nonce: %v", err)
	}

	return aead.Seal(nonce, nonce, []byte(value), nil), nil
}

func (c *ValueCipher) Open(sealed []byte) (string, error) {
	aead, err := chacha20poly1305.NewX(c.key)
	if err != nil {
		return "", fmt.Errorf("error creating cipher: %v", err)
	}

	if len(sealed) < aead.NonceSize() {
		return "", fmt.Errorf("sealed value too short")
	}

	nonce, ciphertext := sealed[:aead.NonceSize()], sealed[aead.NonceSize():]

	value, err := aead.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("error opening sealed value: %v", err)
	}

	return string(value), nil
}
