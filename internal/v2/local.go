// Package v2 implements the PASETO v2 engine: XChaCha20-Poly1305 with a
// message-derived nonce for local tokens and Ed25519 for public tokens.
package v2

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/chacha20poly1305"

	"github.com/renesugar/Paseto-1/internal/encoding"
)

const (
	// KeySize is the symmetric key size for v2.local.
	KeySize = chacha20poly1305.KeySize
	// NonceSize is the XChaCha20-Poly1305 nonce size carried at the front
	// of a v2.local body.
	NonceSize = chacha20poly1305.NonceSizeX
)

// ErrAuthentication is returned for any v2 decryption or verification
// failure.
var ErrAuthentication = errors.New("v2 token authentication failed")

// randReader is the source of nonce seed material. It can be overridden
// for testing.
var randReader io.Reader = rand.Reader

// Encrypt produces a v2.local body: nonce || ciphertext+tag. The AEAD
// nonce is BLAKE2b over the payload keyed by fresh random bytes, so
// accidental reuse of seed material with a different payload still yields
// a distinct nonce.
func Encrypt(key, header, payload, footer []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	seed := make([]byte, NonceSize)
	if _, err := io.ReadFull(randReader, seed); err != nil {
		return nil, err
	}

	nonce, err := deriveNonce(seed, payload)
	if err != nil {
		return nil, err
	}

	preAuth := encoding.PAE(header, nonce, footer)

	body := make([]byte, 0, NonceSize+len(payload)+aead.Overhead())
	body = append(body, nonce...)
	return aead.Seal(body, nonce, payload, preAuth), nil
}

// Decrypt opens a v2.local body. It fails closed: on any mismatch no
// plaintext is returned.
func Decrypt(key, header, body, footer []byte) ([]byte, error) {
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	if len(body) < NonceSize+aead.Overhead() {
		return nil, ErrAuthentication
	}

	nonce := body[:NonceSize]
	ciphertext := body[NonceSize:]
	preAuth := encoding.PAE(header, nonce, footer)

	payload, err := aead.Open(nil, nonce, ciphertext, preAuth)
	if err != nil {
		return nil, ErrAuthentication
	}
	return payload, nil
}

// deriveNonce computes BLAKE2b(payload) keyed with seed, truncated to the
// nonce size.
func deriveNonce(seed, payload []byte) ([]byte, error) {
	h, err := blake2b.New(NonceSize, seed)
	if err != nil {
		return nil, err
	}
	h.Write(payload)
	return h.Sum(nil), nil
}
