// Package v1 implements the legacy PASETO v1 engine: AES-256-CTR with
// HMAC-SHA384 in an encrypt-then-MAC construction for local tokens and
// RSA-PSS-SHA384 for public tokens.
package v1

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha512"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/renesugar/Paseto-1/internal/encoding"
)

const (
	// KeySize is the symmetric key size for v1.local.
	KeySize = 32
	// NonceSize is the random nonce length carried at the front of a
	// v1.local body.
	NonceSize = 16
	// MacSize is the HMAC-SHA384 tag length at the end of a v1.local body.
	MacSize = 48

	// Domain-separation labels keeping the derived encryption and
	// authentication keys independent.
	encryptionKDFInfo = "paseto-encryption-key"
	authKDFInfo       = "paseto-auth-key-for-aead"
)

// ErrAuthentication is returned for any v1 decryption or verification
// failure.
var ErrAuthentication = errors.New("v1 token authentication failed")

// randReader is the source of nonce and PSS salt material. It can be
// overridden for testing.
var randReader io.Reader = rand.Reader

// Encrypt produces a v1.local body: nonce || ciphertext || tag. The
// encryption and authentication keys are derived independently from the
// local key and nonce, and the tag covers header, nonce, ciphertext, and
// footer through the pre-auth encoding.
func Encrypt(key, header, payload, footer []byte) ([]byte, error) {
	nonce := make([]byte, NonceSize)
	if _, err := io.ReadFull(randReader, nonce); err != nil {
		return nil, err
	}

	encKey, iv, authKey, err := deriveKeys(key, nonce)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}
	ciphertext := make([]byte, len(payload))
	cipher.NewCTR(block, iv).XORKeyStream(ciphertext, payload)

	preAuth := encoding.PAE(header, nonce, ciphertext, footer)
	mac := hmac.New(sha512.New384, authKey)
	mac.Write(preAuth)

	body := make([]byte, 0, NonceSize+len(ciphertext)+MacSize)
	body = append(body, nonce...)
	body = append(body, ciphertext...)
	return mac.Sum(body), nil
}

// Decrypt opens a v1.local body. The tag is recomputed and compared in
// constant time strictly before any decryption work.
func Decrypt(key, header, body, footer []byte) ([]byte, error) {
	if len(body) < NonceSize+MacSize {
		return nil, ErrAuthentication
	}

	nonce := body[:NonceSize]
	ciphertext := body[NonceSize : len(body)-MacSize]
	tag := body[len(body)-MacSize:]

	encKey, iv, authKey, err := deriveKeys(key, nonce)
	if err != nil {
		return nil, err
	}

	preAuth := encoding.PAE(header, nonce, ciphertext, footer)
	mac := hmac.New(sha512.New384, authKey)
	mac.Write(preAuth)
	if !hmac.Equal(mac.Sum(nil), tag) {
		return nil, ErrAuthentication
	}

	block, err := aes.NewCipher(encKey)
	if err != nil {
		return nil, err
	}
	payload := make([]byte, len(ciphertext))
	cipher.NewCTR(block, iv).XORKeyStream(payload, ciphertext)
	return payload, nil
}

// deriveKeys expands the local key into the CTR key, CTR IV, and HMAC key
// using HKDF-SHA384 salted with the nonce. The encryption label yields 48
// bytes split into the 32-byte CTR key and 16-byte IV; the authentication
// label yields the 32-byte HMAC key.
func deriveKeys(key, nonce []byte) (encKey, iv, authKey []byte, err error) {
	okm := make([]byte, KeySize+aes.BlockSize)
	r := hkdf.New(sha512.New384, key, nonce, []byte(encryptionKDFInfo))
	if _, err = io.ReadFull(r, okm); err != nil {
		return nil, nil, nil, err
	}

	authKey = make([]byte, KeySize)
	r = hkdf.New(sha512.New384, key, nonce, []byte(authKDFInfo))
	if _, err = io.ReadFull(r, authKey); err != nil {
		return nil, nil, nil, err
	}

	return okm[:KeySize], okm[KeySize:], authKey, nil
}
