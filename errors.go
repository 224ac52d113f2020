package paseto

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrTokenFormat is returned when a token does not match the
	// version.purpose.payload[.footer] framing: wrong field count or a
	// field that is not valid unpadded base64url.
	ErrTokenFormat = errors.New("malformed token")

	// ErrUnsupportedVersion is returned when the version field names no
	// known protocol version.
	ErrUnsupportedVersion = errors.New("unsupported protocol version")

	// ErrUnsupportedPurpose is returned when the purpose field is neither
	// "local" nor "public".
	ErrUnsupportedPurpose = errors.New("unsupported purpose")

	// ErrKeyFormat is returned when the supplied key does not fit the
	// requested version and purpose.
	ErrKeyFormat = errors.New("key does not fit version and purpose")

	// ErrAuthenticationFailed is returned for every cryptographic
	// verification failure: AEAD tag, HMAC tag, or signature mismatch.
	// The causes are deliberately not distinguished, and no plaintext is
	// ever returned alongside it.
	ErrAuthenticationFailed = errors.New("token authentication failed")
)

// FormatError describes a framing problem detected before any cryptographic
// work. Format problems are safe to report in detail since they reveal
// nothing about secret material.
type FormatError struct {
	Field string // which part of the token was malformed
	Err   error
}

func (e *FormatError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed token: %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("malformed token: %s", e.Field)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *FormatError) Is(target error) bool {
	return target == ErrTokenFormat
}

// KeyFormatError describes a key whose type or size does not fit the
// requested version and purpose. It is returned before the key material is
// used in any cryptographic operation.
type KeyFormatError struct {
	Version Version
	Purpose Purpose
	Detail  string
}

func (e *KeyFormatError) Error() string {
	if e.Version == "" && e.Purpose == "" {
		return fmt.Sprintf("invalid key: %s", e.Detail)
	}
	return fmt.Sprintf("key does not fit %s.%s: %s", e.Version, e.Purpose, e.Detail)
}

// Is implements errors.Is for sentinel error matching.
func (e *KeyFormatError) Is(target error) bool {
	return target == ErrKeyFormat
}
