package encoding

import "encoding/base64"

// ToBase64URL encodes bytes to URL-safe base64 without padding.
func ToBase64URL(data []byte) string {
	return base64.RawURLEncoding.EncodeToString(data)
}

// FromBase64URL decodes URL-safe base64 without padding. Inputs containing
// padding characters, characters outside the URL-safe alphabet, or a length
// the alphabet cannot produce are rejected.
func FromBase64URL(s string) ([]byte, error) {
	return base64.RawURLEncoding.DecodeString(s)
}
