package paseto

// Version selects a PASETO protocol version. Each version fixes a single
// algorithm suite.
type Version string

const (
	// V1 is the legacy suite: AES-256-CTR with HMAC-SHA384 for local
	// tokens, RSA-PSS-SHA384 for public tokens.
	V1 Version = "v1"
	// V2 is the preferred suite: XChaCha20-Poly1305 for local tokens,
	// Ed25519 for public tokens.
	V2 Version = "v2"
)

// Purpose selects how a token's payload is protected.
type Purpose string

const (
	// Local tokens carry an encrypted and authenticated payload under a
	// symmetric key.
	Local Purpose = "local"
	// Public tokens carry a plaintext payload with an asymmetric
	// signature: integrity and authenticity, no confidentiality.
	Public Purpose = "public"
)

// header returns the literal "<version>.<purpose>." prefix bound into
// every pre-auth encoding, trailing dot included. It is derived from the
// enums, never read back from the wire string.
func header(v Version, p Purpose) []byte {
	return []byte(string(v) + "." + string(p) + ".")
}

// Token is the result of a successful ParseToken. The library does not
// modify it after returning, and the Payload and Footer buffers are owned
// exclusively by the caller.
type Token struct {
	// Version is the protocol version the token was parsed under.
	Version Version
	// Purpose reports whether the payload was encrypted (local) or only
	// signed (public).
	Purpose Purpose
	// Payload is the decrypted or signature-verified plaintext.
	Payload []byte
	// Footer is the authenticated but unencrypted footer. It is nil when
	// the wire string carried no footer field.
	Footer []byte
}
