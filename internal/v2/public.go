package v2

import (
	"github.com/cloudflare/circl/sign/ed25519"

	"github.com/renesugar/Paseto-1/internal/encoding"
)

// SignatureSize is the fixed Ed25519 signature length appended to v2.public
// bodies.
const SignatureSize = ed25519.SignatureSize

// Sign produces a v2.public body: payload || signature. The signature
// covers the pre-auth encoding of header, payload, and footer.
func Sign(secretKey ed25519.PrivateKey, header, payload, footer []byte) []byte {
	message := encoding.PAE(header, payload, footer)
	sig := ed25519.Sign(secretKey, message)

	body := make([]byte, 0, len(payload)+SignatureSize)
	body = append(body, payload...)
	return append(body, sig...)
}

// Verify splits a v2.public body into payload and signature and checks the
// signature over the recomputed pre-auth encoding. The payload is returned
// only when the signature is valid.
func Verify(publicKey ed25519.PublicKey, header, body, footer []byte) ([]byte, error) {
	if len(body) < SignatureSize {
		return nil, ErrAuthentication
	}

	payload := body[:len(body)-SignatureSize]
	sig := body[len(body)-SignatureSize:]

	message := encoding.PAE(header, payload, footer)
	if !ed25519.Verify(publicKey, message, sig) {
		return nil, ErrAuthentication
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
