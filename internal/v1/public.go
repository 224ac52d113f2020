package v1

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha512"

	"github.com/renesugar/Paseto-1/internal/encoding"
)

// ModulusBits is the required RSA modulus size for v1.public keys.
const ModulusBits = 2048

// SignatureSize is the fixed RSA-2048 signature length appended to
// v1.public bodies.
const SignatureSize = ModulusBits / 8

// pssOptions fixes the PSS salt length at the SHA-384 digest size.
var pssOptions = &rsa.PSSOptions{
	SaltLength: rsa.PSSSaltLengthEqualsHash,
	Hash:       crypto.SHA384,
}

// Sign produces a v1.public body: payload || signature. The signature
// covers the pre-auth encoding of header, payload, and footer.
func Sign(secretKey *rsa.PrivateKey, header, payload, footer []byte) ([]byte, error) {
	message := encoding.PAE(header, payload, footer)
	digest := sha512.Sum384(message)

	sig, err := rsa.SignPSS(randReader, secretKey, crypto.SHA384, digest[:], pssOptions)
	if err != nil {
		return nil, err
	}

	body := make([]byte, 0, len(payload)+len(sig))
	body = append(body, payload...)
	return append(body, sig...), nil
}

// Verify splits a v1.public body into payload and signature and checks the
// RSA-PSS signature over the recomputed pre-auth encoding. The payload is
// returned only when the signature is valid.
func Verify(publicKey *rsa.PublicKey, header, body, footer []byte) ([]byte, error) {
	if len(body) < SignatureSize {
		return nil, ErrAuthentication
	}

	payload := body[:len(body)-SignatureSize]
	sig := body[len(body)-SignatureSize:]

	message := encoding.PAE(header, payload, footer)
	digest := sha512.Sum384(message)
	if err := rsa.VerifyPSS(publicKey, crypto.SHA384, digest[:], sig, pssOptions); err != nil {
		return nil, ErrAuthentication
	}

	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}
