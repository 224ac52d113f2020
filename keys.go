package paseto

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"

	v1engine "github.com/renesugar/Paseto-1/internal/v1"
)

// LocalKeySize is the symmetric key length shared by both versions.
const LocalKeySize = 32

// operation distinguishes the two dispatcher entry points for key-shape
// checks: public-purpose generation needs the secret key, parsing needs
// only the public key.
type operation int

const (
	opGenerate operation = iota
	opParse
)

// Key is implemented by the key types accepted by GenerateToken and
// ParseToken. The concrete type, not the raw bytes, determines which
// (version, purpose) pairs a key may be used with.
type Key interface {
	fits(v Version, p Purpose, op operation) bool
}

// LocalKey is the 32-byte symmetric secret used by local tokens of either
// version.
type LocalKey struct {
	material []byte
}

// NewLocalKey wraps a 32-byte symmetric secret. The bytes are copied.
func NewLocalKey(material []byte) (*LocalKey, error) {
	if len(material) != LocalKeySize {
		return nil, &KeyFormatError{
			Detail: fmt.Sprintf("local key must be %d bytes, got %d", LocalKeySize, len(material)),
		}
	}
	k := &LocalKey{material: make([]byte, LocalKeySize)}
	copy(k.material, material)
	return k, nil
}

// GenerateLocalKey draws a fresh 32-byte symmetric key from the platform
// CSPRNG.
func GenerateLocalKey() (*LocalKey, error) {
	material := make([]byte, LocalKeySize)
	if _, err := rand.Read(material); err != nil {
		return nil, err
	}
	return &LocalKey{material: material}, nil
}

// Bytes returns a copy of the key material.
func (k *LocalKey) Bytes() []byte {
	out := make([]byte, len(k.material))
	copy(out, k.material)
	return out
}

func (k *LocalKey) fits(_ Version, p Purpose, _ operation) bool {
	return p == Local
}

// SecretKey is the signing half of a public-purpose keypair: Ed25519 for
// v2, RSA-2048 for v1. It is required by GenerateToken and rejected by
// ParseToken.
type SecretKey struct {
	version Version
	ed      ed25519.PrivateKey
	rsa     *rsa.PrivateKey
}

// PublicKey is the verifying half of a public-purpose keypair. It is the
// only key ParseToken accepts for public tokens.
type PublicKey struct {
	version Version
	ed      ed25519.PublicKey
	rsa     *rsa.PublicKey
}

// Version reports which protocol version the key belongs to.
func (k *SecretKey) Version() Version { return k.version }

// Version reports which protocol version the key belongs to.
func (k *PublicKey) Version() Version { return k.version }

func (k *SecretKey) fits(v Version, p Purpose, op operation) bool {
	return k.version == v && p == Public && op == opGenerate
}

func (k *PublicKey) fits(v Version, p Purpose, op operation) bool {
	return k.version == v && p == Public && op == opParse
}

// GenerateV2KeyPair creates a fresh Ed25519 keypair for v2.public tokens.
func GenerateV2KeyPair() (*PublicKey, *SecretKey, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, nil, err
	}
	return &PublicKey{version: V2, ed: pub}, &SecretKey{version: V2, ed: priv}, nil
}

// NewV2PublicKey wraps a raw 32-byte Ed25519 public key. The bytes are
// copied.
func NewV2PublicKey(material []byte) (*PublicKey, error) {
	if len(material) != ed25519.PublicKeySize {
		return nil, &KeyFormatError{
			Version: V2,
			Purpose: Public,
			Detail:  fmt.Sprintf("public key must be %d bytes, got %d", ed25519.PublicKeySize, len(material)),
		}
	}
	pub := make(ed25519.PublicKey, ed25519.PublicKeySize)
	copy(pub, material)
	return &PublicKey{version: V2, ed: pub}, nil
}

// NewV2SecretKey wraps a raw 64-byte Ed25519 secret key. The bytes are
// copied.
func NewV2SecretKey(material []byte) (*SecretKey, error) {
	if len(material) != ed25519.PrivateKeySize {
		return nil, &KeyFormatError{
			Version: V2,
			Purpose: Public,
			Detail:  fmt.Sprintf("secret key must be %d bytes, got %d", ed25519.PrivateKeySize, len(material)),
		}
	}
	priv := make(ed25519.PrivateKey, ed25519.PrivateKeySize)
	copy(priv, material)
	return &SecretKey{version: V2, ed: priv}, nil
}

// GenerateV1KeyPair creates a fresh RSA-2048 keypair for v1.public tokens.
func GenerateV1KeyPair() (*PublicKey, *SecretKey, error) {
	priv, err := rsa.GenerateKey(rand.Reader, v1engine.ModulusBits)
	if err != nil {
		return nil, nil, err
	}
	return &PublicKey{version: V1, rsa: &priv.PublicKey}, &SecretKey{version: V1, rsa: priv}, nil
}

// NewV1SecretKey wraps an RSA private key. The modulus must be 2048 bits.
func NewV1SecretKey(key *rsa.PrivateKey) (*SecretKey, error) {
	if key == nil || key.N.BitLen() != v1engine.ModulusBits {
		return nil, &KeyFormatError{
			Version: V1,
			Purpose: Public,
			Detail:  fmt.Sprintf("RSA key must have a %d-bit modulus", v1engine.ModulusBits),
		}
	}
	return &SecretKey{version: V1, rsa: key}, nil
}

// NewV1PublicKey wraps an RSA public key. The modulus must be 2048 bits.
func NewV1PublicKey(key *rsa.PublicKey) (*PublicKey, error) {
	if key == nil || key.N.BitLen() != v1engine.ModulusBits {
		return nil, &KeyFormatError{
			Version: V1,
			Purpose: Public,
			Detail:  fmt.Sprintf("RSA key must have a %d-bit modulus", v1engine.ModulusBits),
		}
	}
	return &PublicKey{version: V1, rsa: key}, nil
}

// Bytes returns a copy of the raw Ed25519 key material for v2 keys and nil
// for v1 keys, which are exported with MarshalPEM.
func (k *PublicKey) Bytes() []byte {
	if k.ed == nil {
		return nil
	}
	out := make([]byte, len(k.ed))
	copy(out, k.ed)
	return out
}

// Bytes returns a copy of the raw Ed25519 key material for v2 keys and nil
// for v1 keys, which are exported with MarshalPEM.
func (k *SecretKey) Bytes() []byte {
	if k.ed == nil {
		return nil
	}
	out := make([]byte, len(k.ed))
	copy(out, k.ed)
	return out
}

// MarshalPEM renders a v1 public key as a PKCS#1 "RSA PUBLIC KEY" block.
// It returns an error for v2 keys, which are exported with Bytes.
func (k *PublicKey) MarshalPEM() ([]byte, error) {
	if k.rsa == nil {
		return nil, errors.New("not an RSA key")
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PUBLIC KEY",
		Bytes: x509.MarshalPKCS1PublicKey(k.rsa),
	}), nil
}

// MarshalPEM renders a v1 secret key as a PKCS#1 "RSA PRIVATE KEY" block.
// It returns an error for v2 keys, which are exported with Bytes.
func (k *SecretKey) MarshalPEM() ([]byte, error) {
	if k.rsa == nil {
		return nil, errors.New("not an RSA key")
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "RSA PRIVATE KEY",
		Bytes: x509.MarshalPKCS1PrivateKey(k.rsa),
	}), nil
}

// ParseV1PublicKeyPEM reads a PKCS#1 "RSA PUBLIC KEY" PEM block.
func ParseV1PublicKeyPEM(data []byte) (*PublicKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PUBLIC KEY" {
		return nil, errors.New("no RSA PUBLIC KEY block found")
	}
	key, err := x509.ParsePKCS1PublicKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	return NewV1PublicKey(key)
}

// ParseV1SecretKeyPEM reads a PKCS#1 "RSA PRIVATE KEY" PEM block.
func ParseV1SecretKeyPEM(data []byte) (*SecretKey, error) {
	block, _ := pem.Decode(data)
	if block == nil || block.Type != "RSA PRIVATE KEY" {
		return nil, errors.New("no RSA PRIVATE KEY block found")
	}
	key, err := x509.ParsePKCS1PrivateKey(block.Bytes)
	if err != nil {
		return nil, err
	}
	return NewV1SecretKey(key)
}
