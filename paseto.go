package paseto

import (
	"errors"
	"fmt"
	"strings"

	"github.com/renesugar/Paseto-1/internal/encoding"
	v1engine "github.com/renesugar/Paseto-1/internal/v1"
	v2engine "github.com/renesugar/Paseto-1/internal/v2"
	"github.com/renesugar/Paseto-1/internal/wire"
)

// engineOps binds one (version, purpose) pair to its engine operations.
// The key type assertions are safe because the dispatcher checks the key
// shape before consulting the table.
type engineOps struct {
	generate func(key Key, header, payload, footer []byte) ([]byte, error)
	parse    func(key Key, header, body, footer []byte) ([]byte, error)
}

// routes is the full dispatch table over the four (version, purpose)
// combinations, resolved once per call at the top of GenerateToken and
// ParseToken.
var routes = map[Version]map[Purpose]engineOps{
	V1: {
		Local: {
			generate: func(key Key, h, payload, footer []byte) ([]byte, error) {
				return v1engine.Encrypt(key.(*LocalKey).material, h, payload, footer)
			},
			parse: func(key Key, h, body, footer []byte) ([]byte, error) {
				return v1engine.Decrypt(key.(*LocalKey).material, h, body, footer)
			},
		},
		Public: {
			generate: func(key Key, h, payload, footer []byte) ([]byte, error) {
				return v1engine.Sign(key.(*SecretKey).rsa, h, payload, footer)
			},
			parse: func(key Key, h, body, footer []byte) ([]byte, error) {
				return v1engine.Verify(key.(*PublicKey).rsa, h, body, footer)
			},
		},
	},
	V2: {
		Local: {
			generate: func(key Key, h, payload, footer []byte) ([]byte, error) {
				return v2engine.Encrypt(key.(*LocalKey).material, h, payload, footer)
			},
			parse: func(key Key, h, body, footer []byte) ([]byte, error) {
				return v2engine.Decrypt(key.(*LocalKey).material, h, body, footer)
			},
		},
		Public: {
			generate: func(key Key, h, payload, footer []byte) ([]byte, error) {
				return v2engine.Sign(key.(*SecretKey).ed, h, payload, footer), nil
			},
			parse: func(key Key, h, body, footer []byte) ([]byte, error) {
				return v2engine.Verify(key.(*PublicKey).ed, h, body, footer)
			},
		},
	},
}

// GenerateToken builds a PASETO token for the given version and purpose.
// Local tokens require a *LocalKey; public tokens require a *SecretKey of
// the matching version. A footer set with WithFooter is authenticated but
// never encrypted.
func GenerateToken(version Version, purpose Purpose, payload []byte, key Key, opts ...Option) (string, error) {
	if version != V1 && version != V2 {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedVersion, string(version))
	}
	if purpose != Local && purpose != Public {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedPurpose, string(purpose))
	}

	var cfg tokenConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	if key == nil || !key.fits(version, purpose, opGenerate) {
		return "", keyMismatch(version, purpose, key, opGenerate)
	}

	body, err := routes[version][purpose].generate(key, header(version, purpose), payload, cfg.footer)
	if err != nil {
		return "", err
	}

	return wire.Join(string(version), string(purpose), body, cfg.footer), nil
}

// ParseToken validates, authenticates, and (for local tokens) decrypts a
// token. Version and purpose are validated before the key is examined, and
// the key shape is checked before any cryptographic work, so mismatched
// key material is rejected instead of misinterpreted.
func ParseToken(token string, key Key) (*Token, error) {
	msg, err := wire.Split(token)
	if err != nil {
		return nil, &FormatError{Field: "token", Err: err}
	}

	version, ok := lookupVersion(msg.Version)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedVersion, msg.Version)
	}
	purpose, ok := lookupPurpose(msg.Purpose)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedPurpose, msg.Purpose)
	}

	if key == nil || !key.fits(version, purpose, opParse) {
		return nil, keyMismatch(version, purpose, key, opParse)
	}

	body, err := encoding.FromBase64URL(msg.Payload)
	if err != nil {
		return nil, &FormatError{Field: "payload", Err: err}
	}
	var footer []byte
	if msg.HasFooter {
		if footer, err = encoding.FromBase64URL(msg.Footer); err != nil {
			return nil, &FormatError{Field: "footer", Err: err}
		}
	}

	payload, err := routes[version][purpose].parse(key, header(version, purpose), body, footer)
	if err != nil {
		return nil, mapEngineError(err)
	}

	return &Token{
		Version: version,
		Purpose: purpose,
		Payload: payload,
		Footer:  footer,
	}, nil
}

// lookupVersion matches the wire version field case-insensitively against
// the known versions.
func lookupVersion(field string) (Version, bool) {
	switch strings.ToLower(field) {
	case string(V1):
		return V1, true
	case string(V2):
		return V2, true
	}
	return "", false
}

// lookupPurpose matches the wire purpose field case-sensitively against
// the known purposes.
func lookupPurpose(field string) (Purpose, bool) {
	switch field {
	case string(Local):
		return Local, true
	case string(Public):
		return Public, true
	}
	return "", false
}

// keyMismatch builds the KeyFormatError for a key whose shape does not fit
// the requested operation.
func keyMismatch(v Version, p Purpose, key Key, op operation) error {
	var detail string
	switch {
	case key == nil:
		detail = "no key supplied"
	case p == Local:
		detail = "local tokens require a *LocalKey"
	case op == opGenerate:
		detail = "generating public tokens requires a *SecretKey of the same version"
	default:
		detail = "parsing public tokens requires a *PublicKey of the same version"
	}
	return &KeyFormatError{Version: v, Purpose: p, Detail: detail}
}

// mapEngineError collapses every engine-level verification failure into
// the single public authentication signal.
func mapEngineError(err error) error {
	if errors.Is(err, v1engine.ErrAuthentication) || errors.Is(err, v2engine.ErrAuthentication) {
		return ErrAuthenticationFailed
	}
	return err
}
