// Package paseto implements PASETO (Platform-Agnostic Security Tokens):
// versioned tokens carrying an authenticated, optionally encrypted payload
// plus an authenticated but unencrypted footer.
//
// Each version fixes a single algorithm suite, so there is no algorithm
// negotiation to attack. v2 is the preferred suite: XChaCha20-Poly1305 for
// local (symmetric, encrypted) tokens and Ed25519 for public (asymmetric,
// signed) tokens. v1 is the legacy suite: AES-256-CTR with HMAC-SHA384 and
// RSA-PSS-SHA384.
//
// Basic usage:
//
//	key, err := paseto.GenerateLocalKey()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	token, err := paseto.GenerateToken(paseto.V2, paseto.Local,
//	    []byte(`{"sub":"user-1"}`), key,
//	    paseto.WithFooter([]byte("kid:1")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	parsed, err := paseto.ParseToken(token, key)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Printf("payload: %s footer: %s\n", parsed.Payload, parsed.Footer)
package paseto
