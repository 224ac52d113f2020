// Command testhelper drives the token codec over stdin/stdout JSON so
// cross-implementation test harnesses can exchange tokens and key material
// with other PASETO implementations.
package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	paseto "github.com/renesugar/Paseto-1"
)

// KeySet carries key material in transportable form: base64url for raw
// bytes, PEM for RSA keys. Only the fields relevant to the requested
// operation need to be set.
type KeySet struct {
	Local       string `json:"local,omitempty"`
	V2Public    string `json:"v2_public,omitempty"`
	V2Secret    string `json:"v2_secret,omitempty"`
	V1PublicPEM string `json:"v1_public_pem,omitempty"`
	V1SecretPEM string `json:"v1_secret_pem,omitempty"`
}

type generateRequest struct {
	Version string `json:"version"`
	Purpose string `json:"purpose"`
	Payload string `json:"payload"`
	Footer  string `json:"footer,omitempty"`
	Keys    KeySet `json:"keys"`
}

type parseRequest struct {
	Token string `json:"token"`
	Keys  KeySet `json:"keys"`
}

type parseResponse struct {
	Version string `json:"version"`
	Purpose string `json:"purpose"`
	Payload string `json:"payload"`
	Footer  string `json:"footer,omitempty"`
}

func main() {
	if len(os.Args) < 2 {
		fatal("usage: testhelper <keygen|generate|parse>")
	}

	switch os.Args[1] {
	case "keygen":
		keygen()
	case "generate":
		generate()
	case "parse":
		parse()
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

func keygen() {
	local, err := paseto.GenerateLocalKey()
	if err != nil {
		fatal("generate local key: %v", err)
	}
	v2Pub, v2Sec, err := paseto.GenerateV2KeyPair()
	if err != nil {
		fatal("generate v2 keypair: %v", err)
	}
	v1Pub, v1Sec, err := paseto.GenerateV1KeyPair()
	if err != nil {
		fatal("generate v1 keypair: %v", err)
	}
	v1PubPEM, err := v1Pub.MarshalPEM()
	if err != nil {
		fatal("export v1 public key: %v", err)
	}
	v1SecPEM, err := v1Sec.MarshalPEM()
	if err != nil {
		fatal("export v1 secret key: %v", err)
	}

	emit(KeySet{
		Local:       base64.RawURLEncoding.EncodeToString(local.Bytes()),
		V2Public:    base64.RawURLEncoding.EncodeToString(v2Pub.Bytes()),
		V2Secret:    base64.RawURLEncoding.EncodeToString(v2Sec.Bytes()),
		V1PublicPEM: string(v1PubPEM),
		V1SecretPEM: string(v1SecPEM),
	})
}

func generate() {
	var req generateRequest
	decode(&req)

	key, err := req.Keys.forGenerate(paseto.Purpose(req.Purpose), paseto.Version(req.Version))
	if err != nil {
		fatal("%v", err)
	}

	var opts []paseto.Option
	if req.Footer != "" {
		opts = append(opts, paseto.WithFooter([]byte(req.Footer)))
	}

	token, err := paseto.GenerateToken(paseto.Version(req.Version), paseto.Purpose(req.Purpose),
		[]byte(req.Payload), key, opts...)
	if err != nil {
		fatal("generate token: %v", err)
	}

	emit(map[string]string{"token": token})
}

func parse() {
	var req parseRequest
	decode(&req)

	key, err := req.Keys.forParse(req.Token)
	if err != nil {
		fatal("%v", err)
	}

	parsed, err := paseto.ParseToken(req.Token, key)
	if err != nil {
		fatal("parse token: %v", err)
	}

	emit(parseResponse{
		Version: string(parsed.Version),
		Purpose: string(parsed.Purpose),
		Payload: string(parsed.Payload),
		Footer:  string(parsed.Footer),
	})
}

// forGenerate selects the key the generate operation needs: the local key
// for local tokens, the version's secret key for public tokens.
func (k KeySet) forGenerate(purpose paseto.Purpose, version paseto.Version) (paseto.Key, error) {
	if purpose == paseto.Local {
		return k.localKey()
	}
	if version == paseto.V1 {
		if k.V1SecretPEM == "" {
			return nil, fmt.Errorf("v1_secret_pem is required")
		}
		return paseto.ParseV1SecretKeyPEM([]byte(k.V1SecretPEM))
	}
	material, err := base64.RawURLEncoding.DecodeString(k.V2Secret)
	if err != nil {
		return nil, fmt.Errorf("decode v2_secret: %w", err)
	}
	return paseto.NewV2SecretKey(material)
}

// forParse selects the key the parse operation needs based on the token's
// own header fields.
func (k KeySet) forParse(token string) (paseto.Key, error) {
	switch {
	case hasPrefixFold(token, "v1.public."):
		if k.V1PublicPEM == "" {
			return nil, fmt.Errorf("v1_public_pem is required")
		}
		return paseto.ParseV1PublicKeyPEM([]byte(k.V1PublicPEM))
	case hasPrefixFold(token, "v2.public."):
		material, err := base64.RawURLEncoding.DecodeString(k.V2Public)
		if err != nil {
			return nil, fmt.Errorf("decode v2_public: %w", err)
		}
		return paseto.NewV2PublicKey(material)
	default:
		return k.localKey()
	}
}

func (k KeySet) localKey() (paseto.Key, error) {
	material, err := base64.RawURLEncoding.DecodeString(k.Local)
	if err != nil {
		return nil, fmt.Errorf("decode local key: %w", err)
	}
	return paseto.NewLocalKey(material)
}

// hasPrefixFold matches a token prefix with a case-insensitive version
// field, the way ParseToken does.
func hasPrefixFold(token, prefix string) bool {
	if len(token) < len(prefix) {
		return false
	}
	head := token[:len(prefix)]
	return head == prefix || (len(head) > 1 && (head[0]|0x20) == prefix[0] && head[1:] == prefix[1:])
}

func decode(v any) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		fatal("parse request: %v", err)
	}
}

func emit(v any) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fatal("encode response: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
