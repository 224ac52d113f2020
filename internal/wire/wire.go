// Package wire implements the dotted PASETO wire format:
// version.purpose.payload[.footer].
package wire

import (
	"errors"
	"strings"

	"github.com/renesugar/Paseto-1/internal/encoding"
)

// ErrFieldCount is returned when a token does not have exactly 3 or 4
// dot-separated fields.
var ErrFieldCount = errors.New("token must have 3 or 4 dot-separated fields")

// Message holds the raw fields of a split token. Payload and Footer are
// still base64url-encoded.
type Message struct {
	Version   string
	Purpose   string
	Payload   string
	Footer    string
	HasFooter bool
}

// Split breaks a token into its dot-separated fields. The 3-or-4 field
// framing is enforced before anything else looks at the content.
func Split(token string) (*Message, error) {
	fields := strings.Split(token, ".")
	switch len(fields) {
	case 3:
		return &Message{
			Version: fields[0],
			Purpose: fields[1],
			Payload: fields[2],
		}, nil
	case 4:
		return &Message{
			Version:   fields[0],
			Purpose:   fields[1],
			Payload:   fields[2],
			Footer:    fields[3],
			HasFooter: true,
		}, nil
	default:
		return nil, ErrFieldCount
	}
}

// Join assembles a token from its version, purpose, body, and optional
// footer. The footer field is omitted entirely when the footer is empty.
func Join(version, purpose string, body, footer []byte) string {
	token := version + "." + purpose + "." + encoding.ToBase64URL(body)
	if len(footer) > 0 {
		token += "." + encoding.ToBase64URL(footer)
	}
	return token
}
