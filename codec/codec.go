// Package codec converts text to and from its standard padded base64
// representation, so opaque payloads can cross channels that only accept
// printable ASCII.
package codec

import (
	"encoding/base64"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/abhaynaik-dev/rust-ancrypto/acerrors"
)

// Encode returns the standard padded base64 representation of the UTF-8
// bytes of input. It is total: every input has a well-defined encoding.
func Encode(input string) string {
	return base64.StdEncoding.EncodeToString([]byte(input))
}

// DecodeStrict parses input as standard padded base64 and interprets the
// decoded bytes as UTF-8 text.
//
// Failures carry a typed reason as an *acerrors.Error:
// CodeInvalidBase64 for malformed input (illegal characters, bad padding,
// wrong length mod 4) and CodeInvalidUTF8 when the payload is valid base64
// but not valid UTF-8. The empty input decodes to empty text; that is a
// valid round trip, not an error.
func DecodeStrict(input string) (string, error) {
	// DecodeString skips \r and \n even in strict mode; the alphabet does
	// not include them, so treat them as illegal characters.
	if strings.ContainsAny(input, "\r\n") {
		return "", acerrors.Wrap(acerrors.OpDecode, acerrors.CodeInvalidBase64, errors.New("illegal newline character"))
	}
	// Strict mode also rejects non-canonical trailing padding bits
	// (e.g. "aGt=").
	b, err := base64.StdEncoding.Strict().DecodeString(input)
	if err != nil {
		return "", acerrors.Wrap(acerrors.OpDecode, acerrors.CodeInvalidBase64, err)
	}
	if !utf8.Valid(b) {
		return "", acerrors.New(acerrors.OpDecode, acerrors.CodeInvalidUTF8)
	}
	return string(b), nil
}

// Decode is the compatibility surface over DecodeStrict: every failure is
// collapsed into the empty string, never an error or a partial decode.
// Callers that need to distinguish failure from a legitimately empty
// result should use DecodeStrict.
func Decode(input string) string {
	out, err := DecodeStrict(input)
	if err != nil {
		return ""
	}
	return out
}
