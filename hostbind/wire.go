// Package hostbind is the boundary adapter between a host runtime and the
// codec: it marshals host strings across a websocket or multiplexed stream
// surface, invokes encode/decode synchronously, and carries the result back
// without altering codec semantics.
package hostbind

import (
	"encoding/json"
	"errors"
	"io"

	"github.com/abhaynaik-dev/rust-ancrypto/framing/jsonframe"
)

const (
	OpEncode = "encode"
	OpDecode = "decode"
)

// Request is one codec invocation from the host.
type Request struct {
	Op   string `json:"op"`
	Text string `json:"text"`
}

// Response carries the result back to the host.
//
// Text follows the compat contract: on any failure it is the empty string.
// Code additionally names the failure reason (an acerrors.Code) for hosts
// that opt into the strict surface; hosts that ignore it see exactly the
// legacy empty-text behavior.
type Response struct {
	Text string `json:"text"`
	Code string `json:"code,omitempty"`
}

// Hello is the greeting sent on every binding stream before the request.
type Hello struct {
	Kind string `json:"kind"`
	V    int    `json:"v"`
}

const HelloKind = "codec"

var ErrBadHello = errors.New("bad binding hello")

// WriteHello sends the stream greeting.
func WriteHello(w io.Writer) error {
	return jsonframe.WriteJSONFrame(w, Hello{Kind: HelloKind, V: 1})
}

// ReadHello reads and validates the stream greeting.
func ReadHello(r io.Reader, maxLen int) (Hello, error) {
	b, err := jsonframe.ReadJSONFrame(r, maxLen)
	if err != nil {
		return Hello{}, err
	}
	var h Hello
	if err := json.Unmarshal(b, &h); err != nil {
		return Hello{}, ErrBadHello
	}
	if h.V != 1 || h.Kind != HelloKind {
		return Hello{}, ErrBadHello
	}
	return h, nil
}
