package hostbind

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/abhaynaik-dev/rust-ancrypto/realtime/ws"
)

// WSClient issues codec calls over the websocket surface.
//
// Calls are serialized on a single connection (one request message, one
// response message); use one client per concurrent host task.
type WSClient struct {
	conn *ws.Conn
}

// DialWS connects to a websocket binding surface at urlStr (ws://host/path).
func DialWS(ctx context.Context, urlStr string, header http.Header) (*WSClient, error) {
	conn, _, err := ws.Dial(ctx, urlStr, header)
	if err != nil {
		return nil, err
	}
	return &WSClient{conn: conn}, nil
}

// Call performs one encode or decode invocation.
func (c *WSClient) Call(ctx context.Context, op string, text string) (Response, error) {
	req, err := json.Marshal(Request{Op: op, Text: text})
	if err != nil {
		return Response{}, err
	}
	if err := c.conn.WriteMessage(ctx, websocket.TextMessage, req); err != nil {
		return Response{}, err
	}
	_, b, err := c.conn.ReadMessage(ctx)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return Response{}, errors.New("bad binding response")
	}
	return resp, nil
}

// Close closes the underlying connection.
func (c *WSClient) Close() error {
	return c.conn.Close()
}
