package hostbind

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"

	"github.com/hashicorp/yamux"

	"github.com/abhaynaik-dev/rust-ancrypto/framing/jsonframe"
	"github.com/abhaynaik-dev/rust-ancrypto/observability"
)

// ServeListener accepts host connections on l, wraps each in a yamux server
// session, and serves one codec request per stream until ctx is done.
func ServeListener(ctx context.Context, l net.Listener, svc *Service) error {
	go func() {
		<-ctx.Done()
		_ = l.Close()
	}()
	for {
		conn, err := l.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return err
		}
		go serveConn(ctx, conn, svc)
	}
}

func serveConn(ctx context.Context, conn net.Conn, svc *Service) {
	defer conn.Close()
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = io.Discard
	sess, err := yamux.Server(conn, cfg)
	if err != nil {
		return
	}
	defer sess.Close()
	go func() {
		<-ctx.Done()
		_ = sess.Close()
	}()
	for {
		stream, err := sess.AcceptStream()
		if err != nil {
			return
		}
		go func() {
			defer stream.Close()
			serveStream(stream, svc)
		}()
	}
}

// serveStream handles exactly one hello + request + response exchange.
func serveStream(stream io.ReadWriter, svc *Service) {
	if _, err := ReadHello(stream, jsonframe.DefaultMaxJSONFrameBytes); err != nil {
		svc.bindObs().FrameError(observability.FrameRead)
		return
	}
	b, err := jsonframe.ReadJSONFrame(stream, jsonframe.DefaultMaxJSONFrameBytes)
	if err != nil {
		svc.bindObs().FrameError(observability.FrameRead)
		return
	}
	var req Request
	if err := json.Unmarshal(b, &req); err != nil {
		svc.bindObs().FrameError(observability.FrameRead)
		return
	}
	if err := jsonframe.WriteJSONFrame(stream, svc.Handle(req)); err != nil {
		svc.bindObs().FrameError(observability.FrameWrite)
	}
}

// StreamClient issues codec calls over a yamux client session, one stream per
// call. It is safe for concurrent use; yamux serializes stream creation.
type StreamClient struct {
	sess *yamux.Session
}

// DialStream connects to a stream surface at addr.
func DialStream(ctx context.Context, addr string) (*StreamClient, error) {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, err
	}
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = io.Discard
	sess, err := yamux.Client(conn, cfg)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return &StreamClient{sess: sess}, nil
}

// NewStreamClient wraps an already-established connection, for hosts that
// bring their own transport (pipes, unix sockets).
func NewStreamClient(conn net.Conn) (*StreamClient, error) {
	cfg := yamux.DefaultConfig()
	cfg.LogOutput = io.Discard
	sess, err := yamux.Client(conn, cfg)
	if err != nil {
		return nil, err
	}
	return &StreamClient{sess: sess}, nil
}

// Call performs one encode or decode invocation.
func (c *StreamClient) Call(ctx context.Context, op string, text string) (Response, error) {
	stream, err := c.sess.OpenStream()
	if err != nil {
		return Response{}, err
	}
	defer stream.Close()
	if deadline, ok := ctx.Deadline(); ok {
		_ = stream.SetDeadline(deadline)
	}
	if err := WriteHello(stream); err != nil {
		return Response{}, err
	}
	if err := jsonframe.WriteJSONFrame(stream, Request{Op: op, Text: text}); err != nil {
		return Response{}, err
	}
	b, err := jsonframe.ReadJSONFrame(stream, jsonframe.DefaultMaxJSONFrameBytes)
	if err != nil {
		return Response{}, err
	}
	var resp Response
	if err := json.Unmarshal(b, &resp); err != nil {
		return Response{}, errors.New("bad binding response")
	}
	return resp, nil
}

// Close tears down the session and its connection.
func (c *StreamClient) Close() error {
	return c.sess.Close()
}
