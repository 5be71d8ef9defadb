package hostbind

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"github.com/abhaynaik-dev/rust-ancrypto/framing/jsonframe"
	"github.com/abhaynaik-dev/rust-ancrypto/observability"
	"github.com/abhaynaik-dev/rust-ancrypto/realtime/ws"
)

// WSOptions configures the websocket binding surface.
type WSOptions struct {
	AllowedOrigins  []string // Origin allow-list; see ws.IsOriginAllowed.
	AllowNoOrigin   bool     // Accept requests without an Origin header (native hosts).
	MaxMessageBytes int64    // Per-message read limit (0 uses the frame default).
}

// WSHandler serves the websocket binding surface: one JSON request per
// message, one JSON response per message, until the host disconnects.
func WSHandler(svc *Service, opts WSOptions) http.Handler {
	var conns atomic.Int64
	limit := opts.MaxMessageBytes
	if limit <= 0 {
		limit = jsonframe.DefaultMaxJSONFrameBytes
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := ws.Upgrade(w, r, ws.UpgraderOptions{
			CheckOrigin: func(r *http.Request) bool {
				return ws.IsOriginAllowed(r, opts.AllowedOrigins, opts.AllowNoOrigin)
			},
		})
		if err != nil {
			return
		}
		svc.bindObs().ConnCount(conns.Add(1))
		defer func() {
			svc.bindObs().ConnCount(conns.Add(-1))
			_ = conn.Close()
		}()
		conn.SetReadLimit(limit)
		serveWSConn(r.Context(), svc, conn)
	})
}

func serveWSConn(ctx context.Context, svc *Service, conn *ws.Conn) {
	for {
		_, b, err := conn.ReadMessage(ctx)
		if err != nil {
			if !isExpectedClose(err) {
				svc.bindObs().FrameError(observability.FrameRead)
			}
			return
		}
		var req Request
		if err := json.Unmarshal(b, &req); err != nil {
			svc.bindObs().FrameError(observability.FrameRead)
			_ = conn.CloseWithStatus(websocket.CloseUnsupportedData, "bad_request")
			return
		}
		resp, err := json.Marshal(svc.Handle(req))
		if err != nil {
			svc.bindObs().FrameError(observability.FrameWrite)
			return
		}
		if err := conn.WriteMessage(ctx, websocket.TextMessage, resp); err != nil {
			svc.bindObs().FrameError(observability.FrameWrite)
			return
		}
	}
}

func isExpectedClose(err error) bool {
	if websocket.IsCloseError(err,
		websocket.CloseNormalClosure,
		websocket.CloseGoingAway,
		websocket.CloseNoStatusReceived,
		websocket.CloseAbnormalClosure,
	) {
		return true
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, net.ErrClosed) || errors.Is(err, io.EOF) {
		return true
	}
	return false
}
