package hostbind

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func startWSServer(t *testing.T, opts WSOptions) string {
	t.Helper()
	srv := httptest.NewServer(WSHandler(&Service{}, opts))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func TestWSSurfaceRoundTrip(t *testing.T) {
	url := startWSServer(t, WSOptions{AllowNoOrigin: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := DialWS(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Call(ctx, OpEncode, "hello_world_from_rust")
	if err != nil {
		t.Fatalf("encode call: %v", err)
	}
	if resp.Text != "aGVsbG9fd29ybGRfZnJvbV9ydXN0" {
		t.Fatalf("unexpected encode response: %#v", resp)
	}

	resp, err = c.Call(ctx, OpDecode, resp.Text)
	if err != nil {
		t.Fatalf("decode call: %v", err)
	}
	if resp.Text != "hello_world_from_rust" {
		t.Fatalf("unexpected decode response: %#v", resp)
	}
}

func TestWSSurfaceDecodeFailure(t *testing.T) {
	url := startWSServer(t, WSOptions{AllowNoOrigin: true})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	c, err := DialWS(ctx, url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer c.Close()

	resp, err := c.Call(ctx, OpDecode, "dfoiuerw892")
	if err != nil {
		t.Fatalf("call: %v", err)
	}
	if resp.Text != "" || resp.Code != "invalid_base64" {
		t.Fatalf("unexpected response: %#v", resp)
	}
}

func TestWSSurfaceRejectsDisallowedOrigin(t *testing.T) {
	url := startWSServer(t, WSOptions{AllowedOrigins: []string{"example.com"}})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	header := http.Header{}
	header.Set("Origin", "https://evil.test")
	if _, err := DialWS(ctx, url, header); err == nil {
		t.Fatal("expected handshake rejection")
	}
}
