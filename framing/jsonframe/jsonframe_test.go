package jsonframe

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"testing"
)

type errWriter struct{}

func (errWriter) Write(_ []byte) (int, error) { return 0, errors.New("write failed") }

func TestWriteReadRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSONFrame(&buf, map[string]string{"op": "encode", "text": "hi"}); err != nil {
		t.Fatal(err)
	}
	b, err := ReadJSONFrame(&buf, DefaultMaxJSONFrameBytes)
	if err != nil {
		t.Fatal(err)
	}
	var m map[string]string
	if err := json.Unmarshal(b, &m); err != nil {
		t.Fatal(err)
	}
	if m["op"] != "encode" || m["text"] != "hi" {
		t.Fatalf("unexpected payload: %#v", m)
	}
}

func TestReadJSONFrameTooLarge(t *testing.T) {
	buf := bytes.NewBuffer([]byte{0, 0, 0, 10, 0, 0, 0, 0, 0, 0})
	if _, err := ReadJSONFrame(buf, 4); !errors.Is(err, ErrFrameTooLarge) {
		t.Fatalf("expected ErrFrameTooLarge, got %v", err)
	}
}

func TestWriteJSONFrameWriterError(t *testing.T) {
	if err := WriteJSONFrame(errWriter{}, map[string]any{"ok": true}); err == nil {
		t.Fatal("expected error")
	}
}

func TestReadJSONFrameEOF(t *testing.T) {
	buf := bytes.NewBuffer(nil)
	if _, err := ReadJSONFrame(buf, 1<<20); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF, got %v", err)
	}
}
