package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestVersionFlag(t *testing.T) {
	oldV, oldC, oldD := version, commit, date
	version, commit, date = "v1.2.3", "abc", "2020-01-01T00:00:00Z"
	t.Cleanup(func() { version, commit, date = oldV, oldC, oldD })

	var stdout, stderr bytes.Buffer
	code := run([]string{"--version"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("unexpected exit code: %d (stderr=%q)", code, stderr.String())
	}
	got := strings.TrimSpace(stdout.String())
	want := "v1.2.3 (abc) 2020-01-01T00:00:00Z"
	if got != want {
		t.Fatalf("unexpected version output: got %q, want %q", got, want)
	}
}

func TestEncodeArg(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--encode", "hello_world_from_rust"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("unexpected exit code: %d (stderr=%q)", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "aGVsbG9fd29ybGRfZnJvbV9ydXN0" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestDecodeFromStdin(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--decode"}, strings.NewReader("aGVsbG9fd29ybGRfZnJvbV9ydXN0\n"), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("unexpected exit code: %d (stderr=%q)", code, stderr.String())
	}
	if got := strings.TrimSpace(stdout.String()); got != "hello_world_from_rust" {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestDecodeMalformedPrintsEmpty(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--decode", "dfoiuerw892"}, strings.NewReader(""), &stdout, &stderr)
	if code != 0 {
		t.Fatalf("unexpected exit code: %d (stderr=%q)", code, stderr.String())
	}
	if got := stdout.String(); got != "\n" {
		t.Fatalf("expected bare newline, got %q", got)
	}
}

func TestDecodeStrictFails(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--decode", "--strict", "dfoiuerw892"}, strings.NewReader(""), &stdout, &stderr)
	if code != 1 {
		t.Fatalf("unexpected exit code: %d", code)
	}
	if got := strings.TrimSpace(stderr.String()); got != "invalid_base64" {
		t.Fatalf("unexpected stderr: %q", got)
	}
	if stdout.Len() != 0 {
		t.Fatalf("expected no stdout, got %q", stdout.String())
	}
}

func TestRequiresExactlyOneMode(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"x"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("no mode: unexpected exit code %d", code)
	}
	if code := run([]string{"--encode", "--decode", "x"}, strings.NewReader(""), &stdout, &stderr); code != 2 {
		t.Fatalf("both modes: unexpected exit code %d", code)
	}
}
