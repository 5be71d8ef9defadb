package ws

import (
	"net/http"
	"testing"
)

func reqWithOrigin(origin string) *http.Request {
	r, _ := http.NewRequest(http.MethodGet, "http://127.0.0.1/ws", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}

func TestIsOriginAllowed(t *testing.T) {
	cases := []struct {
		name          string
		origin        string
		allowed       []string
		allowNoOrigin bool
		want          bool
	}{
		{"no origin allowed", "", nil, true, true},
		{"no origin denied", "", []string{"example.com"}, false, false},
		{"full origin match", "https://example.com", []string{"https://example.com"}, false, true},
		{"full origin scheme mismatch", "http://example.com", []string{"https://example.com"}, false, false},
		{"hostname match", "https://example.com:8443", []string{"example.com"}, false, true},
		{"wildcard subdomain", "https://app.example.com", []string{"*.example.com"}, false, true},
		{"wildcard base domain", "https://example.com", []string{"*.example.com"}, false, true},
		{"wildcard mismatch", "https://examplex.com", []string{"*.example.com"}, false, false},
		{"empty entries skipped", "https://example.com", []string{"", "  ", "example.com"}, false, true},
		{"nothing allowed", "https://example.com", nil, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := IsOriginAllowed(reqWithOrigin(tc.origin), tc.allowed, tc.allowNoOrigin)
			if got != tc.want {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
		})
	}
}
