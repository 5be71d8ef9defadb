package ws

import (
	"net/http"
	"net/url"
	"strings"
)

// IsOriginAllowed validates the request Origin header against an allow-list.
//
// Allowed entries support full Origin values with scheme
// ("https://example.com"), bare hostnames ("example.com"), and wildcard
// hostnames ("*.example.com", which also matches the base domain). Native
// host runtimes usually send no Origin header at all; allowNoOrigin controls
// whether those requests are accepted.
func IsOriginAllowed(r *http.Request, allowed []string, allowNoOrigin bool) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return allowNoOrigin
	}
	hostname := ""
	if parsed, err := url.Parse(origin); err == nil {
		hostname = parsed.Hostname()
	}
	for _, entry := range allowed {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if strings.Contains(entry, "://") {
			if origin == entry {
				return true
			}
			continue
		}
		if base, ok := strings.CutPrefix(entry, "*."); ok {
			if hostname != "" && base != "" && (hostname == base || strings.HasSuffix(hostname, "."+base)) {
				return true
			}
			continue
		}
		if hostname != "" && hostname == entry {
			return true
		}
	}
	return false
}
