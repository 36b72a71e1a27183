// Package clientip resolves the real client IP behind proxies.
package clientip

import (
	"net"
	"net/http"
	"strings"
)

// RealClientIP returns the client IP for a request, preferring proxy headers
// when present. The first entry of X-Forwarded-For is the originating client.
func RealClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		ip := strings.TrimSpace(parts[0])
		if ip != "" {
			return ip
		}
	}
	if realIP := strings.TrimSpace(r.Header.Get("X-Real-IP")); realIP != "" {
		return realIP
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
