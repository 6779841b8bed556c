// Package controllers holds the HTTP handlers. Controllers translate
// requests into service calls and service errors into responses; no
// business rules live here.
package controllers

import (
	"net/http"
	"strconv"
	"strings"
)

// requestBaseURL rebuilds the externally visible origin so relative image
// paths can be absolutized per request instead of baking a host into the
// database.
func requestBaseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host
}

// queryInt reads an integer query parameter, returning fallback for
// missing or malformed values.
func queryInt(r *http.Request, key string, fallback int) int {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}

// isMultipart reports whether the request body is multipart form data.
func isMultipart(r *http.Request) bool {
	return strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data")
}
