// Package auth guards the JSON API with optional static API keys.
package auth

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// Header is checked first; QueryParam is the fallback for browser links.
const (
	Header     = "X-API-Key"
	QueryParam = "api_key"
)

// ParseAPIKeys splits a comma-separated list, trimming whitespace and
// dropping empty entries.
func ParseAPIKeys(raw string) []string {
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Keys is a set of accepted API keys. An empty set accepts every request.
type Keys [][]byte

func NewKeys(keys []string) Keys {
	ks := make(Keys, 0, len(keys))
	for _, k := range keys {
		ks = append(ks, []byte(k))
	}
	return ks
}

// Valid compares key against every configured key in constant time.
func (ks Keys) Valid(key string) bool {
	if len(ks) == 0 {
		return true
	}
	ok := 0
	for _, k := range ks {
		ok |= subtle.ConstantTimeCompare(k, []byte(key))
	}
	return ok == 1
}

// Middleware rejects requests without a valid key with 401.
func (ks Keys) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(Header)
		if key == "" {
			key = r.URL.Query().Get(QueryParam)
		}
		if !ks.Valid(key) {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
