package api

import "net/http"

// generativePaths are the endpoints whose requests reach the text backend.
// Everything else is served from memory and needs no throttle.
var generativePaths = map[string]bool{
	"/api/v1/concierge":     true,
	"/api/v1/books/summary": true,
	"/api/v1/edition/ai":    true,
}

// limitGenerative applies a per-client token bucket to backend-calling
// endpoints. Anonymous clients fall back to the remote address as key.
func (s *Server) limitGenerative(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !generativePaths[r.URL.Path] {
			next.ServeHTTP(w, r)
			return
		}

		key := r.Header.Get("X-Client-ID")
		if key == "" {
			key = r.RemoteAddr
		}
		if !s.generateLimiter.Allow(key) {
			s.logger.Warn("request throttled", "path", r.URL.Path, "client", key)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusTooManyRequests)
			_, _ = w.Write([]byte(`{"code":"RATE_LIMITED","message":"too many requests, slow down"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}
