package middleware

import (
	"log"
	"net/http"
	"os"
)

// CORSDebugMiddleware logs origin and header details for cross-origin
// requests. Enabled only when DEBUG_CORS is set; the real CORS handling
// belongs to rs/cors.
func CORSDebugMiddleware(next http.Handler) http.Handler {
	if os.Getenv("DEBUG_CORS") == "" {
		return next
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Printf("[CORS Debug] Request from Origin: %s", r.Header.Get("Origin"))
		log.Printf("[CORS Debug] Request Method: %s", r.Method)
		log.Printf("[CORS Debug] Request Headers: %v", r.Header)

		next.ServeHTTP(w, r)

		log.Printf("[CORS Debug] Response Headers: %v", w.Header())
	})
}
