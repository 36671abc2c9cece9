package handler

import "net/http"

// corsMiddleware adds permissive CORS headers and answers preflights.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// recoverMiddleware turns an unexpected handler panic into a generic 500
// without leaking internal detail.
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Errorf("Panic serving %s: %v", r.URL.Path, rec)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal processing error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
