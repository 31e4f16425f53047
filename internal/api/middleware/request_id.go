package middleware

import (
	"net/http"

	"github.com/google/uuid"
)

// HeaderRequestID идентификатор запроса для трассировки в логах
const HeaderRequestID = "X-Request-ID"

// RequestID propagates an incoming request id or generates a new one,
// echoing it back in the response headers.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(HeaderRequestID, id)
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r)
	})
}
