package transport

import (
	"net/http"

	"github.com/raywall/book-service/book"
	"github.com/raywall/book-service/pkg/responder"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// CodeTooManyRequests só é emitido pelo servidor local.
const CodeTooManyRequests book.ErrorCode = "TooManyRequests"

// RateLimitMiddleware aplica um token bucket único (rps tokens/s, rajada burst) ao
// servidor local. rps <= 0 devolve next sem limite.
func RateLimitMiddleware(next http.Handler, rb *responder.ResponseBuilder, rps float64, burst int) http.Handler {
	if rps <= 0 {
		return next
	}
	if burst < 1 {
		burst = 1
	}
	limiter := rate.NewLimiter(rate.Limit(rps), burst)
	body := responder.ErrorBody{Error: &book.Error{Code: CodeTooManyRequests, Description: "rate limit exceeded"}}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Allow consome um token; false com o bucket vazio
		if !limiter.Allow() {
			log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("rate limit exceeded")
			w.Header().Set("Retry-After", "1")
			WriteResponse(w, rb.JSON(http.StatusTooManyRequests, body))
			return
		}
		next.ServeHTTP(w, r)
	})
}
