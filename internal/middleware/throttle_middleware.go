package middleware

import (
	"CoinVestAPI/internal/config"
	"CoinVestAPI/internal/helper"
	"CoinVestAPI/internal/model"
	"fmt"
	"math"
	"net/http"
)

// Throttle is an in-process limiter for expensive endpoints such as file
// uploads, keyed on the authenticated user. It complements the redis-backed
// limiter, which stays authoritative for the unauthenticated surface.
func Throttle(limiter *config.RateLimiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userContext, ok := r.Context().Value(UserContextKey).(*model.UserDTO)
			if !ok {
				helper.WriteError(w, helper.NewUnauthorizedError(""))
				return
			}

			allowed, delay := limiter.Allow(userContext.ID.String())
			if !allowed {
				if delay > 0 {
					w.Header().Set("Retry-After", fmt.Sprintf("%d", int(math.Ceil(delay.Seconds()))))
				}
				helper.WriteError(w, helper.NewTooManyRequestsError(""))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
