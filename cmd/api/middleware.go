package main

import (
	"net/http"
)

// limiter lets at most max requests run f at the same time, the rest wait.
func limiter(f http.HandlerFunc, max int) http.HandlerFunc {
	if max <= 0 {
		return f
	}
	// semaphore
	sem := make(chan struct{}, max)

	return func(w http.ResponseWriter, r *http.Request) {
		select {
		case sem <- struct{}{}:
		case <-r.Context().Done():
			http.Error(w, "request cancelled", http.StatusServiceUnavailable)
			return
		}
		// dequeue semaphore
		defer func() { <-sem }()

		f(w, r)
	}
}
