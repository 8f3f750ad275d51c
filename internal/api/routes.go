package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.HandleHealth)
	mux.HandleFunc("POST /query", handler.HandleQuery)
	mux.HandleFunc("GET /query/latest", handler.HandleLatest)
}

// NewRouter builds the full handler tree with request logging applied.
func NewRouter(handler *Handler) http.Handler {
	mux := http.NewServeMux()
	RegisterRoutes(mux, handler)
	return handler.withRequestID(mux)
}
