// Package api exposes the query session over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/session"
	"brand-insights-go/internal/types"
)

// Submitter is the part of the session the handlers drive.
type Submitter interface {
	Submit(ctx context.Context, req types.QueryRequest) (session.Snapshot, error)
	Latest() (session.Snapshot, bool)
}

type Handler struct {
	log     *logger.Logger
	session Submitter
}

func NewHandler(log *logger.Logger, s Submitter) *Handler {
	return &Handler{log: log.Component("api"), session: s}
}

func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	h.log.WithRequest(r).Debug("health check")
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprint(w, "ok")
}

func (h *Handler) HandleQuery(w http.ResponseWriter, r *http.Request) {
	reqLog := h.log.WithRequest(r).WithField("handler", "query")

	var req types.QueryRequest
	if err := decodeJSON(r, &req); err != nil {
		reqLog.WithField("error", err.Error()).Warn("rejecting request body")
		handleError(w, err)
		return
	}

	start := time.Now()
	snap, err := h.session.Submit(r.Context(), req)
	reqLog = reqLog.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		if errors.Is(err, session.ErrInvalidRequest) {
			reqLog.WithField("error", err.Error()).Warn("invalid query")
			handleError(w, &HTTPError{Code: http.StatusBadRequest, Message: err.Error()})
			return
		}
		reqLog.WithField("error", err.Error()).Error("submission failed")
		handleError(w, err)
		return
	}

	reqLog.WithField("snapshot_id", snap.ID).WithField("stale", snap.Stale).Info("query answered")
	if err := JSONResponse(w, http.StatusOK, snap); err != nil {
		reqLog.WithField("error", err.Error()).Error("failed to write response")
	}
}

func (h *Handler) HandleLatest(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.session.Latest()
	if !ok {
		_ = JSONError(w, http.StatusNotFound, "no query has been submitted yet")
		return
	}
	if err := JSONResponse(w, http.StatusOK, snap); err != nil {
		h.log.WithRequest(r).WithField("error", err.Error()).Error("failed to write response")
	}
}

// withRequestID makes sure every request and its response carry an id.
func (h *Handler) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := logger.RequestID(r)
		r.Header.Set(logger.RequestIDHeader, id)
		w.Header().Set(logger.RequestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}
