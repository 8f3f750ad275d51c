// Package session runs one question submission at a time against the
// backend and keeps the latest result as an immutable snapshot.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"brand-insights-go/internal/aggregator"
	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/types"
)

// ErrInvalidRequest wraps request validation failures.
var ErrInvalidRequest = errors.New("invalid request")

// Backend is the remote analysis service.
type Backend interface {
	DeepQuery(ctx context.Context, req types.QueryRequest) (*types.DeepQueryResponse, error)
	SimilarQuestions(ctx context.Context, req types.QueryRequest) (*types.SimilarQuestionsResponse, error)
}

// Snapshot is the complete state produced by one submission. It is never
// modified after Submit returns it.
type Snapshot struct {
	ID                     string                   `json:"id"`
	Generation             uint64                   `json:"generation"`
	SubmittedAt            time.Time                `json:"submitted_at"`
	Request                types.QueryRequest       `json:"request"`
	CurrentResult          types.ModelResultSet     `json:"current_result"`
	SimilarPreviousResults []types.HistoricalResult `json:"similar_previous_results"`
	HasResults             bool                     `json:"has_results"`
	Error                  string                   `json:"error,omitempty"`
	ErrorKind              string                   `json:"error_kind,omitempty"`
	Info                   string                   `json:"info,omitempty"`
	Stale                  bool                     `json:"stale"`
	View                   View                     `json:"view"`
}

type Session struct {
	backend Backend
	topK    int
	log     *logger.Logger

	generation atomic.Uint64

	mu        sync.RWMutex
	published uint64
	latest    *Snapshot
}

func New(b Backend, topK int, log *logger.Logger) *Session {
	if topK < 1 {
		topK = aggregator.DefaultTopK
	}
	return &Session{backend: b, topK: topK, log: log.Component("session")}
}

// Submit validates the request, queries the backend and derives the view.
// Backend failures end up in Snapshot.Error, only an invalid request returns
// an error. A response that arrives after a newer submission has already
// been published is returned marked Stale and is not published.
func (s *Session) Submit(ctx context.Context, req types.QueryRequest) (Snapshot, error) {
	if err := req.Validate(); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %w", ErrInvalidRequest, err)
	}
	gen := s.generation.Add(1)
	snap := Snapshot{
		ID:                     uuid.New().String(),
		Generation:             gen,
		SubmittedAt:            time.Now().UTC(),
		Request:                req,
		SimilarPreviousResults: []types.HistoricalResult{},
	}
	log := s.log.WithField("snapshot_id", snap.ID).
		WithField("generation", gen).
		WithField("similar_only", req.SimilarOnly)
	log.Info("submitting question")

	start := time.Now()
	err := s.fetch(ctx, req, &snap)
	log = log.WithField("duration_ms", time.Since(start).Milliseconds())
	if err != nil {
		snap.CurrentResult = nil
		snap.SimilarPreviousResults = []types.HistoricalResult{}
		snap.Error = errorMessage(err, req.SimilarOnly)
		snap.ErrorKind = errorKind(err)
		log.WithField("error", err.Error()).WithField("error_kind", snap.ErrorKind).Warn("submission failed")
	} else if req.SimilarOnly && len(snap.SimilarPreviousResults) == 0 {
		snap.Info = MsgNoSimilar
	}

	snap.HasResults = snap.CurrentResult.Present() || len(snap.SimilarPreviousResults) > 0
	snap.View = BuildView(snap.CurrentResult, snap.SimilarPreviousResults, req.Brand, req.SimilarOnly, s.topK)

	s.mu.Lock()
	if gen > s.published {
		s.published = gen
		published := snap
		s.latest = &published
	} else {
		snap.Stale = true
	}
	s.mu.Unlock()

	if snap.Stale {
		log.Warn("discarding stale response, a newer submission already landed")
	} else {
		log.WithField("has_results", snap.HasResults).Info("submission published")
	}
	return snap, nil
}

func (s *Session) fetch(ctx context.Context, req types.QueryRequest, snap *Snapshot) error {
	if req.SimilarOnly {
		resp, err := s.backend.SimilarQuestions(ctx, req)
		if err != nil {
			return err
		}
		if resp.SimilarPreviousResults != nil {
			snap.SimilarPreviousResults = resp.SimilarPreviousResults
		}
		return nil
	}
	resp, err := s.backend.DeepQuery(ctx, req)
	if err != nil {
		return err
	}
	snap.CurrentResult = resp.CurrentResult
	if resp.SimilarPreviousResults != nil {
		snap.SimilarPreviousResults = resp.SimilarPreviousResults
	}
	return nil
}

// Latest returns the most recently published snapshot.
func (s *Session) Latest() (Snapshot, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.latest == nil {
		return Snapshot{}, false
	}
	return *s.latest, true
}
