// Package backend talks to the remote question-analysis service.
package backend

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/xeipuuv/gojsonschema"

	"brand-insights-go/internal/config"
	"brand-insights-go/internal/logger"
	"brand-insights-go/internal/types"
)

const (
	DeepQueryPath        = "/deep_query"
	SimilarQuestionsPath = "/similar_questions"

	maxBodyBytes = 16 << 20
)

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	deepQuerySchema        = mustSchema("schemas/deep_query.json")
	similarQuestionsSchema = mustSchema("schemas/similar_questions.json")
)

func mustSchema(name string) *gojsonschema.Schema {
	raw, err := schemaFS.ReadFile(name)
	if err != nil {
		panic(fmt.Sprintf("read schema %s: %v", name, err))
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		panic(fmt.Sprintf("compile schema %s: %v", name, err))
	}
	return s
}

type Client struct {
	baseURL     string
	httpClient  *http.Client
	retryBudget time.Duration
	log         *logger.Logger
}

func NewClient(cfg config.BackendConfig, log *logger.Logger) (*Client, error) {
	if cfg.URL == "" {
		return nil, errors.New("BACKEND_URL not set")
	}
	return &Client{
		baseURL:     strings.TrimRight(cfg.URL, "/"),
		httpClient:  &http.Client{Timeout: cfg.Timeout()},
		retryBudget: cfg.RetryBudget(),
		log:         log.Component("backend"),
	}, nil
}

type queryBody struct {
	Question string `json:"question"`
	Brand    string `json:"brand"`
}

// DeepQuery asks the backend to answer the question now and return similar past answers.
func (c *Client) DeepQuery(ctx context.Context, req types.QueryRequest) (*types.DeepQueryResponse, error) {
	var out types.DeepQueryResponse
	if err := c.post(ctx, DeepQueryPath, req, deepQuerySchema, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SimilarQuestions only looks up past answers. A 404 maps to ErrNoSimilarQuestions.
func (c *Client) SimilarQuestions(ctx context.Context, req types.QueryRequest) (*types.SimilarQuestionsResponse, error) {
	var out types.SimilarQuestionsResponse
	err := c.post(ctx, SimilarQuestionsPath, req, similarQuestionsSchema, &out)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %w", ErrNoSimilarQuestions, err)
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) post(ctx context.Context, path string, req types.QueryRequest, schema *gojsonschema.Schema, target any) error {
	payload, err := json.Marshal(queryBody{Question: req.Question, Brand: req.Brand})
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	endpoint := c.baseURL + path
	log := c.log.WithField("endpoint", path)

	attempt := 0
	op := func() error {
		attempt++
		httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
		if err != nil {
			return backoff.Permanent(fmt.Errorf("build request: %w", err))
		}
		httpReq.Header.Set("Content-Type", "application/json")

		start := time.Now()
		resp, err := c.httpClient.Do(httpReq)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			log.WithField("attempt", attempt).WithField("error", err.Error()).Warn("backend request failed")
			return fmt.Errorf("%s: %w", path, err)
		}
		defer resp.Body.Close()

		body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return fmt.Errorf("%s: read body: %w", path, err)
		}
		log.WithField("attempt", attempt).
			WithField("status", resp.StatusCode).
			WithField("duration_ms", time.Since(start).Milliseconds()).
			Debug("backend responded")

		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			statusErr := &StatusError{Endpoint: path, StatusCode: resp.StatusCode, Body: string(body)}
			if statusErr.Temporary() {
				return statusErr
			}
			return backoff.Permanent(statusErr)
		}
		if err := decode(path, body, schema, target); err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}

	return backoff.Retry(op, backoff.WithContext(c.policy(), ctx))
}

func (c *Client) policy() backoff.BackOff {
	if c.retryBudget <= 0 {
		return &backoff.StopBackOff{}
	}
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.retryBudget
	return bo
}

// decode validates the body against the schema before unmarshalling it.
func decode(path string, body []byte, schema *gojsonschema.Schema, target any) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return &MalformedPayloadError{Endpoint: path, Problems: []string{"empty body"}}
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &MalformedPayloadError{Endpoint: path, Problems: []string{err.Error()}}
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			field := desc.Field()
			if field == "" {
				field = "(root)"
			}
			problems = append(problems, field+": "+desc.Description())
		}
		return &MalformedPayloadError{Endpoint: path, Problems: problems}
	}
	if err := json.Unmarshal(body, target); err != nil {
		return &MalformedPayloadError{Endpoint: path, Problems: []string{err.Error()}}
	}
	return nil
}
