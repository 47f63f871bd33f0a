// Package api implements the outbound HTTP clients used by the store:
// the public SWAPI catalog and the favorites backend.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/atinyakov/HoloFavs/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrMalformedResponse is returned when a response body cannot be decoded
	// or lacks the fields the caller needs.
	ErrMalformedResponse = errors.New("malformed response")
	// ErrUnexpectedStatus is returned for non-2xx responses.
	ErrUnexpectedStatus = errors.New("unexpected status")
)

// maxBodySize caps how much of a response body is read into memory.
const maxBodySize = 4 << 20

// requestIDTransport stamps every request with an X-Request-ID and logs
// the round trip at debug level.
type requestIDTransport struct {
	next http.RoundTripper
	log  *zap.Logger
}

func (t *requestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	if req.Header.Get(models.RequestIDHeader) == "" {
		req.Header.Set(models.RequestIDHeader, uuid.NewString())
	}

	start := time.Now()
	resp, err := t.next.RoundTrip(req)
	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.String("request_id", req.Header.Get(models.RequestIDHeader)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if err != nil {
		t.log.Debug("request failed", append(fields, zap.Error(err))...)
		return nil, err
	}
	t.log.Debug("request done", append(fields, zap.Int("status", resp.StatusCode))...)
	return resp, nil
}

// NewHTTPClient returns an http.Client with the given timeout whose
// requests carry a request id.
func NewHTTPClient(timeout time.Duration, log *zap.Logger) *http.Client {
	if log == nil {
		log = zap.NewNop()
	}
	return &http.Client{
		Transport: &requestIDTransport{next: http.DefaultTransport, log: log},
		Timeout:   timeout,
	}
}

// send performs one request and returns the status code and the raw body.
// Only transport failures are returned as errors.
func send(ctx context.Context, client *http.Client, method, url string, payload any) (int, []byte, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}
	return resp.StatusCode, data, nil
}

func statusOK(code int) bool {
	return code >= 200 && code < 300
}

func statusError(code int, body []byte) error {
	msg := bytes.TrimSpace(body)
	if len(msg) > 200 {
		msg = msg[:200]
	}
	return fmt.Errorf("%w %d: %s", ErrUnexpectedStatus, code, msg)
}
