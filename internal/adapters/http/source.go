package http

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bft-labs/runeguard/internal/domain"
	"github.com/bft-labs/runeguard/internal/ports"
)

const userAgent = "runeguard"

// StatusError is a non-2xx response. Client errors other than 408 and 429
// unwrap to domain.ErrPermanent.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Code, e.Body)
}

func (e *StatusError) Unwrap() error {
	switch {
	case e.Code == http.StatusRequestTimeout, e.Code == http.StatusTooManyRequests:
		return nil
	case e.Code >= 400 && e.Code < 500:
		return domain.ErrPermanent
	}
	return nil
}

// Source implements ports.Source by fetching a URL with GET.
type Source struct {
	url      string
	client   ports.HTTPClient
	maxBytes int64
}

// NewSource creates an HTTP source. maxBytes <= 0 disables the limit.
func NewSource(url string, client ports.HTTPClient, maxBytes int64) *Source {
	return &Source{url: url, client: client, maxBytes: maxBytes}
}

// Name returns the URL.
func (s *Source) Name() string {
	return s.url
}

// Load fetches the response body. Non-2xx responses are errors.
func (s *Source) Load(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, &StatusError{Code: resp.StatusCode, Body: string(snippet)}
	}

	if s.maxBytes > 0 && resp.ContentLength > s.maxBytes {
		return nil, fmt.Errorf("%s: %d bytes: %w", s.url, resp.ContentLength, domain.ErrSourceTooLarge)
	}

	body := io.Reader(resp.Body)
	if s.maxBytes > 0 {
		body = io.LimitReader(resp.Body, s.maxBytes+1)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}
	if s.maxBytes > 0 && int64(len(data)) > s.maxBytes {
		return nil, fmt.Errorf("%s: more than %d bytes: %w", s.url, s.maxBytes, domain.ErrSourceTooLarge)
	}
	return data, nil
}
