package ports

import "net/http"

// HTTPClient abstracts HTTP operations so HTTP sources can be tested
// against httptest servers or custom transports.
// The standard *http.Client satisfies this interface.
type HTTPClient interface {
	// Do sends an HTTP request and returns an HTTP response.
	Do(req *http.Request) (*http.Response, error)
}
