package utils

import (
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPClient wraps resty.Client with the defaults every outbound roadwatch
// request shares. Embedding exposes the full resty API, so callers configure
// base URL and timeout directly on the returned client.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns an independent HTTP client preconfigured for JSON
// APIs: requests default to an application/json accept header, and transport
// failures on GET requests are retried twice with a short backoff. Writes are
// never retried — a login POST that timed out may already have been counted
// by the provider, and replaying it would charge the attempt twice.
func NewHTTPClient() *HTTPClient {
	client := resty.New().
		SetHeader("Accept", "application/json").
		SetRetryCount(2).
		SetRetryWaitTime(200 * time.Millisecond).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil && r.Request.Method == http.MethodGet
		})

	return &HTTPClient{Client: client}
}
