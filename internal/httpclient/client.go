package httpclient

import (
	"net/http"
	"time"
)

// Shared HTTP client with connection reuse. Per-request deadlines come
// from the caller's context, so no client-level timeout is set beyond a
// generous upper bound.
var Default = &http.Client{
	Timeout: 30 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	},
}
