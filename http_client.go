package main

import (
	"net/http"
	"time"
)

const externalHTTPTimeout = 30 * time.Second

var externalHTTPClient = &http.Client{
	Timeout: externalHTTPTimeout,
}

// ConfigureExternalHTTPClient applies the configured timeout, falling back
// to the default when the value is zero or negative.
func ConfigureExternalHTTPClient(seconds int) time.Duration {
	if seconds <= 0 {
		externalHTTPClient.Timeout = externalHTTPTimeout
	} else {
		externalHTTPClient.Timeout = time.Duration(seconds) * time.Second
	}
	return externalHTTPClient.Timeout
}
