// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package httputil

import (
	"net/http"
	"time"

	"github.com/pdiddy/vidvaan/pkg/types"
)

// DefaultTimeout bounds an HTTP exchange when the config leaves it unset.
const DefaultTimeout = 30 * time.Second

// NewClient returns an http.Client honouring cfg.Timeout. The User-Agent
// is added per request by the callers that need it.
func NewClient(cfg types.HTTPConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			MaxIdleConnsPerHost: 4,
			IdleConnTimeout:     90 * time.Second,
		},
	}
}
