package client

import (
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/zfogg/uploadfile/pkg/config"
	"github.com/zfogg/uploadfile/pkg/logger"
)

const defaultUserAgent = "UploadFile-CLI/0.1.0"

var (
	httpClient *resty.Client
	initOnce   sync.Once
)

// New builds a standalone HTTP client. A zero timeout leaves the
// transport default in place.
func New(timeout time.Duration, userAgent string) *resty.Client {
	c := resty.New()

	if timeout > 0 {
		c.SetTimeout(timeout)
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	c.SetHeader("User-Agent", userAgent)

	c.OnBeforeRequest(func(c *resty.Client, req *resty.Request) error {
		logger.Debug("HTTP Request", "method", req.Method, "url", req.URL)
		return nil
	})

	c.OnAfterResponse(func(c *resty.Client, resp *resty.Response) error {
		logger.Debug("HTTP Response", "status", resp.StatusCode(), "bytes", len(resp.Body()), "elapsed", resp.Time())
		return nil
	})

	return c
}

// GetClient returns the shared HTTP client, configured from api.timeout
// and api.user_agent on first use
func GetClient() *resty.Client {
	initOnce.Do(func() {
		timeout := time.Duration(config.GetInt("api.timeout")) * time.Second
		httpClient = New(timeout, config.GetString("api.user_agent"))
	})
	return httpClient
}
