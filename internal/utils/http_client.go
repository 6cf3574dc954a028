package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

const (
	clientRetryCount   = 2
	clientRetryWait    = 500 * time.Millisecond
	clientRetryMaxWait = 3 * time.Second
)

// HTTPClient embeds *resty.Client preconfigured for talking to the video
// fetcher API.
type HTTPClient struct {
	*resty.Client
}

// NewHTTPClient returns a client bound to baseURL. Requests time out after
// timeout when it is positive. Idempotent requests are retried on connection
// errors and 5xx answers other than 503, which the server uses for a full
// queue.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "vfetch").
		SetRetryCount(clientRetryCount).
		SetRetryWaitTime(clientRetryWait).
		SetRetryMaxWaitTime(clientRetryMaxWait).
		AddRetryCondition(retryable)

	if timeout > 0 {
		client.SetTimeout(timeout)
	}

	return &HTTPClient{Client: client}
}

func retryable(resp *resty.Response, err error) bool {
	if resp == nil || resp.Request == nil {
		return err != nil
	}
	if resp.Request.Method != resty.MethodGet {
		return false
	}
	if err != nil {
		return true
	}
	code := resp.StatusCode()
	return code >= 500 && code != 503
}
