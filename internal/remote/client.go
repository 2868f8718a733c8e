// Package remote talks to the invoicing server: table contents, customer
// autocomplete and row submission.
package remote

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

var (
	// ErrStatus is returned when the server answers with a 4xx or 5xx status.
	ErrStatus = errors.New("remote: unexpected status")
	// ErrSuperseded is returned by Table.Refresh when a newer refresh was
	// started before this one finished. Its result must not be shown.
	ErrSuperseded = errors.New("remote: request superseded")
	// ErrSearchTooShort is returned when an autocomplete term is below the
	// minimum length.
	ErrSearchTooShort = errors.New("remote: search term too short")
)

// Options configures a Client.
type Options struct {
	BaseURL   string
	Timeout   time.Duration
	Retries   int
	MinSearch int
}

// Client is a thin resty wrapper for the invoicing server.
type Client struct {
	http      *resty.Client
	logger    *zap.Logger
	minSearch int
}

// New creates a Client. A nil logger disables logging.
func New(opts Options, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.MinSearch <= 0 {
		opts.MinSearch = 2
	}

	client := resty.New().
		SetBaseURL(opts.BaseURL).
		SetTimeout(opts.Timeout).
		SetRetryCount(opts.Retries).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(5 * time.Second)

	return &Client{
		http:      client,
		logger:    logger,
		minSearch: opts.MinSearch,
	}
}

func checkStatus(resp *resty.Response) error {
	if resp.IsError() {
		return fmt.Errorf("%w: %s %s: %d", ErrStatus, resp.Request.Method, resp.Request.URL, resp.StatusCode())
	}
	return nil
}
