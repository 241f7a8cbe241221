package net

import (
	"net/http"
	"strconv"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
)

const (
	// remainingFloor is the quota level at which new requests are held back
	// until the provider's reset time.
	remainingFloor = 1

	// resetSkew pads the reset wait so a slightly early local clock does not
	// resume into an exhausted window.
	resetSkew = time.Second
)

type rateLimitedClient struct {
	client Client
	clock  clock.Clock
	logger lager.Logger

	mu             sync.Mutex
	suspendedUntil time.Time
}

// NewRateLimitedClient watches the X-Ratelimit headers on every response.
// When the remaining quota reaches the floor, new requests block until the
// advertised reset time passes. In-flight requests are never failed; the wait
// is backpressure, not an error.
func NewRateLimitedClient(c Client, clk clock.Clock, logger lager.Logger) Client {
	return &rateLimitedClient{
		client: c,
		clock:  clk,
		logger: logger,
	}
}

func (c *rateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	c.waitForQuota()

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, err
	}

	c.observe(resp)

	return resp, nil
}

func (c *rateLimitedClient) waitForQuota() {
	for {
		c.mu.Lock()
		until := c.suspendedUntil
		c.mu.Unlock()

		wait := until.Sub(c.clock.Now())
		if wait <= 0 {
			return
		}

		timer := c.clock.NewTimer(wait)
		<-timer.C()
	}
}

func (c *rateLimitedClient) observe(resp *http.Response) {
	remaining, err := strconv.Atoi(resp.Header.Get("X-Ratelimit-Remaining"))
	if err != nil {
		return
	}

	reset, err := strconv.ParseInt(resp.Header.Get("X-Ratelimit-Reset"), 10, 64)
	if err != nil {
		return
	}

	if remaining > remainingFloor {
		return
	}

	until := time.Unix(reset, 0).Add(resetSkew)

	c.mu.Lock()
	if until.After(c.suspendedUntil) {
		c.suspendedUntil = until
		c.logger.Info("quota-exhausted", lager.Data{
			"remaining": remaining,
			"resume-at": until.String(),
		})
	}
	c.mu.Unlock()
}
