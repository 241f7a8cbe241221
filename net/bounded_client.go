package net

import "net/http"

const DefaultParallel = 6

type boundedClient struct {
	client Client
	slots  chan struct{}
}

// NewBoundedClient caps the number of requests in flight at once. Both the
// scan fan-out and repository deletion share one bounded client so the
// configured parallelism holds for the whole run.
func NewBoundedClient(c Client, parallel int) Client {
	if parallel <= 0 {
		parallel = DefaultParallel
	}

	return &boundedClient{
		client: c,
		slots:  make(chan struct{}, parallel),
	}
}

func (c *boundedClient) Do(req *http.Request) (*http.Response, error) {
	c.slots <- struct{}{}
	defer func() { <-c.slots }()

	return c.client.Do(req)
}
