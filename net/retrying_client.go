package net

import (
	"bytes"
	"errors"
	"io"
	"io/ioutil"
	"math/rand"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"
)

const maxRetries = 3

var ErrRetryExhausted = errors.New("request failed after retry")

type retryingClient struct {
	client       Client
	reauthorizer Reauthorizer
	clock        clock.Clock
	logger       lager.Logger
}

// NewRetryingClient retries transport errors and 5xx responses with jittered
// backoff. Other 4xx responses are returned as-is, except 401: the
// reauthorizer is given one chance to refresh the credential and the request
// is replayed once.
func NewRetryingClient(c Client, reauthorizer Reauthorizer, clk clock.Clock, logger lager.Logger) Client {
	return &retryingClient{
		client:       c,
		reauthorizer: reauthorizer,
		clock:        clk,
		logger:       logger,
	}
}

func (c *retryingClient) Do(orgReq *http.Request) (*http.Response, error) {
	logger := c.logger.Session("retrying-request", lager.Data{
		"method": orgReq.Method,
		"url":    orgReq.URL.String(),
	})

	var body []byte
	if orgReq.Body != nil {
		var err error
		body, err = ioutil.ReadAll(orgReq.Body)
		if err != nil {
			return nil, err
		}
	}

	reauthorized := false

	for i := 0; i < maxRetries+1; i++ {
		req, reqErr := http.NewRequest(orgReq.Method, orgReq.URL.String(), requestBody(body))
		if reqErr != nil {
			return nil, reqErr
		}

		req.Header = orgReq.Header

		c.delayForAttempt(i)
		resp, err := c.client.Do(req)
		if err != nil {
			logger.Error("attempt-failed", err, lager.Data{"attempt": i})
			continue
		}

		if resp.StatusCode == http.StatusUnauthorized && c.reauthorizer != nil && !reauthorized {
			reauthorized = true
			resp.Body.Close()

			logger.Info("reauthorizing")
			if err := c.reauthorizer.Reauthorize(logger); err != nil {
				logger.Error("reauthorize-failed", err)
				return nil, err
			}
			continue
		}

		if resp.StatusCode >= http.StatusInternalServerError {
			logger.Info("retrying-server-error", lager.Data{
				"attempt": i,
				"status":  resp.StatusCode,
			})
			resp.Body.Close()
			continue
		}

		return resp, nil
	}

	logger.Error("failed", ErrRetryExhausted)
	return nil, ErrRetryExhausted
}

func requestBody(body []byte) io.Reader {
	if body == nil {
		return nil
	}
	return bytes.NewReader(body)
}

var delays = [maxRetries][2]int{
	{250, 750},
	{375, 1125},
	{562, 1687},
}

func (c *retryingClient) delayForAttempt(i int) {
	if i == 0 {
		return
	}

	if i > maxRetries {
		i = maxRetries
	}

	random := rand.Intn(delays[i-1][1]-delays[i-1][0]) + delays[i-1][0]
	c.clock.Sleep(time.Duration(random) * time.Millisecond)
}
