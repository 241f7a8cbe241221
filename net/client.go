package net

import (
	"net/http"

	"code.cloudfoundry.org/lager"
)

//go:generate counterfeiter . Client

type Client interface {
	Do(req *http.Request) (*http.Response, error)
}

//go:generate counterfeiter . Reauthorizer

// Reauthorizer is asked to produce a fresh credential when a request comes
// back 401 mid-run.
type Reauthorizer interface {
	Reauthorize(logger lager.Logger) error
}
