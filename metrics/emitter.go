package metrics

import (
	"code.cloudfoundry.org/lager"

	"disfork/datadog"
)

//go:generate counterfeiter . Emitter

type Emitter interface {
	Counter(name string) Counter
	Gauge(name string) Gauge
}

// BuildEmitter falls back to a log-only emitter when no API key is
// configured, so callers never have to care whether metrics are wired up.
func BuildEmitter(logger lager.Logger, apiKey string, environment string) Emitter {
	if apiKey == "" {
		return &nullEmitter{
			environment: environment,
		}
	}

	return NewEmitter(datadog.NewClient(apiKey, logger), environment)
}

func NewEmitter(client datadog.Client, environment string) *emitter {
	return &emitter{
		client:      client,
		environment: environment,
	}
}

type emitter struct {
	client      datadog.Client
	environment string
}

func (e *emitter) Counter(name string) Counter {
	return &counter{
		name:    name,
		emitter: e,
	}
}

func (e *emitter) Gauge(name string) Gauge {
	return &gauge{
		name:    name,
		emitter: e,
	}
}

type nullEmitter struct {
	environment string
}

func (e *nullEmitter) Counter(name string) Counter {
	return &nullCounter{
		name:        name,
		environment: e.environment,
	}
}

func (e *nullEmitter) Gauge(name string) Gauge {
	return &nullGauge{
		name:        name,
		environment: e.environment,
	}
}
