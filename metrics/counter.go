package metrics

import (
	"code.cloudfoundry.org/lager"

	"disfork/datadog"
)

//go:generate counterfeiter . Counter

type Counter interface {
	Inc(lager.Logger)
	IncN(lager.Logger, int)
}

type counter struct {
	name    string
	emitter *emitter
}

func (c *counter) Inc(logger lager.Logger) {
	c.IncN(logger, 1)
}

func (c *counter) IncN(logger lager.Logger, count int) {
	if count <= 0 {
		return
	}

	logger = logger.Session("emit-count", lager.Data{
		"name":        c.name,
		"environment": c.emitter.environment,
		"increment":   count,
	})

	metric := c.emitter.client.BuildMetric(datadog.CounterMetricType, c.name, float32(count), c.emitter.environment)
	c.emitter.client.PublishSeries(logger, datadog.Series{metric})

	logger.Debug("emitted")
}

type nullCounter struct {
	name        string
	environment string
}

func (c *nullCounter) Inc(logger lager.Logger) {
	c.IncN(logger, 1)
}

func (c *nullCounter) IncN(logger lager.Logger, count int) {
	logger.Session("emit-count", lager.Data{
		"name":        c.name,
		"environment": c.environment,
		"increment":   count,
	}).Debug("emitted")
}
