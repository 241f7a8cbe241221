package metrics

import (
	"code.cloudfoundry.org/lager"

	"disfork/datadog"
)

//go:generate counterfeiter . Gauge

type Gauge interface {
	Update(lager.Logger, float32, ...string)
}

type gauge struct {
	name    string
	emitter *emitter
}

func (g *gauge) Update(logger lager.Logger, value float32, tags ...string) {
	logger = logger.Session("emit-gauge", lager.Data{
		"name":        g.name,
		"environment": g.emitter.environment,
		"value":       value,
	})

	tags = append(tags, g.emitter.environment)
	metric := g.emitter.client.BuildMetric(datadog.GaugeMetricType, g.name, value, tags...)
	g.emitter.client.PublishSeries(logger, datadog.Series{metric})

	logger.Debug("emitted")
}

type nullGauge struct {
	name        string
	environment string
}

func (g *nullGauge) Update(logger lager.Logger, value float32, tags ...string) {
	logger.Session("emit-gauge", lager.Data{
		"name":        g.name,
		"environment": g.environment,
		"value":       value,
	}).Debug("emitted")
}
