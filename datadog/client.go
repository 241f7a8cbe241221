package datadog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"

	"disfork/net"
)

var APIURL = "https://app.datadoghq.com"

const GaugeMetricType string = "gauge"
const CounterMetricType string = "count"

type Series []Metric

type Metric struct {
	Name   string   `json:"metric"`
	Points []Point  `json:"points"`
	Type   string   `json:"type"`
	Host   string   `json:"host"`
	Tags   []string `json:"tags"`
}

type Point struct {
	Timestamp time.Time
	Value     float32
}

func (p Point) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`[%d, %f]`, p.Timestamp.Unix(), p.Value)), nil
}

type seriesRequest struct {
	Series Series `json:"series"`
}

//go:generate counterfeiter . Client

type Client interface {
	BuildMetric(metricType string, metricName string, value float32, tags ...string) Metric
	PublishSeries(logger lager.Logger, series Series)
}

type client struct {
	apiKey string
	client net.Client
}

func NewClient(apiKey string, logger lager.Logger) Client {
	httpClient := &http.Client{
		Timeout: 10 * time.Second,
		Transport: &http.Transport{
			DisableKeepAlives: true,
		},
	}

	return &client{
		apiKey: apiKey,
		client: net.NewRetryingClient(httpClient, nil, clock.NewClock(), logger),
	}
}

func (c *client) BuildMetric(metricType string, metricName string, value float32, tags ...string) Metric {
	return Metric{
		Name: metricName,
		Type: metricType,
		Points: []Point{
			{Timestamp: time.Now(), Value: value},
		},
		Tags: tags,
	}
}

func (c *client) PublishSeries(logger lager.Logger, series Series) {
	logger = logger.Session("publish-series")

	body, err := json.Marshal(seriesRequest{Series: series})
	if err != nil {
		logger.Error("failed-to-marshal", err)
		return
	}

	url := fmt.Sprintf("%s/api/v1/series?api_key=%s", APIURL, c.apiKey)
	request, err := http.NewRequest("POST", url, bytes.NewReader(body))
	if err != nil {
		logger.Error("failed-to-build-request", err)
		return
	}
	request.Header.Set("Content-Type", "application/json")

	response, err := c.client.Do(request)
	if err != nil {
		logger.Error("failed-to-publish", err)
		return
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusAccepted && response.StatusCode != http.StatusOK {
		logger.Error("failed-to-publish", fmt.Errorf("bad response (%d)", response.StatusCode))
	}
}
