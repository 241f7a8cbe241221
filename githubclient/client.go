package githubclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"code.cloudfoundry.org/lager"
	"github.com/google/go-github/github"

	"disfork/metrics"
	"disfork/net"
)

const DefaultGitHubURL = "https://api.github.com"

const perPage = 100

var (
	ErrNotFound        = errors.New("not found")
	ErrAccountNotFound = errors.New("account not found")
	ErrForbidden       = errors.New("forbidden")
)

//go:generate counterfeiter . Client

type Client interface {
	CurrentUser(logger lager.Logger) (string, error)
	AccountType(logger lager.Logger, account string) (string, error)
	ListForks(logger lager.Logger, account, accountType string, page int) ([]Repository, int, error)
	GetRepository(logger lager.Logger, owner, name string) (Repository, error)
	CompareRefs(logger lager.Logger, owner, repo, base, head string) (Comparison, error)
	DeleteRepository(logger lager.Logger, owner, name string) error
}

type client struct {
	baseURL        string
	httpClient     net.Client
	rateLimitGauge metrics.Gauge
}

func NewClient(baseURL string, httpClient net.Client, emitter metrics.Emitter) *client {
	return &client{
		baseURL:        baseURL,
		httpClient:     httpClient,
		rateLimitGauge: emitter.Gauge("disfork.github_remaining_requests"),
	}
}

func (c *client) CurrentUser(logger lager.Logger) (string, error) {
	logger = logger.Session("current-user")
	logger.Info("starting")

	var account apiAccount
	_, err := c.getJSON(logger, c.url("user"), &account)
	if err != nil {
		return "", err
	}

	logger.Info("done", lager.Data{"login": account.Login})
	return account.Login, nil
}

func (c *client) AccountType(logger lager.Logger, account string) (string, error) {
	logger = logger.Session("account-type", lager.Data{"account": account})
	logger.Info("starting")

	var profile apiAccount
	status, err := c.getJSON(logger, c.url("users", account), &profile)
	if err != nil {
		if status == http.StatusNotFound {
			return "", ErrAccountNotFound
		}
		return "", err
	}

	logger.Info("done", lager.Data{"type": profile.Type})
	return strings.ToLower(profile.Type), nil
}

func (c *client) ListForks(logger lager.Logger, account, accountType string, page int) ([]Repository, int, error) {
	logger = logger.Session("list-forks", lager.Data{
		"account": account,
		"page":    page,
	})
	logger.Info("starting")

	listURL := c.url("users", account, "repos")
	if accountType == "organization" || accountType == "enterprise" {
		listURL = c.url("orgs", account, "repos")
	}
	listURL = fmt.Sprintf("%s?per_page=%d&page=%d", listURL, perPage, page)

	request, err := http.NewRequest("GET", listURL, nil)
	if err != nil {
		return nil, 0, err
	}

	response, body, err := c.do(logger, request)
	if err != nil {
		return nil, 0, err
	}

	if response.StatusCode == http.StatusNotFound {
		logger.Error("failed", ErrAccountNotFound)
		return nil, 0, ErrAccountNotFound
	}

	if response.StatusCode != http.StatusOK {
		return nil, 0, c.unexpectedStatus(logger, response, body)
	}

	var apiRepos []apiRepository
	if err := json.Unmarshal(body, &apiRepos); err != nil {
		logger.Error("failed", err)
		return nil, 0, err
	}

	var forks []Repository
	for _, r := range apiRepos {
		if !r.Fork {
			continue
		}
		forks = append(forks, r.toRepository())
	}

	nextPage := nextPageFromResponse(response)

	logger.Info("done", lager.Data{
		"forks":     len(forks),
		"next-page": nextPage,
	})
	return forks, nextPage, nil
}

func (c *client) GetRepository(logger lager.Logger, owner, name string) (Repository, error) {
	logger = logger.Session("get-repository", lager.Data{
		"owner": owner,
		"repo":  name,
	})
	logger.Info("starting")

	var apiRepo apiRepository
	status, err := c.getJSON(logger, c.url("repos", owner, name), &apiRepo)
	if err != nil {
		if status == http.StatusNotFound {
			return Repository{}, ErrNotFound
		}
		return Repository{}, err
	}

	logger.Info("done")
	return apiRepo.toRepository(), nil
}

func (c *client) CompareRefs(logger lager.Logger, owner, repo, base, head string) (Comparison, error) {
	logger = logger.Session("compare-refs", lager.Data{
		"owner": owner,
		"repo":  repo,
		"base":  base,
		"head":  head,
	})
	logger.Info("starting")

	var result struct {
		AheadBy  int    `json:"ahead_by"`
		BehindBy int    `json:"behind_by"`
		Status   string `json:"status"`
	}

	compareURL := c.url("repos", owner, repo, "compare", base+"..."+url.PathEscape(head))
	status, err := c.getJSON(logger, compareURL, &result)
	if err != nil {
		if status == http.StatusNotFound {
			return Comparison{}, ErrNotFound
		}
		return Comparison{}, err
	}

	logger.Info("done", lager.Data{
		"ahead-by":  result.AheadBy,
		"behind-by": result.BehindBy,
		"status":    result.Status,
	})
	return Comparison{
		AheadBy:  result.AheadBy,
		BehindBy: result.BehindBy,
		Status:   ComparisonStatus(result.Status),
	}, nil
}

func (c *client) DeleteRepository(logger lager.Logger, owner, name string) error {
	logger = logger.Session("delete-repository", lager.Data{
		"owner": owner,
		"repo":  name,
	})
	logger.Info("starting")

	request, err := http.NewRequest("DELETE", c.url("repos", owner, name), nil)
	if err != nil {
		return err
	}

	response, body, err := c.do(logger, request)
	if err != nil {
		return err
	}

	switch response.StatusCode {
	case http.StatusNoContent:
		logger.Info("done")
		return nil
	case http.StatusForbidden:
		logger.Error("failed", ErrForbidden)
		return ErrForbidden
	case http.StatusNotFound:
		logger.Error("failed", ErrNotFound)
		return ErrNotFound
	default:
		return c.unexpectedStatus(logger, response, body)
	}
}

func (c *client) url(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// getJSON issues a GET and decodes the body on 200. On any other status it
// returns the status code alongside an error so callers can map 404s to their
// own policy.
func (c *client) getJSON(logger lager.Logger, url string, into interface{}) (int, error) {
	request, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return 0, err
	}

	response, body, err := c.do(logger, request)
	if err != nil {
		return 0, err
	}

	if response.StatusCode != http.StatusOK {
		return response.StatusCode, c.unexpectedStatus(logger, response, body)
	}

	if err := json.Unmarshal(body, into); err != nil {
		logger.Error("failed", err)
		return response.StatusCode, err
	}

	return response.StatusCode, nil
}

func (c *client) do(logger lager.Logger, request *http.Request) (*http.Response, []byte, error) {
	request.Header.Set("Accept", "application/vnd.github+json")

	response, err := c.httpClient.Do(request)
	if err != nil {
		logger.Error("failed", err)
		return nil, nil, err
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		logger.Error("failed", err)
		return nil, nil, err
	}

	if ratelimit, err := rateFromResponse(response); err == nil {
		c.rateLimitGauge.Update(logger, float32(ratelimit.Remaining))
	}

	return response, body, nil
}

func (c *client) unexpectedStatus(logger lager.Logger, response *http.Response, body []byte) error {
	err := fmt.Errorf("bad response (%d)", response.StatusCode)
	logger.Error("unexpected-status-code", err, lager.Data{
		"status": fmt.Sprintf("%s (%d)", http.StatusText(response.StatusCode), response.StatusCode),
		"body":   string(body),
	})
	return err
}

func rateFromResponse(response *http.Response) (github.Rate, error) {
	header := response.Header

	reset, err := strconv.ParseInt(header.Get("X-Ratelimit-Reset"), 10, 64)
	if err != nil {
		return github.Rate{}, err
	}

	remain, err := strconv.Atoi(header.Get("X-Ratelimit-Remaining"))
	if err != nil {
		return github.Rate{}, err
	}

	return github.Rate{
		Remaining: remain,
		Reset:     github.Timestamp{Time: time.Unix(reset, 0)},
	}, nil
}

// nextPageFromResponse pulls the next page number out of the Link header so
// listings can be walked one page at a time. Zero means the listing is
// exhausted.
func nextPageFromResponse(response *http.Response) int {
	for _, link := range strings.Split(response.Header.Get("Link"), ",") {
		segments := strings.Split(strings.TrimSpace(link), ";")
		if len(segments) < 2 {
			continue
		}

		if !strings.Contains(segments[1], `rel="next"`) {
			continue
		}

		rawURL := strings.Trim(strings.TrimSpace(segments[0]), "<>")
		linkURL, err := url.Parse(rawURL)
		if err != nil {
			continue
		}

		page, err := strconv.Atoi(linkURL.Query().Get("page"))
		if err != nil {
			continue
		}

		return page
	}

	return 0
}
