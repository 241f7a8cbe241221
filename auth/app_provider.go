package auth

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"code.cloudfoundry.org/clock"
	"code.cloudfoundry.org/lager"

	"disfork/net"
)

const DefaultAuthURL = "https://github.com"

// refreshGrace is how long before expiry a token is treated as stale; wide
// enough to cover one in-flight request round trip.
const refreshGrace = time.Minute

// DeviceCode is what the user has to act on to grant the app access.
type DeviceCode struct {
	UserCode        string
	VerificationURI string
}

// DevicePrompt shows the device code to the user while the provider polls
// for the grant.
type DevicePrompt func(DeviceCode)

type AppProvider struct {
	clientID string
	slug     string
	authURL  string
	client   net.Client
	clock    clock.Clock

	mu         sync.Mutex
	cred       Credential
	refreshing bool
	done       chan struct{}
	refreshErr error
}

// NewAppProvider authenticates through the GitHub App device flow. Authorize
// must succeed before Token is usable; after that, tokens are transparently
// re-exchanged near expiry with a single-flight policy: no matter how many
// fetch tasks race Token, only one exchange is in flight and all callers see
// its result.
func NewAppProvider(clientID, slug, authURL string, httpClient net.Client, clk clock.Clock) *AppProvider {
	return &AppProvider{
		clientID: clientID,
		slug:     slug,
		authURL:  authURL,
		client:   httpClient,
		clock:    clk,
	}
}

func (p *AppProvider) InstallURL() string {
	return fmt.Sprintf("https://github.com/apps/%s/installations/select_target", p.slug)
}

func (p *AppProvider) Authorize(logger lager.Logger, prompt DevicePrompt) error {
	logger = logger.Session("device-flow", lager.Data{"client-id": p.clientID})
	logger.Info("starting")

	code, err := p.startDeviceFlow(logger)
	if err != nil {
		return err
	}

	if prompt != nil {
		prompt(DeviceCode{
			UserCode:        code.UserCode,
			VerificationURI: code.VerificationURI,
		})
	}

	cred, err := p.pollForGrant(logger, code)
	if err != nil {
		return err
	}

	p.mu.Lock()
	p.cred = cred
	p.mu.Unlock()

	logger.Info("done")
	return nil
}

func (p *AppProvider) Token(logger lager.Logger) (string, error) {
	for {
		p.mu.Lock()

		if p.cred.Token == "" && !p.refreshing {
			p.mu.Unlock()
			return "", &Error{Kind: AppNotInstalled, Message: "app authorization has not been granted"}
		}

		if p.freshLocked() {
			token := p.cred.Token
			p.mu.Unlock()
			return token, nil
		}

		if p.refreshing {
			done := p.done
			p.mu.Unlock()

			<-done

			p.mu.Lock()
			err := p.refreshErr
			p.mu.Unlock()
			if err != nil {
				return "", err
			}
			continue
		}

		p.refreshing = true
		p.done = make(chan struct{})
		p.mu.Unlock()

		cred, err := p.exchangeRefreshToken(logger)

		p.mu.Lock()
		p.refreshing = false
		p.refreshErr = err
		if err == nil {
			p.cred = cred
		}
		close(p.done)
		p.mu.Unlock()

		if err != nil {
			return "", err
		}
	}
}

func (p *AppProvider) Reauthorize(logger lager.Logger) error {
	p.mu.Lock()
	if !p.refreshing && p.cred.Token != "" {
		// force the next Token call to re-exchange
		p.cred.ExpiresAt = p.clock.Now()
	}
	p.mu.Unlock()

	_, err := p.Token(logger)
	return err
}

// freshLocked treats a zero expiry as a non-expiring grant.
func (p *AppProvider) freshLocked() bool {
	if p.cred.ExpiresAt.IsZero() {
		return true
	}

	return p.clock.Now().Before(p.cred.ExpiresAt.Add(-refreshGrace))
}

type deviceCodeResponse struct {
	DeviceCode      string `json:"device_code"`
	UserCode        string `json:"user_code"`
	VerificationURI string `json:"verification_uri"`
	ExpiresIn       int64  `json:"expires_in"`
	Interval        int64  `json:"interval"`
}

func (p *AppProvider) startDeviceFlow(logger lager.Logger) (deviceCodeResponse, error) {
	var code deviceCodeResponse

	err := p.postForm(logger, p.authURL+"/login/device/code", url.Values{
		"client_id": {p.clientID},
	}, &code)
	if err != nil {
		return deviceCodeResponse{}, err
	}

	if code.Interval <= 0 {
		code.Interval = 5
	}

	return code, nil
}

type tokenResponse struct {
	AccessToken      string `json:"access_token"`
	ExpiresIn        int64  `json:"expires_in"`
	RefreshToken     string `json:"refresh_token"`
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
}

func (p *AppProvider) pollForGrant(logger lager.Logger, code deviceCodeResponse) (Credential, error) {
	logger = logger.Session("poll-for-grant")

	start := p.clock.Now()
	deadline := time.Duration(code.ExpiresIn) * time.Second
	interval := time.Duration(code.Interval) * time.Second

	for {
		if p.clock.Since(start) >= deadline {
			err := &Error{Kind: AppNotInstalled, Message: "device authorization timed out"}
			logger.Error("failed", err)
			return Credential{}, err
		}

		p.clock.Sleep(interval)

		var grant tokenResponse
		err := p.postForm(logger, p.authURL+"/login/oauth/access_token", url.Values{
			"client_id":   {p.clientID},
			"device_code": {code.DeviceCode},
			"grant_type":  {"urn:ietf:params:oauth:grant-type:device_code"},
		}, &grant)
		if err != nil {
			return Credential{}, err
		}

		if grant.AccessToken != "" {
			return p.credentialFromGrant(grant), nil
		}

		switch grant.Error {
		case "authorization_pending":
			continue
		case "slow_down":
			interval += 5 * time.Second
			continue
		case "expired_token":
			err := &Error{Kind: AppNotInstalled, Message: "device code expired before authorization"}
			logger.Error("failed", err)
			return Credential{}, err
		case "access_denied":
			err := &Error{Kind: AppNotInstalled, Message: "authorization was denied"}
			logger.Error("failed", err)
			return Credential{}, err
		default:
			message := grant.Error
			if grant.ErrorDescription != "" {
				message = grant.ErrorDescription
			}
			err := &Error{Kind: AppNotInstalled, Message: "authorization failed: " + message}
			logger.Error("failed", err)
			return Credential{}, err
		}
	}
}

func (p *AppProvider) exchangeRefreshToken(logger lager.Logger) (Credential, error) {
	logger = logger.Session("refresh-token")
	logger.Info("starting")

	p.mu.Lock()
	refreshToken := p.cred.RefreshToken
	p.mu.Unlock()

	if refreshToken == "" {
		err := &Error{Kind: InvalidToken, Message: "installation token expired and no refresh token was granted"}
		logger.Error("failed", err)
		return Credential{}, err
	}

	var grant tokenResponse
	err := p.postForm(logger, p.authURL+"/login/oauth/access_token", url.Values{
		"client_id":     {p.clientID},
		"refresh_token": {refreshToken},
		"grant_type":    {"refresh_token"},
	}, &grant)
	if err != nil {
		return Credential{}, err
	}

	if grant.AccessToken == "" {
		message := grant.Error
		if grant.ErrorDescription != "" {
			message = grant.ErrorDescription
		}
		err := &Error{Kind: InvalidToken, Message: "token refresh was rejected: " + message}
		logger.Error("failed", err)
		return Credential{}, err
	}

	logger.Info("done")
	return p.credentialFromGrant(grant), nil
}

func (p *AppProvider) credentialFromGrant(grant tokenResponse) Credential {
	cred := Credential{
		Token:        grant.AccessToken,
		RefreshToken: grant.RefreshToken,
	}

	if grant.ExpiresIn > 0 {
		cred.ExpiresAt = p.clock.Now().Add(time.Duration(grant.ExpiresIn) * time.Second)
	}

	return cred
}

func (p *AppProvider) postForm(logger lager.Logger, endpoint string, form url.Values, into interface{}) error {
	request, err := http.NewRequest("POST", endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	request.Header.Set("Accept", "application/json")
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	response, err := p.client.Do(request)
	if err != nil {
		logger.Error("request-failed", err)
		return &Error{Kind: NetworkFailure, Message: err.Error()}
	}
	defer response.Body.Close()

	body, err := ioutil.ReadAll(response.Body)
	if err != nil {
		logger.Error("request-failed", err)
		return &Error{Kind: NetworkFailure, Message: err.Error()}
	}

	if response.StatusCode != http.StatusOK {
		err := &Error{
			Kind:    NetworkFailure,
			Message: fmt.Sprintf("unexpected response from %s (%d)", endpoint, response.StatusCode),
		}
		logger.Error("request-failed", err)
		return err
	}

	if err := json.Unmarshal(body, into); err != nil {
		logger.Error("request-failed", err)
		return &Error{Kind: NetworkFailure, Message: err.Error()}
	}

	return nil
}
