package auth

import (
	"fmt"
	"net/http"
	"strings"

	"code.cloudfoundry.org/lager"

	"disfork/net"
)

var requiredScopes = []string{"repo", "delete_repo"}

type personalProvider struct {
	token string
}

// NewPersonalTokenProvider validates the supplied token once, up front: one
// call against /user confirms the token is accepted and carries the scopes
// needed to read and delete repositories. The token is never refreshed.
func NewPersonalTokenProvider(logger lager.Logger, token, apiURL string, httpClient net.Client) (Provider, error) {
	logger = logger.Session("validate-token")
	logger.Info("starting")

	request, err := http.NewRequest("GET", apiURL+"/user", nil)
	if err != nil {
		return nil, err
	}
	request.Header.Set("Authorization", "token "+token)

	response, err := httpClient.Do(request)
	if err != nil {
		logger.Error("failed", err)
		return nil, &Error{Kind: NetworkFailure, Message: err.Error()}
	}
	defer response.Body.Close()

	switch response.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		err := &Error{Kind: InvalidToken, Message: "the platform rejected the supplied token"}
		logger.Error("failed", err)
		return nil, err
	default:
		err := &Error{
			Kind:    NetworkFailure,
			Message: fmt.Sprintf("unexpected response validating token (%d)", response.StatusCode),
		}
		logger.Error("failed", err)
		return nil, err
	}

	if missing := missingScopes(response.Header.Get("X-OAuth-Scopes")); len(missing) > 0 {
		err := &Error{
			Kind:    InvalidToken,
			Message: fmt.Sprintf("token is missing required scopes: %s", strings.Join(missing, ", ")),
		}
		logger.Error("failed", err)
		return nil, err
	}

	logger.Info("done")
	return &personalProvider{token: token}, nil
}

func (p *personalProvider) Token(lager.Logger) (string, error) {
	return p.token, nil
}

func (p *personalProvider) Reauthorize(logger lager.Logger) error {
	err := &Error{Kind: InvalidToken, Message: "personal token was rejected mid-run and cannot be refreshed"}
	logger.Error("reauthorize-failed", err)
	return err
}

func missingScopes(header string) []string {
	granted := map[string]bool{}
	for _, scope := range strings.Split(header, ",") {
		granted[strings.TrimSpace(scope)] = true
	}

	var missing []string
	for _, scope := range requiredScopes {
		if !granted[scope] {
			missing = append(missing, scope)
		}
	}

	return missing
}
