package auth

import (
	"fmt"
	"time"

	"code.cloudfoundry.org/lager"
	"golang.org/x/oauth2"
)

type Kind int

const (
	InvalidToken Kind = iota
	AppNotInstalled
	NetworkFailure
)

func (k Kind) String() string {
	switch k {
	case InvalidToken:
		return "invalid-token"
	case AppNotInstalled:
		return "app-not-installed"
	case NetworkFailure:
		return "network-failure"
	}

	return "unknown"
}

// Error is fatal to the run: without a usable credential no forks can be
// listed, let alone deleted.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("authentication failed (%s): %s", e.Kind, e.Message)
}

// Credential is the resolved bearer token. ExpiresAt is zero for personal
// tokens and for app grants issued without expiration.
type Credential struct {
	Token        string
	ExpiresAt    time.Time
	RefreshToken string
}

//go:generate counterfeiter . Provider

type Provider interface {
	// Token returns a bearer token that is valid for at least the refresh
	// grace period. Safe to call from many goroutines at once.
	Token(logger lager.Logger) (string, error)

	// Reauthorize is called when the platform rejects the current token
	// mid-run. Providers that cannot mint a new credential return an Error.
	Reauthorize(logger lager.Logger) error
}

type tokenSource struct {
	logger   lager.Logger
	provider Provider
}

// TokenSource adapts a Provider for use with oauth2.Transport, so every
// outgoing request picks up the freshest token.
func TokenSource(logger lager.Logger, provider Provider) oauth2.TokenSource {
	return &tokenSource{
		logger:   logger,
		provider: provider,
	}
}

func (s *tokenSource) Token() (*oauth2.Token, error) {
	token, err := s.provider.Token(s.logger)
	if err != nil {
		return nil, err
	}

	return &oauth2.Token{AccessToken: token}, nil
}
