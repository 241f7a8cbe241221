package scan

import (
	"sync"

	"code.cloudfoundry.org/lager"

	"disfork/auth"
)

type State int

const (
	StateInit State = iota
	StateAuthenticating
	StateListing
	StateClassifying
	StateAggregating
	StateDone
	StateErrored
	StateCancelled
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateAuthenticating:
		return "authenticating"
	case StateListing:
		return "listing"
	case StateClassifying:
		return "classifying"
	case StateAggregating:
		return "aggregating"
	case StateDone:
		return "done"
	case StateErrored:
		return "errored"
	case StateCancelled:
		return "cancelled"
	}

	return "unknown"
}

func (s State) terminal() bool {
	return s == StateDone || s == StateErrored || s == StateCancelled
}

// Session owns the run-scoped state: the credential provider, the target
// account, the parallelism limit, and the verdicts in discovery order. Only
// the orchestrator mutates it; once it reaches a terminal state it is
// read-only.
type Session struct {
	provider auth.Provider
	parallel int

	mu       sync.Mutex
	account  string
	state    State
	verdicts []Verdict
}

func NewSession(provider auth.Provider, account string, parallel int) *Session {
	if parallel <= 0 {
		parallel = 6
	}

	return &Session{
		provider: provider,
		account:  account,
		parallel: parallel,
		state:    StateInit,
	}
}

func (s *Session) Provider() auth.Provider {
	return s.provider
}

func (s *Session) Parallel() int {
	return s.parallel
}

func (s *Session) Account() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.account
}

func (s *Session) setAccount(account string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.account = account
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) transition(logger lager.Logger, to State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.terminal() {
		return
	}

	logger.Info("state-transition", lager.Data{
		"from": s.state.String(),
		"to":   to.String(),
	})
	s.state = to
}

func (s *Session) append(v Verdict) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.terminal() {
		return
	}

	s.verdicts = append(s.verdicts, v)
}

// Verdicts returns a copy of the aggregated sequence in discovery order.
func (s *Session) Verdicts() []Verdict {
	s.mu.Lock()
	defer s.mu.Unlock()

	verdicts := make([]Verdict, len(s.verdicts))
	copy(verdicts, s.verdicts)
	return verdicts
}
