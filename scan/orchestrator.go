package scan

import (
	"errors"
	"os"
	"sync"

	"code.cloudfoundry.org/lager"

	"disfork/githubclient"
	"disfork/metrics"
)

var ErrCancelled = errors.New("scan cancelled")

type completion struct {
	index   int
	verdict Verdict
}

// Orchestrator enumerates an account's forks and fans classification out
// over the bounded fetch pool. It is an ifrit runner: a signal cancels the
// scan, in-flight units finish on their own and their results are discarded.
type Orchestrator struct {
	logger     lager.Logger
	client     githubclient.Client
	classifier *Classifier
	session    *Session
	counter    metrics.Counter

	out chan Verdict
}

func NewOrchestrator(
	logger lager.Logger,
	client githubclient.Client,
	classifier *Classifier,
	session *Session,
	emitter metrics.Emitter,
) *Orchestrator {
	return &Orchestrator{
		logger:     logger,
		client:     client,
		classifier: classifier,
		session:    session,
		counter:    emitter.Counter("disfork.forks_classified"),
		out:        make(chan Verdict),
	}
}

// Verdicts streams the aggregated sequence in discovery order as prefixes
// complete. The channel closes when the run ends; consumers must drain it.
func (o *Orchestrator) Verdicts() <-chan Verdict {
	return o.out
}

func (o *Orchestrator) Run(signals <-chan os.Signal, ready chan<- struct{}) error {
	logger := o.logger.Session("scan")
	logger.Info("started")
	defer logger.Info("done")
	defer close(o.out)

	close(ready)

	o.session.transition(logger, StateAuthenticating)

	if _, err := o.session.Provider().Token(logger); err != nil {
		logger.Error("authentication-failed", err)
		o.session.transition(logger, StateErrored)
		return err
	}

	account := o.session.Account()
	if account == "" {
		login, err := o.client.CurrentUser(logger)
		if err != nil {
			o.session.transition(logger, StateErrored)
			return err
		}
		o.session.setAccount(login)
		account = login
	}

	accountType, err := o.client.AccountType(logger, account)
	if err != nil {
		o.session.transition(logger, StateErrored)
		return err
	}

	logger = logger.WithData(lager.Data{"account": account})
	o.session.transition(logger, StateListing)

	stop := make(chan struct{})
	completions := make(chan completion)
	listDone := make(chan int, 1)
	listErr := make(chan error, 1)

	go o.schedule(logger, account, accountType, stop, completions, listDone, listErr)

	var (
		total      int
		totalKnown bool
		emitted    int
		next       int
		classified bool
		pending    = map[int]Verdict{}
	)

	for {
		if totalKnown && emitted == total {
			break
		}

		select {
		case <-signals:
			close(stop)
			o.session.transition(logger, StateCancelled)
			logger.Info("cancelled", lager.Data{"classified": emitted})
			return ErrCancelled

		case err := <-listErr:
			close(stop)
			o.session.transition(logger, StateErrored)
			return err

		case n := <-listDone:
			total = n
			totalKnown = true
			o.session.transition(logger, StateAggregating)

		case comp := <-completions:
			if !classified {
				classified = true
				o.session.transition(logger, StateClassifying)
			}

			pending[comp.index] = comp.verdict

			for {
				verdict, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				next++
				emitted++

				o.session.append(verdict)
				o.counter.Inc(logger)
				o.out <- verdict
			}
		}
	}

	o.session.transition(logger, StateDone)
	return nil
}

// schedule walks the fork listing one page at a time and launches one
// classification unit per fork, at most Parallel in flight. The listing is
// never materialized whole; each page is scheduled as it arrives.
func (o *Orchestrator) schedule(
	logger lager.Logger,
	account string,
	accountType string,
	stop chan struct{},
	completions chan<- completion,
	listDone chan<- int,
	listErr chan<- error,
) {
	slots := make(chan struct{}, o.session.Parallel())
	var wg sync.WaitGroup

	page := 1
	index := 0

	for {
		select {
		case <-stop:
			return
		default:
		}

		forks, nextPage, err := o.client.ListForks(logger, account, accountType, page)
		if err != nil {
			listErr <- err
			return
		}

		for _, fork := range forks {
			select {
			case <-stop:
				return
			case slots <- struct{}{}:
			}

			wg.Add(1)
			go func(i int, fork githubclient.Repository) {
				defer wg.Done()
				defer func() { <-slots }()

				verdict := o.classifyFork(logger, fork)

				select {
				case completions <- completion{index: i, verdict: verdict}:
				case <-stop:
				}
			}(index, fork)

			index++
		}

		if nextPage == 0 {
			break
		}
		page = nextPage
	}

	listDone <- index
	wg.Wait()
}

// classifyFork is one unit of work: fetch the fork with its parent, compare
// default branches, classify. Failures stay attached to this fork; they
// never abort the scan.
func (o *Orchestrator) classifyFork(logger lager.Logger, fork githubclient.Repository) Verdict {
	logger = logger.Session("classify-fork", lager.Data{"repo": fork.FullName()})

	full, err := o.client.GetRepository(logger, fork.Owner, fork.Name)
	if err != nil {
		logger.Error("fetch-failed", err)
		return Verdict{Repo: fork, Err: err}
	}

	if full.Parent == nil {
		logger.Info("parent-missing")
		return o.classifier.ClassifyOrphan(full)
	}

	parent := *full.Parent

	comparison, err := o.client.CompareRefs(
		logger,
		parent.Owner,
		parent.Name,
		parent.DefaultBranch,
		full.Owner+":"+full.DefaultBranch,
	)
	if err != nil {
		if errors.Is(err, githubclient.ErrNotFound) {
			logger.Info("parent-gone")
			return o.classifier.ClassifyOrphan(full)
		}

		logger.Error("compare-failed", err)
		return Verdict{Repo: full, Err: err}
	}

	return o.classifier.Classify(full, comparison)
}
