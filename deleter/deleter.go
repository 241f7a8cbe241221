package deleter

import (
	"sync"

	"code.cloudfoundry.org/lager"
	multierror "github.com/hashicorp/go-multierror"

	"disfork/githubclient"
	"disfork/metrics"
)

// Report is the only way callers observe partial failure: one fork failing
// to delete never aborts the batch and never raises a process-level error.
type Report struct {
	DryRun      bool
	WouldDelete []githubclient.Repository
	Succeeded   []githubclient.Repository
	Failed      map[string]error
}

// Err aggregates the per-fork failures for display. Nil when everything
// succeeded or the run was a dry run.
func (r Report) Err() error {
	var result *multierror.Error
	for _, err := range r.Failed {
		result = multierror.Append(result, err)
	}
	return result.ErrorOrNil()
}

type Coordinator struct {
	client   githubclient.Client
	parallel int
	counter  metrics.Counter
}

// NewCoordinator deletes through the same bounded client as the scan, so the
// configured parallelism caps the whole run. The parallel argument bounds how
// many deletions are dispatched at once.
func NewCoordinator(client githubclient.Client, parallel int, emitter metrics.Emitter) *Coordinator {
	if parallel <= 0 {
		parallel = 1
	}

	return &Coordinator{
		client:   client,
		parallel: parallel,
		counter:  emitter.Counter("disfork.repos_deleted"),
	}
}

func (c *Coordinator) Delete(logger lager.Logger, selected []githubclient.Repository, dryRun bool) Report {
	logger = logger.Session("delete", lager.Data{
		"selected": len(selected),
		"dry-run":  dryRun,
	})
	logger.Info("starting")
	defer logger.Info("done")

	report := Report{
		DryRun: dryRun,
		Failed: map[string]error{},
	}

	if dryRun {
		report.WouldDelete = append(report.WouldDelete, selected...)
		return report
	}

	slots := make(chan struct{}, c.parallel)
	results := make(chan result)

	go func() {
		var wg sync.WaitGroup

		for _, repo := range selected {
			slots <- struct{}{}
			wg.Add(1)

			go func(repo githubclient.Repository) {
				defer wg.Done()
				defer func() { <-slots }()

				err := c.client.DeleteRepository(logger, repo.Owner, repo.Name)
				results <- result{repo: repo, err: err}
			}(repo)
		}

		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.err != nil {
			report.Failed[res.repo.FullName()] = res.err
			continue
		}

		report.Succeeded = append(report.Succeeded, res.repo)
		c.counter.Inc(logger)
	}

	return report
}

type result struct {
	repo githubclient.Repository
	err  error
}
