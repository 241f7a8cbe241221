package scan

import (
	"time"

	"disfork/githubclient"
)

// DefaultActivityEpsilon is how much later than creation a push has to land
// before the fork counts as independently active. Forks pick up a push
// timestamp moments after creation, so a small window is ignored.
const DefaultActivityEpsilon = 90 * time.Second

type Classifier struct {
	activityEpsilon time.Duration
}

func NewClassifier(activityEpsilon time.Duration) *Classifier {
	if activityEpsilon <= 0 {
		activityEpsilon = DefaultActivityEpsilon
	}

	return &Classifier{
		activityEpsilon: activityEpsilon,
	}
}

// Classify is pure: same fork and comparison always produce the same
// verdict. Rules are evaluated in order, first match wins.
func (c *Classifier) Classify(fork githubclient.Repository, comparison githubclient.Comparison) Verdict {
	if comparison.AheadBy > 0 {
		return Verdict{Repo: fork, Useless: false, Reason: ReasonHasCommitsAhead}
	}

	if fork.Stargazers > 0 {
		return Verdict{Repo: fork, Useless: false, Reason: ReasonHasStarsOrActivity}
	}

	if !fork.PushedAt.IsZero() && fork.PushedAt.After(fork.CreatedAt.Add(c.activityEpsilon)) {
		// pushed to independently even though nothing is ahead now, e.g.
		// after a reset
		return Verdict{Repo: fork, Useless: false, Reason: ReasonHasStarsOrActivity}
	}

	if fork.PushedAt.IsZero() {
		return Verdict{Repo: fork, Useless: true, Reason: ReasonNoActivity}
	}

	return Verdict{Repo: fork, Useless: true, Reason: ReasonNoCommitsAhead}
}

// ClassifyOrphan covers forks whose upstream has been deleted or renamed:
// with nothing to compare against they are treated as abandoned. This is a
// deliberate policy, not a silent failure.
func (c *Classifier) ClassifyOrphan(fork githubclient.Repository) Verdict {
	return Verdict{Repo: fork, Useless: true, Reason: ReasonNoActivity}
}
