package scan

import "disfork/githubclient"

type Reason int

const (
	ReasonUnknown Reason = iota
	ReasonNoCommitsAhead
	ReasonNoActivity
	ReasonHasStarsOrActivity
	ReasonHasCommitsAhead
)

func (r Reason) String() string {
	switch r {
	case ReasonNoCommitsAhead:
		return "no-commits-ahead"
	case ReasonNoActivity:
		return "no-activity"
	case ReasonHasStarsOrActivity:
		return "has-stars-or-activity"
	case ReasonHasCommitsAhead:
		return "has-commits-ahead"
	}

	return "unknown"
}

// Verdict is the per-fork outcome of a scan. When the classification unit
// failed after local recovery, Err is set, Useless stays false, and the fork
// is never offered for deletion.
type Verdict struct {
	Repo    githubclient.Repository
	Useless bool
	Reason  Reason
	Err     error
}
