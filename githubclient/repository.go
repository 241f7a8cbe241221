package githubclient

import "time"

// Repository is the typed view of a GitHub repository that the rest of the
// tool works with. Listing endpoints do not include the parent; it is only
// populated by GetRepository.
type Repository struct {
	ID            int64
	Owner         string
	Name          string
	Fork          bool
	Parent        *Repository
	DefaultBranch string
	PushedAt      time.Time
	CreatedAt     time.Time
	Stargazers    int
}

func (r Repository) FullName() string {
	return r.Owner + "/" + r.Name
}

type ComparisonStatus string

const (
	StatusIdentical ComparisonStatus = "identical"
	StatusAhead     ComparisonStatus = "ahead"
	StatusBehind    ComparisonStatus = "behind"
	StatusDiverged  ComparisonStatus = "diverged"
)

// Comparison holds the commit counts between a fork's default branch and its
// parent's default branch.
type Comparison struct {
	AheadBy  int
	BehindBy int
	Status   ComparisonStatus
}

type apiAccount struct {
	Login string `json:"login"`
	Type  string `json:"type"`
}

type apiRepository struct {
	ID              int64          `json:"id"`
	Name            string         `json:"name"`
	Fork            bool           `json:"fork"`
	Owner           apiAccount     `json:"owner"`
	Parent          *apiRepository `json:"parent"`
	DefaultBranch   string         `json:"default_branch"`
	PushedAt        *time.Time     `json:"pushed_at"`
	CreatedAt       *time.Time     `json:"created_at"`
	StargazersCount int            `json:"stargazers_count"`
}

func (r apiRepository) toRepository() Repository {
	repo := Repository{
		ID:            r.ID,
		Owner:         r.Owner.Login,
		Name:          r.Name,
		Fork:          r.Fork,
		DefaultBranch: r.DefaultBranch,
		Stargazers:    r.StargazersCount,
	}

	if r.PushedAt != nil {
		repo.PushedAt = *r.PushedAt
	}

	if r.CreatedAt != nil {
		repo.CreatedAt = *r.CreatedAt
	}

	if r.Parent != nil {
		parent := r.Parent.toRepository()
		repo.Parent = &parent
	}

	return repo
}
