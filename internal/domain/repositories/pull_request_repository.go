package repositories

import (
	"context"
	"iter"

	"github.com/rios0rios0/relgen/internal/domain/entities"
)

// PullRequestRepository abstracts the hosting service the merged pull requests come from.
type PullRequestRepository interface {
	// ListMerged lazily yields the pull requests merged between the from and
	// to refs, in merge order. When label is not empty only pull requests
	// carrying it are yielded. The sequence can be consumed once; an error is
	// yielded as the last element.
	ListMerged(ctx context.Context, from, to, label string) iter.Seq2[entities.PullRequest, error]
}

// PullRequestRepositoryFactory builds a PullRequestRepository for a source repository.
type PullRequestRepositoryFactory func(token string, repo entities.RepoIdentifier) PullRequestRepository
