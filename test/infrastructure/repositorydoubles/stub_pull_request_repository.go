//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"iter"

	"github.com/rios0rios0/relgen/internal/domain/entities"
	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

// ListRequest records one ListMerged call.
type ListRequest struct {
	From  string
	To    string
	Label string
}

// StubPullRequestRepository implements repositories.PullRequestRepository
// with a fixed list of pull requests, optionally followed by an error.
type StubPullRequestRepository struct {
	PullRequests []entities.PullRequest
	Err          error

	// spy
	Requests []ListRequest
	Yielded  int
	Token    string
	Repo     entities.RepoIdentifier
}

var _ repositories.PullRequestRepository = (*StubPullRequestRepository)(nil)

func (s *StubPullRequestRepository) ListMerged(
	_ context.Context,
	from, to, label string,
) iter.Seq2[entities.PullRequest, error] {
	s.Requests = append(s.Requests, ListRequest{From: from, To: to, Label: label})
	return func(yield func(entities.PullRequest, error) bool) {
		for _, pr := range s.PullRequests {
			s.Yielded++
			if !yield(pr, nil) {
				return
			}
		}
		if s.Err != nil {
			yield(entities.PullRequest{}, s.Err)
		}
	}
}

// Factory returns a repositories.PullRequestRepositoryFactory that hands out the stub.
func (s *StubPullRequestRepository) Factory() repositories.PullRequestRepositoryFactory {
	return func(token string, repo entities.RepoIdentifier) repositories.PullRequestRepository {
		s.Token = token
		s.Repo = repo
		return s
	}
}
