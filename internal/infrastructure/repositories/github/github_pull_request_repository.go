package github

import (
	"context"
	"fmt"
	"iter"
	"regexp"
	"strconv"
	"strings"
	"time"

	gh "github.com/google/go-github/v66/github"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/relgen/internal/domain/entities"
	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

const perPage = 100

// prReferencePattern finds the "(#1234)" suffix GitHub (and bors) append to
// the first line of merge and squash commits.
var prReferencePattern = regexp.MustCompile(`\(#(\d+)\)`)

// GitHubPullRequestRepository implements repositories.PullRequestRepository for GitHub.
type GitHubPullRequestRepository struct {
	client *gh.Client
	repo   entities.RepoIdentifier
}

// NewPullRequestRepository creates a GitHub pull request source authenticated with token.
func NewPullRequestRepository(token string, repo entities.RepoIdentifier) repositories.PullRequestRepository {
	return NewPullRequestRepositoryWithClient(gh.NewClient(nil).WithAuthToken(token), repo)
}

// NewPullRequestRepositoryWithClient creates a pull request source on top of an existing client.
func NewPullRequestRepositoryWithClient(
	client *gh.Client,
	repo entities.RepoIdentifier,
) *GitHubPullRequestRepository {
	return &GitHubPullRequestRepository{client: client, repo: repo}
}

// ListMerged walks the commits between from and to, page by page, and yields
// the pull request each commit was merged from. Nothing is requested before
// the first element is pulled.
func (p *GitHubPullRequestRepository) ListMerged(
	ctx context.Context,
	from, to, label string,
) iter.Seq2[entities.PullRequest, error] {
	return func(yield func(entities.PullRequest, error) bool) {
		seen := make(map[int]bool)
		opts := &gh.ListOptions{PerPage: perPage}

		for {
			comparison, resp, err := p.client.Repositories.CompareCommits(
				ctx, p.repo.Owner(), p.repo.Name(), from, to, opts,
			)
			if err != nil {
				yield(entities.PullRequest{}, fmt.Errorf("failed to compare %s...%s: %w", from, to, err))
				return
			}

			for _, commit := range comparison.Commits {
				number, ok := pullRequestNumber(commit.GetCommit().GetMessage())
				if !ok || seen[number] {
					continue
				}
				seen[number] = true

				pr, getErr := p.getPullRequest(ctx, number)
				if getErr != nil {
					yield(entities.PullRequest{}, getErr)
					return
				}
				if label != "" && !pr.HasLabel(label) {
					logger.Debugf("Skipping #%d: no %q label", number, label)
					continue
				}
				if !yield(pr, nil) {
					return
				}
			}

			if resp.NextPage == 0 {
				return
			}
			opts.Page = resp.NextPage
		}
	}
}

func (p *GitHubPullRequestRepository) getPullRequest(
	ctx context.Context,
	number int,
) (entities.PullRequest, error) {
	issue, _, err := p.client.Issues.Get(ctx, p.repo.Owner(), p.repo.Name(), number)
	if err != nil {
		return entities.PullRequest{}, fmt.Errorf("failed to get pull request #%d: %w", number, err)
	}

	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		labels = append(labels, l.GetName())
	}

	closedAt := ""
	if issue.ClosedAt != nil {
		closedAt = issue.GetClosedAt().UTC().Format(time.RFC3339)
	}

	return entities.PullRequest{
		Number:   issue.GetNumber(),
		Title:    issue.GetTitle(),
		Body:     issue.Body,
		ClosedAt: closedAt,
		User: entities.User{
			Login: issue.GetUser().GetLogin(),
			ID:    issue.GetUser().GetID(),
		},
		Labels: labels,
	}, nil
}

// pullRequestNumber extracts the last "(#N)" reference of the commit subject.
func pullRequestNumber(message string) (int, bool) {
	subject, _, _ := strings.Cut(message, "\n")
	matches := prReferencePattern.FindAllStringSubmatch(subject, -1)
	if len(matches) == 0 {
		return 0, false
	}
	number, err := strconv.Atoi(matches[len(matches)-1][1])
	if err != nil {
		return 0, false
	}
	return number, true
}
