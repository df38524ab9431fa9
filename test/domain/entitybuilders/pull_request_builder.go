//go:build integration || unit || test

package entitybuilders //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	testkit "github.com/rios0rios0/testkit/pkg/test"

	"github.com/rios0rios0/relgen/internal/domain/entities"
)

const defaultBody = "## Migration Guide\n\nRename `foo` to `bar`.\n"

// PullRequestBuilder helps create test pull requests with a fluent interface.
type PullRequestBuilder struct {
	*testkit.BaseBuilder
	number   int
	title    string
	body     *string
	closedAt string
	login    string
	userID   int64
	labels   []string
}

// NewPullRequestBuilder creates a new pull request builder with sensible defaults.
func NewPullRequestBuilder() *PullRequestBuilder {
	body := defaultBody
	return &PullRequestBuilder{
		BaseBuilder: testkit.NewBaseBuilder(),
		number:      1234,
		title:       "Fix X",
		body:        &body,
		closedAt:    "2024-01-01T00:00:00Z",
		login:       "Octo-Cat",
		userID:      42,
	}
}

// WithNumber sets the pull request number.
func (b *PullRequestBuilder) WithNumber(number int) *PullRequestBuilder {
	b.number = number
	return b
}

// WithTitle sets the title.
func (b *PullRequestBuilder) WithTitle(title string) *PullRequestBuilder {
	b.title = title
	return b
}

// WithBody sets the description.
func (b *PullRequestBuilder) WithBody(body string) *PullRequestBuilder {
	b.body = &body
	return b
}

// WithoutBody removes the description.
func (b *PullRequestBuilder) WithoutBody() *PullRequestBuilder {
	b.body = nil
	return b
}

// WithClosedAt sets the closing timestamp.
func (b *PullRequestBuilder) WithClosedAt(closedAt string) *PullRequestBuilder {
	b.closedAt = closedAt
	return b
}

// WithUser sets the author.
func (b *PullRequestBuilder) WithUser(login string, id int64) *PullRequestBuilder {
	b.login = login
	b.userID = id
	return b
}

// WithLabels sets the labels.
func (b *PullRequestBuilder) WithLabels(labels ...string) *PullRequestBuilder {
	b.labels = labels
	return b
}

// Build creates the pull request (satisfies testkit.Builder interface).
func (b *PullRequestBuilder) Build() interface{} {
	return b.BuildPullRequest()
}

// BuildPullRequest creates the pull request with a concrete return type.
func (b *PullRequestBuilder) BuildPullRequest() entities.PullRequest {
	return entities.PullRequest{
		Number:   b.number,
		Title:    b.title,
		Body:     b.body,
		ClosedAt: b.closedAt,
		User:     entities.User{Login: b.login, ID: b.userID},
		Labels:   append([]string(nil), b.labels...),
	}
}

// Reset clears the builder state, allowing it to be reused.
func (b *PullRequestBuilder) Reset() testkit.Builder {
	b.BaseBuilder.Reset()
	fresh := NewPullRequestBuilder()
	b.number = fresh.number
	b.title = fresh.title
	b.body = fresh.body
	b.closedAt = fresh.closedAt
	b.login = fresh.login
	b.userID = fresh.userID
	b.labels = nil
	return b
}

// Clone creates a deep copy of the PullRequestBuilder.
func (b *PullRequestBuilder) Clone() testkit.Builder {
	var body *string
	if b.body != nil {
		copied := *b.body
		body = &copied
	}
	return &PullRequestBuilder{
		BaseBuilder: b.BaseBuilder.Clone().(*testkit.BaseBuilder),
		number:      b.number,
		title:       b.title,
		body:        body,
		closedAt:    b.closedAt,
		login:       b.login,
		userID:      b.userID,
		labels:      append([]string(nil), b.labels...),
	}
}
