package session

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/relgen/internal/domain/entities"
	"github.com/rios0rios0/relgen/internal/domain/repositories"
)

// Session owns one local git working copy. It is not safe for concurrent use.
type Session struct {
	repo      *git.Repository
	localPath string
}

var _ repositories.NotesRepository = (*Session)(nil)

// OpenOrClone opens the working copy at opts.LocalPath. When there is none and
// opts.AllowClone is set, the remote is cloned there first.
func OpenOrClone(
	ctx context.Context,
	opts repositories.NotesRepositoryOptions,
) (repositories.NotesRepository, error) {
	remoteURL := opts.Remote.RemoteURL

	repo, openErr := git.PlainOpen(opts.LocalPath)
	if openErr == nil {
		logger.Infof("Opened repository %s", opts.LocalPath)
		return &Session{repo: repo, localPath: opts.LocalPath}, nil
	}
	logger.Debugf("Failed to open %s: %v", opts.LocalPath, openErr)

	if !opts.AllowClone {
		return nil, fmt.Errorf(
			"%w at %s; use --clone if you would like to clone it from %s",
			entities.ErrRepositoryNotFound, opts.LocalPath, remoteURL,
		)
	}

	logger.Warnf("Repository %s not found, cloning %s to %s", opts.LocalPath, remoteURL, opts.LocalPath)
	//nolint:exhaustruct // Minimal CloneOptions initialization with required fields only
	cloneOpts := &git.CloneOptions{URL: remoteURL}
	if opts.Token != "" {
		cloneOpts.Auth = &http.BasicAuth{Username: opts.Username, Password: opts.Token}
	}

	repo, cloneErr := git.PlainCloneContext(ctx, opts.LocalPath, false, cloneOpts)
	if cloneErr != nil {
		return nil, fmt.Errorf("%w %s: %w", entities.ErrCloneFailed, remoteURL, cloneErr)
	}

	return &Session{repo: repo, localPath: opts.LocalPath}, nil
}

func (s *Session) Root() string { return s.localPath }

// CommitSingleFile stages relativePath and commits the index with the current
// HEAD commit as the only parent. Other entries already staged in the index are
// left alone and end up in the commit as well.
func (s *Session) CommitSingleFile(relativePath, message string) error {
	hash, err := s.commitSingleFile(filepath.ToSlash(relativePath), message)
	if err != nil {
		return fmt.Errorf("%w for %s: %w", entities.ErrCommitFailed, relativePath, err)
	}
	logger.Debugf("Committed %s as %s", relativePath, hash)
	return nil
}

func (s *Session) commitSingleFile(relativePath, message string) (plumbing.Hash, error) {
	worktree, err := s.repo.Worktree()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	if _, err = worktree.Add(relativePath); err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to stage: %w", err)
	}

	head, err := s.repo.Head()
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to resolve HEAD: %w", err)
	}
	parent, err := s.repo.CommitObject(head.Hash())
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("failed to read HEAD commit: %w", err)
	}

	signature, err := s.signature()
	if err != nil {
		return plumbing.ZeroHash, err
	}

	//nolint:exhaustruct // Minimal CommitOptions initialization with required fields only
	return worktree.Commit(message, &git.CommitOptions{
		Author:            signature,
		Committer:         signature,
		Parents:           []plumbing.Hash{parent.Hash},
		AllowEmptyCommits: true,
	})
}

// signature is the identity configured for the working copy, looking at the
// local, global and system git configuration in that order.
func (s *Session) signature() (*object.Signature, error) {
	cfg, err := s.repo.ConfigScoped(config.SystemScope)
	if err != nil {
		return nil, fmt.Errorf("failed to read git config: %w", err)
	}
	if cfg.User.Name == "" || cfg.User.Email == "" {
		return nil, errors.New("no git identity configured; set user.name and user.email")
	}
	return &object.Signature{
		Name:  cfg.User.Name,
		Email: cfg.User.Email,
		When:  time.Now(),
	}, nil
}
