package entities

import "errors"

// Validation errors: the user supplied a malformed identifier or label.
var (
	ErrInvalidRepoIdentifier = errors.New("invalid github repository name")
	ErrInvalidLabel          = errors.New("invalid label")
)

// Path errors: the environment cannot resolve a configured path.
var (
	ErrMissingBaseDir         = errors.New("relative path given without a base directory")
	ErrCanonicalizationFailed = errors.New("failed to canonicalize path")
)

// Settings errors: a configuration value or credential is missing.
var (
	ErrMissingRequiredKey = errors.New("missing required setting")
	ErrMissingCredentials = errors.New("missing credentials")
)

// Repository errors: the local working copy could not be opened, cloned or committed to.
var (
	ErrRepositoryNotFound = errors.New("no git repository found")
	ErrCloneFailed        = errors.New("failed to clone")
	ErrCommitFailed       = errors.New("failed to create commit")
)

// Pipeline errors: a precondition of the note generation does not hold or the note cannot be written.
var (
	ErrReleaseFolderMissing = errors.New("release folder not found")
	ErrMissingBody          = errors.New("pull request has no body")
	ErrWriteFailed          = errors.New("failed to write migration note")
)
