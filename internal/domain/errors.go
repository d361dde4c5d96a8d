package domain

import "errors"

var (
	// ErrNotGitRepo is returned when a git operation targets a path outside any repository.
	ErrNotGitRepo = errors.New("not a git repository")
	// ErrHookExists is returned by Install when a commitlint hook is already present.
	ErrHookExists = errors.New("commit-msg hook already installed")
	// ErrForeignHook is returned when a commit-msg hook not written by commitlint is in the way.
	ErrForeignHook = errors.New("commit-msg hook was not installed by commitlint")
	// ErrConfigExists is returned when init would overwrite a configuration file.
	ErrConfigExists = errors.New("configuration file already exists")
)
