package domain

// ConfigLoader finds and decodes a commitlint configuration.
type ConfigLoader interface {
	// Load discovers the configuration file under projectPath. Returns
	// DefaultConfig when none exists.
	Load(projectPath string) (Config, error)
	// LoadFile decodes an explicit configuration file.
	LoadFile(path string) (Config, error)
}

// CommitSource reads commit messages from a repository.
type CommitSource interface {
	IsGitRepo(projectPath string) bool
	CommitMessage(projectPath, rev string) (CommitRef, error)
	// CommitRange walks history from `to` back to (excluding) `from`, newest
	// first. An empty `from` walks to the root; limit <= 0 means unlimited.
	CommitRange(projectPath, from, to string, limit int) ([]CommitRef, error)
}

// HookManager installs the commit-msg hook into a repository.
type HookManager interface {
	Install(projectPath, binary string, force bool) (string, error)
	Uninstall(projectPath string) (string, error)
}
