package gitinfo

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	"github.com/go-git/go-git/v5/storage/filesystem"
)

// Adapter implements domain.CommitSource using go-git.
type Adapter struct{}

func New() *Adapter {
	return &Adapter{}
}

func (a *Adapter) IsGitRepo(projectPath string) bool {
	_, err := open(projectPath)
	return err == nil
}

// CommitMessage resolves rev (a hash, branch, tag or expression such as
// HEAD~2) and returns the commit's full message.
func (a *Adapter) CommitMessage(projectPath, rev string) (domain.CommitRef, error) {
	repo, err := open(projectPath)
	if err != nil {
		return domain.CommitRef{}, err
	}
	c, err := resolve(repo, rev)
	if err != nil {
		return domain.CommitRef{}, err
	}
	return domain.CommitRef{Hash: c.Hash.String(), Message: c.Message}, nil
}

// CommitRange returns the commits reachable from `to` but not from `from`,
// newest first. `to` defaults to HEAD; limit <= 0 means unlimited.
func (a *Adapter) CommitRange(projectPath, from, to string, limit int) ([]domain.CommitRef, error) {
	repo, err := open(projectPath)
	if err != nil {
		return nil, err
	}
	if to == "" {
		to = "HEAD"
	}
	tip, err := resolve(repo, to)
	if err != nil {
		return nil, err
	}

	excluded := map[plumbing.Hash]bool{}
	if from != "" {
		base, err := resolve(repo, from)
		if err != nil {
			return nil, err
		}
		if excluded, err = ancestors(repo, base.Hash); err != nil {
			return nil, err
		}
	}

	iter, err := repo.Log(&git.LogOptions{From: tip.Hash})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}
	defer iter.Close()

	var refs []domain.CommitRef
	err = iter.ForEach(func(c *object.Commit) error {
		if excluded[c.Hash] {
			return nil
		}
		refs = append(refs, domain.CommitRef{Hash: c.Hash.String(), Message: c.Message})
		if limit > 0 && len(refs) >= limit {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}
	return refs, nil
}

// HooksDir returns the directory git runs hooks from, honouring
// core.hooksPath. A relative hooksPath is resolved against the worktree root.
func (a *Adapter) HooksDir(projectPath string) (string, error) {
	repo, err := open(projectPath)
	if err != nil {
		return "", err
	}

	cfg, err := repo.Config()
	if err != nil {
		return "", fmt.Errorf("reading git config: %w", err)
	}
	if custom := cfg.Raw.Section("core").Option("hooksPath"); custom != "" {
		if filepath.IsAbs(custom) {
			return custom, nil
		}
		wt, err := repo.Worktree()
		if err != nil {
			return "", fmt.Errorf("resolving core.hooksPath %q: %w", custom, err)
		}
		return filepath.Join(wt.Filesystem.Root(), custom), nil
	}

	fs, ok := repo.Storer.(*filesystem.Storage)
	if !ok {
		return "", fmt.Errorf("%s: repository has no git directory", projectPath)
	}
	return filepath.Join(fs.Filesystem().Root(), "hooks"), nil
}

func open(projectPath string) (*git.Repository, error) {
	repo, err := git.PlainOpenWithOptions(projectPath, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%s: %w", projectPath, domain.ErrNotGitRepo)
		}
		return nil, fmt.Errorf("opening git repo: %w", err)
	}
	return repo, nil
}

func resolve(repo *git.Repository, rev string) (*object.Commit, error) {
	hash, err := repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return nil, fmt.Errorf("resolving %q: %w", rev, err)
	}
	c, err := repo.CommitObject(*hash)
	if err != nil {
		return nil, fmt.Errorf("reading commit %s: %w", hash, err)
	}
	return c, nil
}

func ancestors(repo *git.Repository, from plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := repo.Log(&git.LogOptions{From: from})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", from, err)
	}
	defer iter.Close()

	seen := map[plumbing.Hash]bool{}
	err = iter.ForEach(func(c *object.Commit) error {
		seen[c.Hash] = true
		return nil
	})
	return seen, err
}
