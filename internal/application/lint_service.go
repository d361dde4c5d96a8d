package application

import (
	"context"
	"fmt"
	"runtime"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/abdidvp/commitlint/internal/domain/lint"
)

// LinterCache keeps compiled linters keyed by configuration.
type LinterCache interface {
	Get(cfg domain.Config) (*lint.Linter, bool)
	Add(cfg domain.Config, l *lint.Linter)
}

// Workspace locates the repository and configuration a lint runs against.
// An empty ConfigFile means discovery under Dir.
type Workspace struct {
	Dir        string
	ConfigFile string
}

// LintService orchestrates linting:
// load config → reuse or compile linter → fetch message(s) → lint.
type LintService struct {
	configLoader domain.ConfigLoader
	commits      domain.CommitSource
	cache        LinterCache
	log          *logrus.Logger
	workers      int
}

func NewLintService(
	configLoader domain.ConfigLoader,
	commits domain.CommitSource,
	cache LinterCache,
	log *logrus.Logger,
) *LintService {
	if log == nil {
		log = logrus.New()
	}
	return &LintService{
		configLoader: configLoader,
		commits:      commits,
		cache:        cache,
		log:          log,
		workers:      runtime.GOMAXPROCS(0),
	}
}

// EffectiveConfig returns the configuration a lint in ws would use.
func (s *LintService) EffectiveConfig(ws Workspace) (domain.Config, error) {
	if ws.ConfigFile != "" {
		cfg, err := s.configLoader.LoadFile(ws.ConfigFile)
		if err != nil {
			return domain.Config{}, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}
	cfg, err := s.configLoader.Load(ws.Dir)
	if err != nil {
		return domain.Config{}, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// LintMessage lints a raw message against the workspace configuration.
func (s *LintService) LintMessage(ws Workspace, raw string) (domain.LintResult, error) {
	l, err := s.linter(ws)
	if err != nil {
		return domain.LintResult{}, err
	}
	result := l.Lint(raw)
	s.logResult("message", result)
	return result, nil
}

// LintRevision lints the message of a single commit.
func (s *LintService) LintRevision(ws Workspace, rev string) (domain.CommitReport, error) {
	l, err := s.linter(ws)
	if err != nil {
		return domain.CommitReport{}, err
	}
	ref, err := s.commits.CommitMessage(ws.Dir, rev)
	if err != nil {
		return domain.CommitReport{}, fmt.Errorf("reading commit: %w", err)
	}
	result := l.Lint(ref.Message)
	s.logResult(ref.Hash, result)
	return domain.CommitReport{Hash: ref.Hash, Result: result}, nil
}

// LintRange lints every commit reachable from `to` but not from `from`,
// at most limit commits when limit > 0. Commits are linted in parallel;
// reports keep log order, newest first.
func (s *LintService) LintRange(ctx context.Context, ws Workspace, from, to string, limit int) ([]domain.CommitReport, error) {
	l, err := s.linter(ws)
	if err != nil {
		return nil, err
	}
	refs, err := s.commits.CommitRange(ws.Dir, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("reading commits: %w", err)
	}
	s.log.Debugf("linting %d commits", len(refs))

	reports := make([]domain.CommitReport, len(refs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(s.workers)
	for i, ref := range refs {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			result := l.Lint(ref.Message)
			s.logResult(ref.Hash, result)
			reports[i] = domain.CommitReport{Hash: ref.Hash, Result: result}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// linter returns the compiled linter for the workspace configuration,
// compiling and caching it on first use.
func (s *LintService) linter(ws Workspace) (*lint.Linter, error) {
	cfg, err := s.EffectiveConfig(ws)
	if err != nil {
		return nil, err
	}
	if l, ok := s.cache.Get(cfg); ok {
		s.log.Debug("compiled linter cache hit")
		return l, nil
	}
	s.log.Debug("compiled linter cache miss")

	l, err := lint.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("compiling config: %w", err)
	}
	s.cache.Add(cfg, l)
	return l, nil
}

func (s *LintService) logResult(subject string, result domain.LintResult) {
	switch {
	case result.Ignored:
		s.log.Debugf("%s: ignored", subject)
	case result.Valid:
		s.log.Debugf("%s: valid", subject)
	default:
		s.log.Debugf("%s: %d violation(s) %v", subject, len(result.Violations), result.Rules())
	}
}
