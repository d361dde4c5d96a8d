package hooks

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/abdidvp/commitlint/internal/domain"
	"github.com/sirupsen/logrus"
)

// HookName is the git hook commitlint manages.
const HookName = "commit-msg"

// Marker identifies hooks written by commitlint. Uninstall only removes
// files that carry it.
const Marker = "# managed by commitlint"

// HooksLocator finds the hooks directory of a repository.
type HooksLocator interface {
	HooksDir(projectPath string) (string, error)
}

// Manager implements domain.HookManager.
type Manager struct {
	locator HooksLocator
	log     *logrus.Logger
}

// New creates a Manager. A nil logger gets a default one.
func New(locator HooksLocator, log *logrus.Logger) *Manager {
	if log == nil {
		log = logrus.New()
	}
	return &Manager{locator: locator, log: log}
}

// Install writes the commit-msg hook and returns its path. An existing hook
// is replaced only when force is set.
func (m *Manager) Install(projectPath, binary string, force bool) (string, error) {
	dir, err := m.locator.HooksDir(projectPath)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, HookName)

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && !force:
		if bytes.Contains(existing, []byte(Marker)) {
			return path, fmt.Errorf("%s: %w", path, domain.ErrHookExists)
		}
		return path, fmt.Errorf("%s: %w (use --force to replace it)", path, domain.ErrForeignHook)
	case err != nil && !errors.Is(err, os.ErrNotExist):
		return "", fmt.Errorf("reading %s: %w", path, err)
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(Script(binary)), 0o755); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	// WriteFile keeps the mode of a file it overwrites.
	if err := os.Chmod(path, 0o755); err != nil {
		return "", fmt.Errorf("chmod %s: %w", path, err)
	}

	m.log.Debugf("installed %s hook at %s", HookName, path)
	return path, nil
}

// Uninstall removes the commit-msg hook if commitlint wrote it.
func (m *Manager) Uninstall(projectPath string) (string, error) {
	dir, err := m.locator.HooksDir(projectPath)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, HookName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return path, fmt.Errorf("no %s hook at %s: %w", HookName, path, err)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	if !bytes.Contains(data, []byte(Marker)) {
		return path, fmt.Errorf("%s: %w, leaving it in place", path, domain.ErrForeignHook)
	}
	if err := os.Remove(path); err != nil {
		return "", fmt.Errorf("removing %s: %w", path, err)
	}

	m.log.Debugf("removed %s hook at %s", HookName, path)
	return path, nil
}

// Script renders the hook body for binary. An empty binary means
// "commitlint" from PATH.
func Script(binary string) string {
	if binary == "" {
		binary = "commitlint"
	}
	return "#!/bin/sh\n" +
		Marker + "\n" +
		"exec " + shellQuote(binary) + " check --edit \"$1\"\n"
}

func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
