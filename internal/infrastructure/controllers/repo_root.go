package controllers

import (
	"os"
	"path/filepath"

	"github.com/go-git/go-git/v5"
	logger "github.com/sirupsen/logrus"
)

// resolveRepoRoot returns the explicit root when given, otherwise the work
// tree root of the Git repository containing the current directory, and
// finally the current directory itself.
func resolveRepoRoot(explicit string) string {
	if explicit != "" {
		if abs, err := filepath.Abs(explicit); err == nil {
			return abs
		}
		return explicit
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}

	//nolint:exhaustruct // only repository detection is needed
	repo, err := git.PlainOpenWithOptions(cwd, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		logger.Debugf("No Git repository found from %s, using it as repository root", cwd)
		return cwd
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return cwd
	}
	return worktree.Filesystem.Root()
}
