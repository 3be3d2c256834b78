package stackup

import (
	"context"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
)

func fetchSubmodule(ctx context.Context, cfg Config) error {
	// .git is a directory in a plain checkout and a file in worktrees,
	// both mean the workspace is under git.
	if _, err := os.Stat(filepath.Join(cfg.Workspace, ".git")); err != nil {
		return errors.Wrapf(err, "workspace %s is not a git checkout", cfg.Workspace)
	}
	return runCommand(ctx, command(cfg.Workspace, nil, "git", "submodule", "update", "--init", "--recursive"))
}
