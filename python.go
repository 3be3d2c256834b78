package stackup

import (
	"context"
	"os"

	"github.com/pkg/errors"
)

func installPythonRequirements(ctx context.Context, cfg Config) error {
	if _, err := os.Stat(cfg.Requirements); err != nil {
		return errors.Wrapf(err, "requirements file %s is not readable", cfg.Requirements)
	}
	return runCommand(ctx, command(cfg.Workspace, nil, "pip", "install", "-r", cfg.Requirements))
}
