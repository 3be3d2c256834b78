package stackup

import (
	"context"
	"io"
	"os"
	"os/exec"

	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

func installToolchain(ctx context.Context, cfg Config) error {
	installed, err := packageInstalled(ctx, cfg.Toolchain.Package)
	if err != nil {
		return err
	}
	if installed {
		logger.Get(ctx).Info("Toolchain package already installed", zap.String("package", cfg.Toolchain.Package))
		return nil
	}

	args := []string{"apt-get", "install", "-y", cfg.Toolchain.Package}
	if os.Geteuid() != 0 {
		args = append([]string{"sudo"}, args...)
	}
	env := []string{"DEBIAN_FRONTEND=noninteractive"}
	return runCommand(ctx, command(cfg.Workspace, env, args[0], args[1:]...))
}

func packageInstalled(ctx context.Context, pkg string) (bool, error) {
	cmd := exec.CommandContext(ctx, "dpkg", "-s", pkg)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	err := cmd.Run()
	if err == nil {
		return true, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return false, nil
	}
	return false, errors.Wrapf(err, "querying status of package %s failed", pkg)
}
