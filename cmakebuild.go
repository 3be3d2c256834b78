package stackup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// stageBuildConfig prepares <tvm>/build: creates the directory, seeds
// config.cmake from the source tree and appends the USE_LLVM / USE_CUDA
// switches. Re-running never duplicates the appended lines.
func stageBuildConfig(ctx context.Context, cfg Config) error {
	log := logger.Get(ctx)

	dir := buildDir(cfg)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.Wrapf(err, "creating build directory %s failed", dir)
	}

	dst := filepath.Join(dir, "config.cmake")
	if _, err := os.Stat(dst); err != nil {
		src := filepath.Join(cfg.TVM.Path, "cmake", "config.cmake")
		if err := copyFile(dst, src); err != nil {
			return err
		}
		log.Info("Seeded build configuration", zap.String("from", src), zap.String("to", dst))
	}

	added, err := ensureLines(dst, []string{
		cmakeOption("USE_LLVM", cfg.TVM.LLVM),
		cmakeOption("USE_CUDA", cfg.TVM.CUDA),
	})
	if err != nil {
		return err
	}
	for _, line := range added {
		log.Info("Appended build option", zap.String("option", line))
	}
	return nil
}

func compileTVM(ctx context.Context, cfg Config) error {
	dir := buildDir(cfg)
	if err := runCommand(ctx, command(dir, nil, "cmake", "..")); err != nil {
		return err
	}
	return runCommand(ctx, command(dir, nil, "make", fmt.Sprintf("-j%d", cfg.TVM.Jobs)))
}

func buildDir(cfg Config) string {
	return filepath.Join(cfg.TVM.Path, "build")
}

func cmakeOption(name string, on bool) string {
	value := "OFF"
	if on {
		value = "ON"
	}
	return "set(" + name + " " + value + ")"
}

func copyFile(dst, src string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return errors.Wrapf(err, "reading %s failed", src)
	}
	return errors.Wrapf(os.WriteFile(dst, data, 0o644), "writing %s failed", dst)
}
