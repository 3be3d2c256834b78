package stackup

import (
	"context"

	"github.com/gookit/color"
	"github.com/outofforest/logger"
	"go.uber.org/zap"
)

// profileExports returns the lines persisted into the shell profile.
// PYTHONPATH is extended, not replaced, so existing entries survive.
func profileExports(cfg Config) []string {
	return []string{
		"export TVM_HOME=" + cfg.TVM.Path,
		"export PYTHONPATH=$TVM_HOME/python:$PYTHONPATH",
	}
}

func persistProfile(ctx context.Context, cfg Config, confirm func() (bool, error)) error {
	log := logger.Get(ctx)

	if confirm != nil {
		ok, err := confirm()
		if err != nil {
			return err
		}
		if !ok {
			log.Info("Profile left untouched", zap.String("profile", cfg.Profile))
			return nil
		}
	}

	added, err := ensureLines(cfg.Profile, profileExports(cfg))
	if err != nil {
		return err
	}
	if len(added) == 0 {
		log.Info("Profile already up to date", zap.String("profile", cfg.Profile))
		return nil
	}
	log.Info("Profile updated", zap.String("profile", cfg.Profile), zap.Strings("added", added))

	// A child process cannot reload the parent shell, tell the user instead.
	color.Warn.Printf("Run `source %s` to load the new environment\n", cfg.Profile)
	return nil
}
