package stackup

import (
	"bufio"
	"context"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/outofforest/libexec"
	"github.com/outofforest/logger"
	"github.com/outofforest/parallel"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// command builds an external command running in dir, with env appended to
// the inherited environment.
func command(dir string, env []string, name string, args ...string) *exec.Cmd {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	if len(env) > 0 {
		cmd.Env = append(os.Environ(), env...)
	}
	return cmd
}

// runCommand executes cmd through libexec, forwarding its combined output
// line by line into the logger. The command dies with the context.
func runCommand(ctx context.Context, cmd *exec.Cmd) error {
	log := logger.Get(ctx).With(zap.String("command", cmd.Args[0]))
	log.Info("Running command", zap.String("cmdline", strings.Join(cmd.Args, " ")), zap.String("dir", cmd.Dir))

	r, w := io.Pipe()
	cmd.Stdout = w
	cmd.Stderr = w

	return parallel.Run(ctx, func(ctx context.Context, spawn parallel.SpawnFn) error {
		spawn("exec", parallel.Exit, func(ctx context.Context) error {
			err := libexec.Exec(ctx, cmd)
			_ = w.CloseWithError(err)
			if err != nil {
				return errors.Wrapf(err, "command `%s` failed", strings.Join(cmd.Args, " "))
			}
			return nil
		})
		spawn("output", parallel.Continue, func(ctx context.Context) error {
			scanner := bufio.NewScanner(r)
			scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
			for scanner.Scan() {
				log.Info(scanner.Text())
			}
			return nil
		})
		return nil
	})
}
