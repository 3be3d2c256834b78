package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"

	"github.com/outofforest/logger"
	"github.com/outofforest/run"
	"github.com/pkg/errors"
	"golang.org/x/term"

	"github.com/bitwrench/stackup"
)

func main() {
	run.Tool("stackup", nil, func(ctx context.Context) error {
		var (
			configPath string
			from       string
			skip       []string
			yes        bool
		)
		flags := logger.Flags(logger.ToolDefaultConfig, "stackup")
		flags.StringVarP(&configPath, "config", "c", "", "Path to the configuration file, defaults to "+stackup.DefaultConfigFile+" if present")
		flags.StringVar(&from, "from", "", "Resume the sequence at the named step")
		flags.StringArrayVar(&skip, "skip", nil, "Skip the named step, may be repeated")
		flags.BoolVarP(&yes, "yes", "y", false, "Update the shell profile without asking")
		if err := flags.Parse(os.Args[1:]); err != nil {
			return err
		}

		cfg, err := stackup.LoadConfig(configPath)
		if err != nil {
			return err
		}

		opts := stackup.RunOptions{From: from, Skip: skip}
		if !yes && term.IsTerminal(syscall.Stdin) {
			opts.ConfirmProfile = confirmProfile(cfg.Profile)
		}
		return stackup.Run(ctx, cfg, opts)
	})
}

func confirmProfile(profile string) func() (bool, error) {
	return func() (bool, error) {
		fmt.Printf("Append environment exports to %s? [y/N]: ", profile)
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return false, errors.Wrap(err, "reading confirmation failed")
		}
		answer := strings.ToLower(strings.TrimSpace(line))
		return answer == "y" || answer == "yes", nil
	}
}
