package stackup

import (
	"context"
	"time"

	"github.com/gookit/color"
	"github.com/outofforest/logger"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Step is a single stage of the setup sequence.
type Step struct {
	Name        string
	Description string
	Fn          func(ctx context.Context) error
}

// RunOptions selects which part of the sequence runs and how the profile
// step asks for consent.
type RunOptions struct {
	// From resumes the sequence at the named step.
	From string
	// Skip omits the named steps.
	Skip []string
	// ConfirmProfile, when set, is asked before the shell profile is
	// touched. A negative answer leaves the profile alone without failing
	// the run.
	ConfirmProfile func() (bool, error)
}

// Plan returns the full setup sequence for cfg, in execution order.
func Plan(cfg Config, opts RunOptions) []Step {
	return []Step{
		{
			Name:        "python",
			Description: "Install Python requirements",
			Fn: func(ctx context.Context) error {
				return installPythonRequirements(ctx, cfg)
			},
		},
		{
			Name:        "toolchain",
			Description: "Install the " + cfg.Toolchain.Package + " toolchain package",
			Fn: func(ctx context.Context) error {
				return installToolchain(ctx, cfg)
			},
		},
		{
			Name:        "submodule",
			Description: "Fetch the TVM source submodule",
			Fn: func(ctx context.Context) error {
				return fetchSubmodule(ctx, cfg)
			},
		},
		{
			Name:        "configure",
			Description: "Stage the TVM build configuration",
			Fn: func(ctx context.Context) error {
				return stageBuildConfig(ctx, cfg)
			},
		},
		{
			Name:        "compile",
			Description: "Configure and compile TVM",
			Fn: func(ctx context.Context) error {
				return compileTVM(ctx, cfg)
			},
		},
		{
			Name:        "profile",
			Description: "Persist environment exports",
			Fn: func(ctx context.Context) error {
				return persistProfile(ctx, cfg, opts.ConfirmProfile)
			},
		},
	}
}

// Run executes the setup sequence for cfg, stopping at the first failed
// step.
func Run(ctx context.Context, cfg Config, opts RunOptions) error {
	steps, err := selectSteps(Plan(cfg, opts), opts)
	if err != nil {
		return err
	}
	return runSteps(ctx, steps)
}

func selectSteps(steps []Step, opts RunOptions) ([]Step, error) {
	known := map[string]bool{}
	for _, step := range steps {
		known[step.Name] = true
	}
	if opts.From != "" && !known[opts.From] {
		return nil, errors.Errorf("unknown step: %s", opts.From)
	}
	skip := map[string]bool{}
	for _, name := range opts.Skip {
		if !known[name] {
			return nil, errors.Errorf("unknown step: %s", name)
		}
		skip[name] = true
	}

	out := make([]Step, 0, len(steps))
	started := opts.From == ""
	for _, step := range steps {
		if step.Name == opts.From {
			started = true
		}
		if !started || skip[step.Name] {
			continue
		}
		out = append(out, step)
	}
	return out, nil
}

func runSteps(ctx context.Context, steps []Step) error {
	log := logger.Get(ctx)
	for i, step := range steps {
		color.Info.Printf("==> [%d/%d] %s\n", i+1, len(steps), step.Description)
		log.Info("Step started", zap.String("step", step.Name))
		started := time.Now()
		if err := step.Fn(ctx); err != nil {
			color.Danger.Printf("Step %s failed: %v\n", step.Name, err)
			return errors.Wrapf(err, "step %s failed", step.Name)
		}
		log.Info("Step finished", zap.String("step", step.Name), zap.Duration("took", time.Since(started)))
	}
	color.Success.Println("Environment ready")
	return nil
}
