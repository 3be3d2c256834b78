package stackup

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func namedSteps(names ...string) []Step {
	steps := make([]Step, 0, len(names))
	for _, name := range names {
		steps = append(steps, Step{Name: name, Fn: func(ctx context.Context) error {
			return nil
		}})
	}
	return steps
}

func stepNames(steps []Step) []string {
	names := make([]string, 0, len(steps))
	for _, step := range steps {
		names = append(names, step.Name)
	}
	return names
}

func TestPlanOrder(t *testing.T) {
	steps := Plan(DefaultConfig(), RunOptions{})
	require.Equal(t, []string{"python", "toolchain", "submodule", "configure", "compile", "profile"}, stepNames(steps))
}

func TestSelectSteps(t *testing.T) {
	all := namedSteps("a", "b", "c", "d")

	selected, err := selectSteps(all, RunOptions{})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "c", "d"}, stepNames(selected))

	selected, err = selectSteps(all, RunOptions{From: "b"})
	require.NoError(t, err)
	require.Equal(t, []string{"b", "c", "d"}, stepNames(selected))

	selected, err = selectSteps(all, RunOptions{Skip: []string{"c"}})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b", "d"}, stepNames(selected))

	selected, err = selectSteps(all, RunOptions{From: "b", Skip: []string{"b"}})
	require.NoError(t, err)
	require.Equal(t, []string{"c", "d"}, stepNames(selected))
}

func TestSelectStepsUnknownNames(t *testing.T) {
	all := namedSteps("a", "b")

	_, err := selectSteps(all, RunOptions{From: "x"})
	require.Error(t, err)

	_, err = selectSteps(all, RunOptions{Skip: []string{"a", "x"}})
	require.Error(t, err)
}

func TestRunStepsOrder(t *testing.T) {
	var ran []string
	steps := []Step{}
	for _, name := range []string{"a", "b", "c"} {
		name := name
		steps = append(steps, Step{Name: name, Fn: func(ctx context.Context) error {
			ran = append(ran, name)
			return nil
		}})
	}

	require.NoError(t, runSteps(testCtx(t), steps))
	require.Equal(t, []string{"a", "b", "c"}, ran)
}

func TestRunStepsStopsOnFailure(t *testing.T) {
	var ran []string
	steps := []Step{
		{Name: "a", Fn: func(ctx context.Context) error {
			ran = append(ran, "a")
			return nil
		}},
		{Name: "b", Fn: func(ctx context.Context) error {
			ran = append(ran, "b")
			return errors.New("boom")
		}},
		{Name: "c", Fn: func(ctx context.Context) error {
			ran = append(ran, "c")
			return nil
		}},
	}

	err := runSteps(testCtx(t), steps)
	require.Error(t, err)
	require.Contains(t, err.Error(), "step b failed")
	require.Equal(t, []string{"a", "b"}, ran)
}

func TestRunRejectsUnknownStep(t *testing.T) {
	require.Error(t, Run(testCtx(t), DefaultConfig(), RunOptions{From: "bogus"}))
}
