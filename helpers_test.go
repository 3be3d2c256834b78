package stackup

import (
	"context"
	"os"
	"testing"

	"github.com/outofforest/logger"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithCancel(logger.WithLogger(context.Background(), zap.NewNop()))
	t.Cleanup(cancel)
	return ctx
}

func chdir(t *testing.T, dir string) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		_ = os.Chdir(wd)
	})
}
