package stackup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)

	wd, err := os.Getwd()
	require.NoError(t, err)
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, wd, cfg.Workspace)
	require.Equal(t, filepath.Join(wd, "requirements.txt"), cfg.Requirements)
	require.Equal(t, filepath.Join(home, ".bashrc"), cfg.Profile)
	require.Equal(t, "llvm-16", cfg.Toolchain.Package)
	require.Equal(t, filepath.Join(wd, "3rdparty", "tvm"), cfg.TVM.Path)
	require.True(t, cfg.TVM.LLVM)
	require.True(t, cfg.TVM.CUDA)
	require.Equal(t, runtime.NumCPU(), cfg.TVM.Jobs)
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "setup.hcl")
	content := fmt.Sprintf(`
workspace    = %q
requirements = "deps/requirements.txt"
profile      = "${home}/.profile"

toolchain {
  package = "llvm-17"
}

tvm {
  path = "vendor/tvm"
  cuda = false
  jobs = nproc
}
`, dir)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	home, err := os.UserHomeDir()
	require.NoError(t, err)

	require.Equal(t, dir, cfg.Workspace)
	require.Equal(t, filepath.Join(dir, "deps", "requirements.txt"), cfg.Requirements)
	require.Equal(t, filepath.Join(home, ".profile"), cfg.Profile)
	require.Equal(t, "llvm-17", cfg.Toolchain.Package)
	require.Equal(t, filepath.Join(dir, "vendor", "tvm"), cfg.TVM.Path)
	require.True(t, cfg.TVM.LLVM)
	require.False(t, cfg.TVM.CUDA)
	require.Equal(t, runtime.NumCPU(), cfg.TVM.Jobs)
}

func TestLoadConfigUnknownAttribute(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.hcl")
	require.NoError(t, os.WriteFile(path, []byte("bogus = true\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigEmptyToolchainPackage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "setup.hcl")
	require.NoError(t, os.WriteFile(path, []byte("toolchain {\n  package = \"\"\n}\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}
