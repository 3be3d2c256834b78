package stackup

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/pkg/errors"
	"github.com/zclconf/go-cty/cty"
)

// DefaultConfigFile is looked up in the current directory when no explicit
// config path is given.
const DefaultConfigFile = "stackup.hcl"

// Config describes the whole setup sequence. The zero-config defaults
// reproduce the stock install: pip requirements from the workspace root,
// the llvm-16 toolchain package, the TVM submodule under 3rdparty/tvm built
// with LLVM and CUDA enabled, and exports appended to ~/.bashrc.
type Config struct {
	// Workspace is the repository root the sequence operates on.
	Workspace string
	// Requirements is the pip requirements file, resolved against Workspace.
	Requirements string
	// Profile is the shell profile receiving the export lines.
	Profile   string
	Toolchain ToolchainConfig
	TVM       TVMConfig
}

// ToolchainConfig selects the compiler toolchain package installed through
// the system package manager.
type ToolchainConfig struct {
	Package string
}

// TVMConfig controls the submodule checkout and its CMake build.
type TVMConfig struct {
	// Path to the TVM submodule, resolved against Workspace.
	Path string
	// LLVM and CUDA map to USE_LLVM / USE_CUDA in config.cmake.
	LLVM bool
	CUDA bool
	// Jobs is the make parallelism. Zero means runtime.NumCPU().
	Jobs int
}

type hclConfigFile struct {
	Workspace    *string       `hcl:"workspace,optional"`
	Requirements *string       `hcl:"requirements,optional"`
	Profile      *string       `hcl:"profile,optional"`
	Toolchain    *hclToolchain `hcl:"toolchain,block"`
	TVM          *hclTVM       `hcl:"tvm,block"`
}

type hclToolchain struct {
	Package *string `hcl:"package,optional"`
}

type hclTVM struct {
	Path *string `hcl:"path,optional"`
	LLVM *bool   `hcl:"llvm,optional"`
	CUDA *bool   `hcl:"cuda,optional"`
	Jobs *int    `hcl:"jobs,optional"`
}

// DefaultConfig returns the configuration matching the stock install
// sequence, before path normalization.
func DefaultConfig() Config {
	return Config{
		Workspace:    ".",
		Requirements: "requirements.txt",
		Profile:      "~/.bashrc",
		Toolchain: ToolchainConfig{
			Package: "llvm-16",
		},
		TVM: TVMConfig{
			Path: "3rdparty/tvm",
			LLVM: true,
			CUDA: true,
		},
	}
}

// LoadConfig reads the HCL configuration at path and merges it over the
// defaults. An empty path means DefaultConfigFile if it exists, defaults
// otherwise. All paths in the returned config are absolute and Jobs is
// resolved to a concrete count.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		if _, err := os.Stat(DefaultConfigFile); err != nil {
			return normalizeConfig(cfg)
		}
		path = DefaultConfigFile
	}

	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "parsing config file %s failed", path)
	}

	evalCtx, err := configEvalContext()
	if err != nil {
		return Config{}, err
	}

	var raw hclConfigFile
	if diags := gohcl.DecodeBody(file.Body, evalCtx, &raw); diags.HasErrors() {
		return Config{}, errors.Wrapf(diags, "decoding config file %s failed", path)
	}

	if raw.Workspace != nil {
		cfg.Workspace = *raw.Workspace
	}
	if raw.Requirements != nil {
		cfg.Requirements = *raw.Requirements
	}
	if raw.Profile != nil {
		cfg.Profile = *raw.Profile
	}
	if raw.Toolchain != nil && raw.Toolchain.Package != nil {
		cfg.Toolchain.Package = *raw.Toolchain.Package
	}
	if raw.TVM != nil {
		if raw.TVM.Path != nil {
			cfg.TVM.Path = *raw.TVM.Path
		}
		if raw.TVM.LLVM != nil {
			cfg.TVM.LLVM = *raw.TVM.LLVM
		}
		if raw.TVM.CUDA != nil {
			cfg.TVM.CUDA = *raw.TVM.CUDA
		}
		if raw.TVM.Jobs != nil {
			cfg.TVM.Jobs = *raw.TVM.Jobs
		}
	}

	return normalizeConfig(cfg)
}

// configEvalContext exposes host facts to expressions in the config file,
// so it may say e.g. `profile = "${home}/.zshrc"` or `jobs = nproc - 2`.
func configEvalContext() (*hcl.EvalContext, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, errors.Wrap(err, "resolving home directory failed")
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"home":  cty.StringVal(home),
			"nproc": cty.NumberIntVal(int64(runtime.NumCPU())),
		},
	}, nil
}

func normalizeConfig(cfg Config) (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, errors.Wrap(err, "resolving home directory failed")
	}

	if cfg.Toolchain.Package == "" {
		return Config{}, errors.New("toolchain package must not be empty")
	}
	if cfg.TVM.Path == "" {
		return Config{}, errors.New("tvm path must not be empty")
	}

	cfg.Workspace = expandHome(cfg.Workspace, home)
	cfg.Workspace, err = filepath.Abs(cfg.Workspace)
	if err != nil {
		return Config{}, errors.Wrap(err, "resolving workspace path failed")
	}

	cfg.Requirements = resolvePath(cfg.Requirements, cfg.Workspace, home)
	cfg.Profile = resolvePath(cfg.Profile, cfg.Workspace, home)
	cfg.TVM.Path = resolvePath(cfg.TVM.Path, cfg.Workspace, home)

	if cfg.TVM.Jobs <= 0 {
		cfg.TVM.Jobs = runtime.NumCPU()
	}

	return cfg, nil
}

func resolvePath(path, workspace, home string) string {
	path = expandHome(path, home)
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(workspace, path)
}

func expandHome(path, home string) string {
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}
