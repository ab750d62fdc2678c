// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/pngme/pngme/internal/config"
	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/types"

	"github.com/charmbracelet/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type (
	// App wires CLI services and shared dependencies. It is the composition root for
	// the CLI layer: every Cobra handler receives an App and delegates file work to
	// the ChunkService built for the current invocation.
	App struct {
		Config    ConfigProvider
		Fs        afero.Fs
		newChunks ChunkServiceFactory
		stdout    io.Writer
		stderr    io.Writer

		// Per-invocation state, populated by the root PersistentPreRunE.
		flags  rootFlags
		cfg    *config.Config
		logger *log.Logger
		chunks ChunkService
	}

	// Dependencies defines the injection points for building an App. Nil fields are
	// replaced with production defaults by NewApp.
	Dependencies struct {
		Config ConfigProvider
		Fs     afero.Fs
		Chunks ChunkServiceFactory
		Stdout io.Writer
		Stderr io.Writer
	}

	// ConfigProvider loads configuration using explicit options.
	ConfigProvider interface {
		Load(ctx context.Context, opts config.LoadOptions) (*config.Config, error)
	}

	// ChunkService performs the file operations behind each command.
	ChunkService interface {
		Encode(ctx context.Context, req secret.EncodeRequest) (secret.EncodeResult, error)
		Decode(ctx context.Context, req secret.DecodeRequest) (secret.DecodeResult, error)
		Remove(ctx context.Context, req secret.RemoveRequest) (secret.RemoveResult, error)
		Print(ctx context.Context, paths []types.FilesystemPath) ([]secret.Inspection, error)
	}

	// ChunkServiceFactory builds a ChunkService once configuration is known.
	ChunkServiceFactory func(fs afero.Fs, logger *log.Logger, opts secret.Options) ChunkService

	rootFlags struct {
		verbose bool
		cfgFile string
	}
)

// NewApp creates an App with defaults for omitted dependencies.
func NewApp(deps Dependencies) (*App, error) {
	if deps.Stdout == nil {
		deps.Stdout = os.Stdout
	}
	if deps.Stderr == nil {
		deps.Stderr = os.Stderr
	}
	if deps.Config == nil {
		deps.Config = config.NewProvider()
	}
	if deps.Fs == nil {
		deps.Fs = afero.NewOsFs()
	}
	if deps.Chunks == nil {
		deps.Chunks = defaultChunkService
	}

	return &App{
		Config:    deps.Config,
		Fs:        deps.Fs,
		newChunks: deps.Chunks,
		stdout:    deps.Stdout,
		stderr:    deps.Stderr,
	}, nil
}

func defaultChunkService(fs afero.Fs, logger *log.Logger, opts secret.Options) ChunkService {
	return secret.New(fs, logger, opts)
}

// loadOptions turns the --config flag into provider options.
func (a *App) loadOptions() config.LoadOptions {
	return config.LoadOptions{ConfigFilePath: types.FilesystemPath(a.flags.cfgFile)}
}

// setup loads configuration and builds the logger and ChunkService for one
// invocation. A broken config file is reported as a warning and defaults are
// used, so that 'pngme config init' and friends keep working. Command flags
// that shadow config keys (--backup, --parallel) win when set.
func (a *App) setup(cmd *cobra.Command) {
	stderr := cmd.ErrOrStderr()

	cfg, err := a.Config.Load(cmd.Context(), a.loadOptions())
	if err != nil {
		fmt.Fprintln(stderr, WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, a.flags.verbose))
		cfg = config.DefaultConfig()
	}

	if !a.flags.verbose {
		a.flags.verbose = cfg.UI.Verbose
	}

	logger := log.NewWithOptions(stderr, log.Options{Prefix: config.AppName})
	if a.flags.verbose {
		logger.SetLevel(log.DebugLevel)
	}

	opts := secret.Options{
		RequireValidType: cfg.Encode.RequireValidType,
		Backup:           cfg.Encode.Backup,
		Parallelism:      cfg.Print.Parallelism,
	}
	if f := cmd.Flags().Lookup("backup"); f != nil && f.Changed {
		opts.Backup, _ = cmd.Flags().GetBool("backup")
	}
	if f := cmd.Flags().Lookup("allow-reserved"); f != nil && f.Changed {
		allow, _ := cmd.Flags().GetBool("allow-reserved")
		opts.RequireValidType = !allow
	}
	if f := cmd.Flags().Lookup("parallel"); f != nil && f.Changed {
		opts.Parallelism, _ = cmd.Flags().GetInt("parallel")
	}

	logger.Debug("configuration loaded", "chunk_type", cfg.Encode.ChunkType, "backup", opts.Backup)

	a.cfg = cfg
	a.logger = logger
	a.chunks = a.newChunks(a.Fs, logger, opts)
}
