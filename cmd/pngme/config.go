// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"

	"github.com/pngme/pngme/internal/config"

	"github.com/spf13/cobra"
)

// newConfigCommand creates the `pngme config` command tree.
// Subcommands that read configuration use the App's ConfigProvider.
func newConfigCommand(app *App) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage pngme configuration",
		Long: `Manage pngme configuration.

Configuration is stored in:
  - Linux: ~/.config/pngme/config.cue
  - macOS: ~/Library/Application Support/pngme/config.cue
  - Windows: %APPDATA%\pngme\config.cue

Every key can also be set through the environment, for example
PNGME_ENCODE_CHUNK_TYPE=stEg or PNGME_PRINT_FORMAT=json.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(cmd, err)
			}
			showConfig(cmd.OutOrStdout(), app.flags.cfgFile, cfg)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "init",
		Short: "Create default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.CreateDefaultConfig()
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Configuration file at %s\n", SuccessStyle.Render("✓"), path)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "path",
		Short: "Show configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.flags.cfgFile != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", app.flags.cfgFile)
				return nil
			}
			cfgDir, err := config.ConfigDir()
			if err != nil {
				return app.fail(cmd, err)
			}
			cfgPath, err := config.ConfigFilePath()
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Config directory: %s\n", cfgDir)
			fmt.Fprintf(cmd.OutOrStdout(), "Config file: %s\n", cfgPath)
			return nil
		},
	})

	cfgCmd.AddCommand(&cobra.Command{
		Use:   "dump",
		Short: "Output the effective configuration as CUE",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := app.Config.Load(cmd.Context(), app.loadOptions())
			if err != nil {
				return app.fail(cmd, err)
			}
			fmt.Fprint(cmd.OutOrStdout(), config.GenerateCUE(cfg))
			return nil
		},
	})

	return cfgCmd
}

func showConfig(w io.Writer, cfgFile string, cfg *config.Config) {
	keyStyle := CmdStyle
	valueStyle := SuccessStyle

	fmt.Fprintln(w, TitleStyle.Render("Current Configuration"))
	fmt.Fprintln(w)

	if cfgFile != "" {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), cfgFile)
	} else if path, err := config.ConfigFilePath(); err == nil {
		fmt.Fprintf(w, "%s: %s\n", keyStyle.Render("Config file"), path)
	}
	fmt.Fprintln(w)

	section := func(name string, kv ...string) {
		fmt.Fprintf(w, "%s:\n", keyStyle.Render(name))
		for i := 0; i+1 < len(kv); i += 2 {
			fmt.Fprintf(w, "  %s: %s\n", kv[i], valueStyle.Render(kv[i+1]))
		}
	}

	section("ui",
		"color_scheme", cfg.UI.ColorScheme.String(),
		"verbose", fmt.Sprint(cfg.UI.Verbose))
	section("encode",
		"chunk_type", cfg.Encode.ChunkType,
		"require_valid_type", fmt.Sprint(cfg.Encode.RequireValidType),
		"backup", fmt.Sprint(cfg.Encode.Backup))
	section("decode",
		"encoding", cfg.Decode.Encoding.String())
	section("print",
		"format", cfg.Print.Format.String(),
		"parallelism", fmt.Sprint(cfg.Print.Parallelism))
}
