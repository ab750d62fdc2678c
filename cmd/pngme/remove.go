// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/types"

	"github.com/spf13/cobra"
)

func newRemoveCommand(app *App) *cobra.Command {
	var output string

	removeCmd := &cobra.Command{
		Use:   "remove <file> [type]",
		Short: "Delete the first chunk of a type",
		Long: `Remove the first chunk of the given type from a PNG file.

Only the first match is removed; run remove again to drop further chunks of
the same type.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunkType := app.cfg.Encode.ChunkType
			if len(args) == 2 {
				chunkType = args[1]
			}

			res, err := app.chunks.Remove(cmd.Context(), secret.RemoveRequest{
				Path:      types.FilesystemPath(args[0]),
				ChunkType: chunkType,
				Output:    types.FilesystemPath(output),
			})
			if err != nil {
				return app.fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Removed %s chunk (%d bytes) from %s\n",
				SuccessStyle.Render("✓"), CmdStyle.Render(res.Removed.Type().String()), res.Removed.Length(), res.Written)
			if res.Backup != "" {
				fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("original saved to "+res.Backup.String()))
			}
			return nil
		},
	}

	removeCmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of rewriting the input")
	removeCmd.Flags().Bool("backup", false, "keep a copy of the original as <file>.bak (overrides encode.backup)")

	return removeCmd
}
