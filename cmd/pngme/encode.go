// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"

	"github.com/spf13/cobra"
)

func newEncodeCommand(app *App) *cobra.Command {
	var (
		output   string
		encoding string
	)

	encodeCmd := &cobra.Command{
		Use:   "encode <file> [type] <message>",
		Short: "Hide a message in a new chunk",
		Long: `Append a chunk holding <message> to a PNG file.

The file is rewritten in place unless --output is given. When [type] is
omitted, encode.chunk_type from the configuration is used (ruSt by default).

Examples:
  pngme encode dice.png ruSt "hello"
  pngme encode dice.png "hello" --output secret.png
  pngme encode dice.png teXt "café" --encoding latin-1`,
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunkType, message := app.cfg.Encode.ChunkType, args[len(args)-1]
			if len(args) == 3 {
				chunkType = args[1]
			}

			res, err := app.chunks.Encode(cmd.Context(), secret.EncodeRequest{
				Path:      types.FilesystemPath(args[0]),
				ChunkType: chunkType,
				Message:   message,
				Encoding:  pngfile.TextEncoding(encoding),
				Output:    types.FilesystemPath(output),
			})
			if err != nil {
				return app.fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s Encoded %d bytes into a %s chunk of %s\n",
				SuccessStyle.Render("✓"), res.Chunk.Length(), CmdStyle.Render(res.Chunk.Type().String()), res.Written)
			if res.Backup != "" {
				fmt.Fprintf(out, "  %s\n", SubtitleStyle.Render("original saved to "+res.Backup.String()))
			}
			return nil
		},
	}

	encodeCmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of rewriting the input")
	encodeCmd.Flags().StringVar(&encoding, "encoding", "", "message encoding: utf-8 or latin-1 (default utf-8)")
	encodeCmd.Flags().Bool("backup", false, "keep a copy of the original as <file>.bak (overrides encode.backup)")
	encodeCmd.Flags().Bool("allow-reserved", false, "accept chunk types with a lowercase third letter (overrides encode.require_valid_type)")

	return encodeCmd
}
