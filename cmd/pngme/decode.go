// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"

	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"

	"github.com/spf13/cobra"
)

func newDecodeCommand(app *App) *cobra.Command {
	var (
		encoding string
		raw      bool
	)

	decodeCmd := &cobra.Command{
		Use:   "decode <file> [type]",
		Short: "Print the message stored in a chunk",
		Long: `Print the payload of the first chunk of the given type as text.

When [type] is omitted, encode.chunk_type from the configuration is used.
Use --raw to write the payload bytes unchanged, for example to a file.

Examples:
  pngme decode dice.png ruSt
  pngme decode dice.png tEXt --encoding latin-1
  pngme decode dice.png ruSt --raw > payload.bin`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			chunkType := app.cfg.Encode.ChunkType
			if len(args) == 2 {
				chunkType = args[1]
			}

			enc := app.cfg.Decode.Encoding
			if encoding != "" {
				enc = pngfile.TextEncoding(encoding)
			}

			res, err := app.chunks.Decode(cmd.Context(), secret.DecodeRequest{
				Path:      types.FilesystemPath(args[0]),
				ChunkType: chunkType,
				Encoding:  enc,
				Raw:       raw,
			})
			if err != nil {
				return app.fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			if raw {
				if _, err := out.Write(res.Chunk.Data()); err != nil {
					return app.fail(cmd, err)
				}
				return nil
			}
			fmt.Fprintln(out, res.Text)
			return nil
		},
	}

	decodeCmd.Flags().StringVar(&encoding, "encoding", "", "payload encoding: utf-8 or latin-1 (overrides decode.encoding)")
	decodeCmd.Flags().BoolVar(&raw, "raw", false, "write the payload bytes without decoding them")

	return decodeCmd
}
