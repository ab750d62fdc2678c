// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pngme/pngme/internal/config"
	"github.com/pngme/pngme/internal/secret"
	"github.com/pngme/pngme/pkg/pngfile"
	"github.com/pngme/pngme/pkg/types"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/dustin/go-humanize"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

const previewLimit = 24

type (
	printReport struct {
		Files []fileReport `json:"files" toml:"files"`
	}

	fileReport struct {
		Path      string        `json:"path" toml:"path"`
		Size      int           `json:"size" toml:"size"`
		SizeHuman string        `json:"size_human" toml:"size_human"`
		Chunks    []chunkReport `json:"chunks,omitempty" toml:"chunks,omitempty"`
		Error     string        `json:"error,omitempty" toml:"error,omitempty"`
	}

	chunkReport struct {
		Index      int    `json:"index" toml:"index"`
		Type       string `json:"type" toml:"type"`
		Length     uint32 `json:"length" toml:"length"`
		CRC        string `json:"crc" toml:"crc"`
		Critical   bool   `json:"critical" toml:"critical"`
		Public     bool   `json:"public" toml:"public"`
		Valid      bool   `json:"valid" toml:"valid"`
		SafeToCopy bool   `json:"safe_to_copy" toml:"safe_to_copy"`
		Preview    string `json:"preview" toml:"preview"`
	}
)

func newPrintCommand(app *App) *cobra.Command {
	var format string

	printCmd := &cobra.Command{
		Use:   "print <file>...",
		Short: "List the chunks of PNG files",
		Long: `List every chunk of one or more PNG files with its type, length, CRC,
property flags and a preview of its data.

Several files are inspected in parallel (print.parallelism, or --parallel).
A file that cannot be read is reported and does not stop the others.

Examples:
  pngme print dice.png
  pngme print *.png --format json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			outFormat := app.cfg.Print.Format
			if format != "" {
				outFormat = config.OutputFormat(format)
			}
			if err := outFormat.Validate(); err != nil {
				return app.fail(cmd, err)
			}

			paths := make([]types.FilesystemPath, len(args))
			for i, a := range args {
				paths[i] = types.FilesystemPath(a)
			}

			results, err := app.chunks.Print(cmd.Context(), paths)
			if err != nil {
				return app.fail(cmd, err)
			}

			out := cmd.OutOrStdout()
			switch outFormat {
			case config.OutputFormatJSON:
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				err = enc.Encode(buildReport(results))
			case config.OutputFormatTOML:
				err = toml.NewEncoder(out).Encode(buildReport(results))
			default:
				renderInspections(out, cmd.ErrOrStderr(), results, app.flags.verbose)
			}
			if err != nil {
				return app.fail(cmd, fmt.Errorf("failed to write %s output: %w", outFormat, err))
			}

			return app.firstInspectionFailure(cmd, results)
		},
	}

	printCmd.Flags().StringVarP(&format, "format", "f", "", "output format: text, json or toml (overrides print.format)")
	printCmd.Flags().Int("parallel", 0, "number of files inspected at once (overrides print.parallelism)")

	return printCmd
}

// firstInspectionFailure turns the first failed file into the command's exit
// status. Text output already printed every failure inline.
func (a *App) firstInspectionFailure(cmd *cobra.Command, results []secret.Inspection) error {
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		a.renderIssue(cmd.ErrOrStderr(), r.Err)
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return &ExitError{Code: exitCodeFor(r.Err), Err: r.Err}
	}
	return nil
}

func buildReport(results []secret.Inspection) printReport {
	report := printReport{Files: make([]fileReport, 0, len(results))}
	for _, r := range results {
		fr := fileReport{Path: r.Path.String()}
		if r.Err != nil {
			fr.Error = r.Err.Error()
			report.Files = append(report.Files, fr)
			continue
		}
		fr.Size = r.Size
		fr.SizeHuman = humanize.Bytes(uint64(r.Size))
		for i, c := range r.Chunks {
			typ := c.Type()
			fr.Chunks = append(fr.Chunks, chunkReport{
				Index:      i,
				Type:       typ.String(),
				Length:     c.Length(),
				CRC:        fmt.Sprintf("0x%08x", c.CRC()),
				Critical:   typ.IsCritical(),
				Public:     typ.IsPublic(),
				Valid:      typ.IsValid(),
				SafeToCopy: typ.IsSafeToCopy(),
				Preview:    pngfile.Preview(c.Data(), previewLimit),
			})
		}
		report.Files = append(report.Files, fr)
	}
	return report
}

func renderInspections(out, errOut io.Writer, results []secret.Inspection, verbose bool) {
	for i, r := range results {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if r.Err != nil {
			fmt.Fprintln(errOut, ErrorStyle.Render("Error: ")+formatErrorForDisplay(r.Err, verbose))
			continue
		}

		fmt.Fprintf(out, "%s %s\n", TitleStyle.Render(r.Path.String()),
			SubtitleStyle.Render(fmt.Sprintf("(%s, %d chunks)", humanize.Bytes(uint64(r.Size)), len(r.Chunks))))
		fmt.Fprintln(out, chunkTable(r.Chunks))

		if verbose {
			for _, c := range r.Chunks {
				fmt.Fprintln(out, SubtitleStyle.Render(c.String()))
			}
		}
	}
}

func chunkTable(chunks []*pngfile.Chunk) string {
	rows := make([][]string, len(chunks))
	critical := make([]bool, len(chunks))
	for i, c := range chunks {
		rows[i] = []string{
			strconv.Itoa(i),
			c.Type().String(),
			humanize.Comma(int64(c.Length())),
			fmt.Sprintf("0x%08x", c.CRC()),
			chunkFlags(c.Type()),
			pngfile.Preview(c.Data(), previewLimit),
		}
		critical[i] = c.Type().IsCritical()
	}

	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers("#", "TYPE", "LENGTH", "CRC", "FLAGS", "DATA").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return tableHeaderStyle
			case row >= 0 && row < len(critical) && critical[row] && col == 1:
				return tableCriticalStyle
			default:
				return tableCellStyle
			}
		}).
		String()
}

// chunkFlags spells out the four property bits of a type code.
func chunkFlags(t pngfile.TypeCode) string {
	flags := make([]string, 0, 4)
	if t.IsCritical() {
		flags = append(flags, "critical")
	} else {
		flags = append(flags, "ancillary")
	}
	if t.IsPublic() {
		flags = append(flags, "public")
	} else {
		flags = append(flags, "private")
	}
	if !t.IsValid() {
		flags = append(flags, "reserved")
	}
	if t.IsSafeToCopy() {
		flags = append(flags, "safe-to-copy")
	} else {
		flags = append(flags, "unsafe-to-copy")
	}
	return strings.Join(flags, ",")
}
