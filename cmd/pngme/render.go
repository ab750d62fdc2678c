// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"fmt"
	"io"

	"github.com/pngme/pngme/internal/config"
	"github.com/pngme/pngme/internal/issue"
	"github.com/pngme/pngme/internal/secret"

	"github.com/spf13/cobra"
)

// formatErrorForDisplay formats an error for user display.
// If the error is an ActionableError, it uses the Format method.
// In verbose mode, shows the full error chain.
func formatErrorForDisplay(err error, verboseMode bool) string {
	var ae *issue.ActionableError
	if errors.As(err, &ae) {
		return ae.Format(verboseMode)
	}
	return err.Error()
}

// fail renders err on the command's stderr together with the matching issue
// page and returns the ExitError the handler should return.
func (a *App) fail(cmd *cobra.Command, err error) error {
	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, ErrorStyle.Render("Error: ")+formatErrorForDisplay(err, a.flags.verbose))
	a.renderIssue(stderr, err)

	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return &ExitError{Code: exitCodeFor(err), Err: err}
}

// renderIssue prints the catalog page for err, if it has one.
func (a *App) renderIssue(w io.Writer, err error) {
	id := secret.IssueFor(err)
	var ae *issue.ActionableError
	if errors.As(err, &ae) && ae.IssueID != 0 {
		id = ae.IssueID
	}
	if id == 0 {
		return
	}

	entry := issue.Get(id)
	if entry == nil {
		return
	}

	style := config.ColorSchemeAuto
	if a.cfg != nil {
		style = a.cfg.UI.ColorScheme
	}

	rendered, renderErr := entry.Render(style.GlamourStyle())
	if renderErr != nil {
		if a.logger != nil {
			a.logger.Warn("failed to render issue catalog entry", "issueID", id, "error", renderErr)
		}
		return
	}
	fmt.Fprint(w, rendered)
}
