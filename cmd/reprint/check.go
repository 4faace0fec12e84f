package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"reprint/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <path> [path...]",
	Short: "Verify that reprinting unchanged files gives them back byte for byte",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "text", "diagnostics format (text|json)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("check: unsupported diagnostics format %q", format)
	}
	s, err := newSession(cmd, "")
	if err != nil {
		return err
	}
	defer s.cleanup()

	results, runErr := s.run(cmd.Context(), "reprint check", args, false, driver.Check)
	if runErr != nil && !errors.Is(runErr, driver.ErrChanged) {
		return runErr
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		switch {
		case r.Err != nil:
			failed = true
		case r.Changed && !s.flags.quiet:
			fmt.Fprintln(out, r.Path)
		}
	}
	if err := renderDiagnostics(cmd.ErrOrStderr(), results, format, s.flags.quiet); err != nil {
		return err
	}
	if s.flags.timings {
		renderTimings(cmd.ErrOrStderr(), results)
	}
	if runErr != nil {
		return runErr
	}
	if failed {
		return fmt.Errorf("check: %w", errReported)
	}
	if !s.flags.quiet {
		fmt.Fprintf(out, "%d file(s) reprint unchanged\n", len(results))
	}
	return nil
}
