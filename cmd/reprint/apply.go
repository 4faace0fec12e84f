package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"reprint/internal/driver"
)

var applyCmd = &cobra.Command{
	Use:   "apply [flags] <path> [path...]",
	Short: "Apply the recipe and reprint the files",
	Long: `Apply the rename and replace rules from reprint.toml (or --recipe) to
every JavaScript file under the given paths. Use - to read from stdin.
Without --write or --stdout the changes are shown as a diff.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runApply,
}

func init() {
	applyCmd.Flags().String("recipe", "", "TOML file with [[rename]] and [[replace]] rules")
	applyCmd.Flags().Bool("write", false, "rewrite changed files in place")
	applyCmd.Flags().Bool("stdout", false, "print reprinted sources to stdout")
	applyCmd.Flags().Bool("diff", false, "print a diff of the changes (default)")
	applyCmd.Flags().String("format", "text", "diagnostics format (text|json)")
	applyCmd.MarkFlagsMutuallyExclusive("write", "stdout", "diff")
}

func runApply(cmd *cobra.Command, args []string) error {
	recipePath, err := cmd.Flags().GetString("recipe")
	if err != nil {
		return err
	}
	write, err := cmd.Flags().GetBool("write")
	if err != nil {
		return err
	}
	toStdout, err := cmd.Flags().GetBool("stdout")
	if err != nil {
		return err
	}
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "text" && format != "json" {
		return fmt.Errorf("apply: unsupported diagnostics format %q", format)
	}

	s, err := newSession(cmd, recipePath)
	if err != nil {
		return err
	}
	defer s.cleanup()

	var results []driver.Result
	if len(args) == 1 && args[0] == "-" {
		src, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return err
		}
		results = []driver.Result{driver.Source("<stdin>", src, s.opts)}
		toStdout = !write
		write = false
	} else {
		results, err = s.run(cmd.Context(), "reprint apply", args, toStdout, driver.RunFiles)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := false
	for _, r := range results {
		if r.Err != nil {
			failed = true
			continue
		}
		switch {
		case toStdout:
			if _, err := io.WriteString(out, r.Output); err != nil {
				return err
			}
		case write:
			wrote, err := driver.Write(r)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "apply: %s: %v\n", r.Path, err)
				failed = true
				continue
			}
			if wrote && !s.flags.quiet {
				fmt.Fprintf(out, "rewrote %s (%d edits)\n", r.Path, r.Edits)
			}
		default:
			if r.Changed {
				if err := renderDiff(out, r); err != nil {
					return err
				}
			}
		}
	}

	if err := renderDiagnostics(cmd.ErrOrStderr(), results, format, s.flags.quiet); err != nil {
		return err
	}
	if s.flags.timings {
		renderTimings(cmd.ErrOrStderr(), results)
	}
	if failed {
		return fmt.Errorf("apply: %w", errReported)
	}
	return nil
}
