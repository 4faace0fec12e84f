package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"reprint/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "reprint",
	Short: "Rewrite JavaScript sources while keeping their formatting",
	Long: `reprint applies rename and replace recipes to JavaScript files and
prints the result, reusing the original text of every unchanged part.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: applyColorFlag,
}

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	rootCmd.AddCommand(applyCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics per file")
	rootCmd.PersistentFlags().Int("jobs", 0, "parallel workers (0 = GOMAXPROCS)")
	rootCmd.PersistentFlags().String("ui", "auto", "progress list for multi-file runs (auto|on|off)")
	rootCmd.PersistentFlags().Bool("no-cache", false, "do not read or write the result cache")
	rootCmd.PersistentFlags().String("config", "", "path to reprint.toml (default: search upwards)")
	rootCmd.PersistentFlags().String("trace", "", "write trace events to file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage (stream|ring|both)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "ring buffer capacity for --trace-mode=ring")
	rootCmd.PersistentFlags().Duration("trace-heartbeat", 0, "emit heartbeat events at this interval (0 = off)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write Go runtime trace to file")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "reprint:", err)
		os.Exit(exitCode(err))
	}
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func applyColorFlag(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return err
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	return nil
}
