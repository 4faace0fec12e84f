package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"reprint/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default " + config.FileName,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInit,
}

func init() {
	initCmd.Flags().Bool("force", false, "overwrite an existing file")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}
	path := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("init: %s already exists (use --force)", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	var buf bytes.Buffer
	buf.WriteString("# reprint configuration\n\n")
	if err := config.Encode(&buf, config.Default()); err != nil {
		return fmt.Errorf("init: failed to encode config: %w", err)
	}
	buf.WriteString(exampleRules)
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
	return nil
}

const exampleRules = `
# [[rename]]
# from = "this"
# to = "self"

# [[replace]]
# kind = "string"   # string|number|ident
# from = "foo"
# to = "null"
`
