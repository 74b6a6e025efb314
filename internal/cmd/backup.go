package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/Iron-Ham/cogniload/internal/backup"
	"github.com/Iron-Ham/cogniload/internal/errors"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks and history to a backup file",
	Long: `Export the task list, background load, visit bookmark and completion
count. Writes to stdout unless --output is given. The format follows the
output file extension (.json, .yaml, .yml) unless --format is set.`,
	RunE: runExport,
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Restore tasks and history from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE:  runImport,
}

var (
	backupFormat string
	backupOutput string
)

func init() {
	exportCmd.Flags().StringVarP(&backupOutput, "output", "o", "", "Write to file instead of stdout")
	exportCmd.Flags().StringVar(&backupFormat, "format", "", "Backup format: json or yaml")
	importCmd.Flags().StringVar(&backupFormat, "format", "", "Backup format: json or yaml (default from extension)")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

// resolveFormat picks the explicit format, else the file extension.
func resolveFormat(path string) (backup.Format, error) {
	if backupFormat != "" {
		return backup.ParseFormat(backupFormat)
	}
	return backup.ParseFormat(filepath.Ext(path))
}

func runExport(cmd *cobra.Command, args []string) error {
	format, err := resolveFormat(backupOutput)
	if err != nil {
		return err
	}

	return withSession(func(s *session) error {
		bundle := s.engine.Export()

		var w io.Writer = cmd.OutOrStdout()
		if backupOutput != "" {
			f, err := os.Create(backupOutput)
			if err != nil {
				return errors.Wrapf(err, "failed to create backup file %s", backupOutput)
			}
			defer func() { _ = f.Close() }()
			w = f
		}

		if err := backup.Encode(w, bundle, format); err != nil {
			return err
		}
		if backupOutput != "" {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "Exported to %s\n", backupOutput)
		}
		return nil
	})
}

func runImport(cmd *cobra.Command, args []string) error {
	path := args[0]
	format, err := resolveFormat(path)
	if err != nil {
		return err
	}

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "failed to open backup file %s", path)
	}
	defer func() { _ = f.Close() }()

	bundle, err := backup.Decode(f, format)
	if err != nil {
		return err
	}

	return withSession(func(s *session) error {
		n, err := s.engine.Import(bundle)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Imported %d keys from backup dated %s\n", n, bundle.ExportDate)
		return nil
	})
}
