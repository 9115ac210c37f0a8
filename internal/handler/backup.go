package handler

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"persona-tracker/internal/service"
)

// BackupHandler handles init, export, import and reset.
type BackupHandler struct {
	backup *service.BackupService
}

// NewBackupHandler creates a new BackupHandler.
func NewBackupHandler(backup *service.BackupService) *BackupHandler {
	return &BackupHandler{backup: backup}
}

// Commands returns the init, export, import and reset commands.
func (h *BackupHandler) Commands() []*cobra.Command {
	return []*cobra.Command{h.initCmd(), h.exportCmd(), h.importCmd(), h.resetCmd()}
}

func (h *BackupHandler) initCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Seed missing documents with defaults",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			seeded, err := h.backup.Initialize(cmd.Context())
			if err != nil {
				return err
			}
			if len(seeded) == 0 {
				fmt.Fprintln(out(cmd), "Already initialized.")
				return nil
			}
			fmt.Fprintf(out(cmd), "✅ Initialized %d documents\n", len(seeded))
			return nil
		},
	}
}

func (h *BackupHandler) exportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export stats, actions and history as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := h.backup.ExportJSON(cmd.Context())
			if err != nil {
				return err
			}
			if output == "" || output == "-" {
				_, err = fmt.Fprintln(out(cmd), string(data))
				return err
			}
			if err := os.WriteFile(output, append(data, '\n'), 0o600); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			fmt.Fprintf(out(cmd), "✅ Exported to %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file, stdout when empty")
	return cmd
}

func (h *BackupHandler) importCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Import stats, actions and history from an export",
		Args:  exactArgs(1, "file"),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", args[0], err)
			}
			if err := h.backup.Import(cmd.Context(), data); err != nil {
				if errors.Is(err, service.ErrInvalidPayload) {
					log.Debug().Err(err).Str("file", args[0]).Msg("Import rejected")
					return ErrImportFailed
				}
				return err
			}
			fmt.Fprintln(out(cmd), "✅ Imported")
			return nil
		},
	}
}

func (h *BackupHandler) resetCmd() *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Restore default stats and actions and clear history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !yes {
				return fmt.Errorf("refusing to reset without --yes")
			}
			if err := h.backup.Reset(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(out(cmd), "✅ Reset to defaults")
			return nil
		},
	}
	cmd.Flags().BoolVar(&yes, "yes", false, "Confirm reset")
	return cmd
}
