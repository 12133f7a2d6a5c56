package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"collabcore/internal/storage"
	"collabcore/internal/transport"
	"collabcore/internal/workspace"
)

func newImportCSVCmd() *cobra.Command {
	var projectID, object string
	cmd := &cobra.Command{
		Use:   "import-csv [file]",
		Short: "Import participants into a project from a CSV file or a staged object",
		Args: func(cmd *cobra.Command, args []string) error {
			if projectID == "" {
				return errors.New("--project is required")
			}
			if (object == "") == (len(args) == 0) || len(args) > 1 {
				return errors.New("pass exactly one of a file argument or --object")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			rt, err := bootstrap(ctx)
			if err != nil {
				return err
			}
			defer rt.Close(ctx)

			var file transport.File
			if object != "" {
				if rt.staging == nil {
					return errStagingDisabled
				}
				files, closer, err := storage.Open(ctx, rt.staging, object)
				if err != nil {
					return err
				}
				defer closer.Close()
				file = files[0]
			} else {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				file = transport.File{Name: filepath.Base(args[0]), ContentType: "text/csv", Reader: f}
			}

			ws, err := workspace.NewSessions(rt.deps, rt.cfg.Console.ParticipationPageSize).Enter(ctx, projectID)
			if err != nil {
				return err
			}
			defer ws.Close()

			before := ws.Participations.Total()
			if !ws.ImportCSV(ctx, file) {
				return fmt.Errorf("import of %s into %s failed", file.Name, projectID)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %s into %s: %d -> %d participations\n",
				file.Name, projectID, before, ws.Participations.Total())
			if object != "" {
				if err := storage.Discard(ctx, rt.staging, object); err != nil {
					rt.log.Warn("staged_discard_failed", "error", err)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&projectID, "project", "", "project id")
	cmd.Flags().StringVar(&object, "object", "", "staged object key instead of a local file")
	return cmd
}
