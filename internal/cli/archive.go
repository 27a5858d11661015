package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reqmaster/pkg/reqmaster"
)

const flagFile = "file"

func (a *app) exportProjectCmd() *cobra.Command {
	var project, file string
	cmd := &cobra.Command{
		Use:   "export-project",
		Short: "Write a project's objects to a JSONL file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			report, err := ws.ExportProject(project, file)
			if err != nil {
				return err
			}
			a.logSkipped(report)
			if a.flags.jsonMode {
				return a.printJSON(report)
			}
			fmt.Fprintf(a.stdout, "Exported %d object(s) from project '%s' to '%s'.\n", len(report.Records), project, file)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&file, flagFile, "", "JSONL file to write")
	_ = cmd.MarkFlagRequired(flagProjectName)
	_ = cmd.MarkFlagRequired(flagFile)
	return cmd
}

func (a *app) importProjectCmd() *cobra.Command {
	var project, file string
	cmd := &cobra.Command{
		Use:   "import-project",
		Short: "Add objects from a JSONL file to a project",
		Long: "Read one object record per line and add it to the project, creating the\n" +
			"project if needed. Lines naming an existing object are skipped.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			report, err := ws.ImportProject(project, file)
			if err != nil {
				return err
			}
			a.logSkipped(report)
			if a.flags.jsonMode {
				return a.printJSON(report)
			}
			fmt.Fprintf(a.stdout, "Imported %d object(s) into project '%s'; skipped %d.\n",
				len(report.Records), project, len(report.Skipped))
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&file, flagFile, "", "JSONL file to read")
	_ = cmd.MarkFlagRequired(flagProjectName)
	_ = cmd.MarkFlagRequired(flagFile)
	return cmd
}

func (a *app) logSkipped(r *reqmaster.ArchiveReport) {
	for _, s := range r.Skipped {
		fields := []zap.Field{zap.String("project", r.Project), zap.Error(s.Err)}
		if s.ID != "" {
			fields = append(fields, zap.String("id", s.ID))
		}
		if s.Line > 0 {
			fields = append(fields, zap.Int("line", s.Line))
		}
		a.log.Warn("record skipped", fields...)
	}
}
