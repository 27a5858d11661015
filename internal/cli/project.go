package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const flagProjectName = "project-name"

func (a *app) createProjectCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "create-project",
		Short: "Create an empty project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			if err := ws.CreateProject(project); err != nil {
				return err
			}
			a.log.Debug("project created", zap.String("project", project))
			if a.flags.jsonMode {
				return a.printJSON(map[string]string{"project": project})
			}
			fmt.Fprintf(a.stdout, "Project '%s' created.\n", project)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	_ = cmd.MarkFlagRequired(flagProjectName)
	return cmd
}

func (a *app) listProjectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-projects",
		Short: "List all projects",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			projects, err := ws.ListProjects()
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return a.printJSON(projects)
			}
			if len(projects) == 0 {
				fmt.Fprintln(a.stdout, "No projects found.")
				return nil
			}
			fmt.Fprintln(a.stdout, "Projects found:")
			for _, p := range projects {
				fmt.Fprintf(a.stdout, "  - %s\n", p)
			}
			return nil
		},
	}
}

func (a *app) listTypesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list-types",
		Short: "List the object types and their fields",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			names := ws.Types()
			if a.flags.jsonMode {
				out := make(map[string][]string, len(names))
				for _, name := range names {
					s, _ := ws.Schema(name)
					out[name] = s.Fields()
				}
				return a.printJSON(out)
			}
			if len(names) == 0 {
				fmt.Fprintln(a.stdout, "No object types configured.")
				return nil
			}
			for _, name := range names {
				s, _ := ws.Schema(name)
				fmt.Fprintf(a.stdout, "%s: %s\n", name, strings.Join(s.Fields(), ", "))
			}
			return nil
		},
	}
}
