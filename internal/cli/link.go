package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/reqmaster/pkg/types"
)

const flagObjectID2 = "object-id-2"

func (a *app) createLinkCmd() *cobra.Command {
	var project, idA, idB string
	cmd := &cobra.Command{
		Use:   "create-link",
		Short: "Link two objects in both directions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			res, err := ws.CreateLink(project, idA, idB)
			if err != nil {
				return err
			}
			a.log.Debug("link transaction committed",
				zap.String("tx", res.TxID),
				zap.String("project", project),
				zap.Bool("changed", res.Changed),
			)

			if a.flags.jsonMode {
				return a.printJSON(res)
			}
			if res.Changed {
				fmt.Fprintf(a.stdout, "Link created between '%s' and '%s' in project '%s'.\n", idA, idB, project)
			} else {
				fmt.Fprintf(a.stdout, "Link between '%s' and '%s' already exists in project '%s'.\n", idA, idB, project)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&idA, flagObjectID, "", "first object ID")
	cmd.Flags().StringVar(&idB, flagObjectID2, "", "second object ID")
	for _, name := range []string{flagProjectName, flagObjectID, flagObjectID2} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) listLinksCmd() *cobra.Command {
	var project, objectID string
	cmd := &cobra.Command{
		Use:   "list-links",
		Short: "List an object's links with their titles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			listing, err := ws.ListLinks(project, objectID)
			if err != nil {
				return err
			}
			for _, t := range listing.Targets {
				if !t.Resolved {
					a.log.Warn("linked object not found", zap.String("id", objectID), zap.String("target", t.ID))
				}
			}

			if a.flags.jsonMode {
				return a.printJSON(listing)
			}
			if len(listing.Targets) == 0 {
				fmt.Fprintf(a.stdout, "Object '%s' (Title: '%s') in project '%s' has no links.\n", listing.ID, listing.Title, project)
				return nil
			}
			fmt.Fprintf(a.stdout, "Object '%s' (Title: '%s') in project '%s' has links to:\n", listing.ID, listing.Title, project)
			for _, t := range listing.Targets {
				fmt.Fprintf(a.stdout, "  - %s\n", t.Title)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&objectID, flagObjectID, "", "object ID")
	_ = cmd.MarkFlagRequired(flagProjectName)
	_ = cmd.MarkFlagRequired(flagObjectID)
	return cmd
}

func (a *app) validateLinksCmd() *cobra.Command {
	var project string
	cmd := &cobra.Command{
		Use:   "validate-links",
		Short: "Report broken and one-sided links in a project",
		Long: "Scan every object in the project. A link is broken when its target does not\n" +
			"exist and one-sided when the target does not link back. Exits 3 when any\n" +
			"problem is found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			report, err := ws.ValidateLinks(project)
			if err != nil {
				return err
			}
			a.logReport(report)

			if a.flags.jsonMode {
				if err := a.printJSON(report); err != nil {
					return err
				}
			} else {
				a.printReport(report)
			}
			if !report.Valid() {
				return errInconsistent
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	_ = cmd.MarkFlagRequired(flagProjectName)
	return cmd
}

func (a *app) printReport(r *types.ValidationReport) {
	if r.Valid() {
		fmt.Fprintln(a.stdout, "All links are valid.")
		return
	}
	if len(r.Broken) > 0 {
		fmt.Fprintln(a.stdout, "Broken links found:")
		for _, b := range r.Broken {
			fmt.Fprintf(a.stdout, "Object '%s' has a broken link to '%s'.\n", b.Source, b.Target)
		}
	}
	if len(r.OneSided) > 0 {
		fmt.Fprintln(a.stdout, "One-sided links found:")
		for _, b := range r.OneSided {
			fmt.Fprintf(a.stdout, "Object '%s' links to '%s' but '%s' does not link back.\n", b.Source, b.Target, b.Target)
		}
	}
	if len(r.Errors) > 0 {
		fmt.Fprintln(a.stdout, "Unreadable objects:")
		for _, e := range r.Errors {
			fmt.Fprintf(a.stdout, "Object '%s' could not be read: %s\n", e.ID, e.Message)
		}
	}
}

func (a *app) logReport(r *types.ValidationReport) {
	for _, b := range r.Broken {
		a.log.Warn("broken link", zap.String("project", r.Project), zap.String("source", b.Source), zap.String("target", b.Target))
	}
	for _, b := range r.OneSided {
		a.log.Warn("one-sided link", zap.String("project", r.Project), zap.String("source", b.Source), zap.String("target", b.Target))
	}
	for _, e := range r.Errors {
		a.log.Warn("unreadable object", zap.String("project", r.Project), zap.String("id", e.ID), zap.Error(e.Err))
	}
	a.log.Debug("links validated", zap.String("project", r.Project), zap.Int("checked", r.Checked), zap.Bool("valid", r.Valid()))
}
