package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	flagObjectType = "object-type"
	flagObjectID   = "object-id"
	flagAttributes = "attributes"
)

// errBadAttribute reports an attribute argument without "=" or with an
// empty key.
var errBadAttribute = errors.New("attribute must have the form key=value")

// parseAttributes turns key=value arguments into a map. The value is
// everything after the first "="; later duplicates win.
func parseAttributes(args []string) (map[string]string, error) {
	attrs := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("%w: %q", errBadAttribute, arg)
		}
		attrs[key] = value
	}
	return attrs, nil
}

// attributeFlag registers --attributes on cmd. Trailing key=value
// arguments are accepted too, so "--attributes a=1 b=2" works.
func attributeFlag(cmd *cobra.Command, target *[]string) {
	cmd.Flags().StringArrayVar(target, flagAttributes, nil, "attribute in key=value form (repeatable; trailing key=value arguments also accepted)")
}

func (a *app) createObjectCmd() *cobra.Command {
	var (
		project    string
		objectType string
		objectID   string
		attrArgs   []string
	)
	cmd := &cobra.Command{
		Use:   "create-object [key=value ...]",
		Short: "Create an object shaped by its type's schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAttributes(append(attrArgs, args...))
			if err != nil {
				return err
			}
			ws, err := a.workspace()
			if err != nil {
				return err
			}

			obj, err := ws.CreateObject(project, objectType, objectID, attrs)
			if err != nil {
				return err
			}
			if s, ok := ws.Schema(objectType); ok {
				if dropped := s.Undeclared(attrs); len(dropped) > 0 {
					a.log.Warn("attributes not declared by the schema were dropped",
						zap.String("type", objectType),
						zap.String("id", objectID),
						zap.Strings("attributes", dropped),
					)
				}
			}

			if a.flags.jsonMode {
				return a.printObject(obj)
			}
			fmt.Fprintf(a.stdout, "%s '%s' created in project '%s'.\n", capitalize(objectType), objectID, project)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&objectType, flagObjectType, "", "type of object to create")
	cmd.Flags().StringVar(&objectID, flagObjectID, "", "Unique Requirement ID of the new object")
	attributeFlag(cmd, &attrArgs)
	for _, name := range []string{flagProjectName, flagObjectType, flagObjectID} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) getObjectCmd() *cobra.Command {
	var project, objectID string
	cmd := &cobra.Command{
		Use:   "get-object",
		Short: "Print one object record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := a.workspace()
			if err != nil {
				return err
			}
			obj, err := ws.GetObject(project, objectID)
			if err != nil {
				return err
			}
			return a.printObject(obj)
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&objectID, flagObjectID, "", "Unique Requirement ID")
	_ = cmd.MarkFlagRequired(flagProjectName)
	_ = cmd.MarkFlagRequired(flagObjectID)
	return cmd
}

func (a *app) editObjectCmd() *cobra.Command {
	var (
		project  string
		objectID string
		attrArgs []string
	)
	cmd := &cobra.Command{
		Use:   "edit-object [key=value ...]",
		Short: "Merge attributes into an existing object",
		RunE: func(cmd *cobra.Command, args []string) error {
			attrs, err := parseAttributes(append(attrArgs, args...))
			if err != nil {
				return err
			}
			ws, err := a.workspace()
			if err != nil {
				return err
			}

			obj, err := ws.EditObject(project, objectID, attrs)
			if err != nil {
				return err
			}
			if a.flags.jsonMode {
				return a.printObject(obj)
			}
			fmt.Fprintf(a.stdout, "Object '%s' updated in project '%s'.\n", objectID, project)
			return nil
		},
	}
	cmd.Flags().StringVar(&project, flagProjectName, "", "name of the project")
	cmd.Flags().StringVar(&objectID, flagObjectID, "", "Unique Requirement ID of the object to edit")
	attributeFlag(cmd, &attrArgs)
	_ = cmd.MarkFlagRequired(flagProjectName)
	_ = cmd.MarkFlagRequired(flagObjectID)
	return cmd
}
