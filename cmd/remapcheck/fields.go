package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"remapper/config"
	"remapper/internal/analyze"
	"remapper/internal/match"
)

type fieldsOptions struct {
	*rootOptions

	packages []string
	depth    int
}

func newFieldsCommand(root *rootOptions) *cobra.Command {
	opts := &fieldsOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:     "fields TYPE",
		Short:   "List the field paths of a struct type",
		Example: `  remapcheck fields store.Customer -p ./store --depth 2`,
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, args[0])
		},
	}

	cmd.Flags().StringSliceVarP(&opts.packages, "packages", "p", nil, "package patterns declaring the type (default ./...)")
	cmd.Flags().IntVar(&opts.depth, "depth", 1, "how many levels of nested structs to list")

	return cmd
}

func (o *fieldsOptions) run(cmd *cobra.Command, typeName string) error {
	graph, err := o.loadGraph(o.packages)
	if err != nil {
		return err
	}

	info := config.ResolveTypeID(typeName, graph)
	if info == nil {
		msg := fmt.Sprintf("type %q not found", typeName)
		if suggestions := match.Suggest(typeName, config.TypeNames(graph), 3); len(suggestions) > 0 {
			msg += " (did you mean " + strings.Join(suggestions, ", ") + "?)"
		}

		return errors.New(msg)
	}

	if info.Kind != analyze.TypeKindStruct {
		return fmt.Errorf("type %s is a %s, not a struct", info.ID.Short(), info.Kind)
	}

	stringer := analyze.NewTypeStringer()
	paths := stringer.BuildFieldPaths(info, o.depth)

	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader([]string{"path", "type", "json"})
	table.SetAutoWrapText(false)

	for _, path := range analyze.SortedPaths(paths) {
		field := paths[path]
		table.Append([]string{path, stringer.TypeString(field.Type), field.JSONName()})
	}

	table.Render()

	return nil
}
