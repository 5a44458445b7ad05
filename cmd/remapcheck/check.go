package main

import (
	"errors"
	"fmt"

	"github.com/davecgh/go-spew/spew"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"remapper/config"
	"remapper/internal/diagnostic"
)

var errCheckFailed = errors.New("mapping check failed")

const maxParallelLoads = 8

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	DisablePointerAddresses: true,
	DisableCapacities:       true,
	SortKeys:                true,
}

type checkOptions struct {
	*rootOptions

	files    []string
	packages []string
	dump     bool
	strict   bool
}

func newCheckCommand(root *rootOptions) *cobra.Command {
	opts := &checkOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate mapping files against the types of a set of packages",
		Example: `  remapcheck check -f mapping.yaml -p ./store -p ./warehouse
  remapcheck check -f orders.yaml,customers.yaml --dump`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	cmd.Flags().StringSliceVarP(&opts.files, "file", "f", nil, "mapping files to check")
	cmd.Flags().StringSliceVarP(&opts.packages, "packages", "p", nil, "package patterns declaring the mapped types (default ./...)")
	cmd.Flags().BoolVar(&opts.dump, "dump", false, "print the parsed mapping files")
	cmd.Flags().BoolVar(&opts.strict, "strict", false, "treat warnings as errors")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (o *checkOptions) run(cmd *cobra.Command) error {
	files, err := o.load()
	if err != nil {
		return err
	}

	graph, err := o.loadGraph(o.packages)
	if err != nil {
		return err
	}

	failed := false

	for i, mf := range files {
		path := o.files[i]

		if o.dump {
			dumpConfig.Fdump(cmd.OutOrStdout(), mf)
		}

		res := config.Validate(mf, graph)

		o.logger.Info("mapping file checked",
			zap.String("file", path),
			zap.Int("mappings", len(mf.TypeMappings)),
			zap.Int("errors", len(res.Errors)),
			zap.Int("warnings", len(res.Warnings)))

		report(cmd, res)

		if res.HasErrors() || (o.strict && len(res.Warnings) > 0) {
			failed = true
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d mappings OK\n", path, len(mf.TypeMappings))
	}

	if failed {
		return errCheckFailed
	}

	return nil
}

// load reads and parses every mapping file, in parallel. The result is
// ordered like o.files.
func (o *checkOptions) load() ([]*config.MappingFile, error) {
	files := make([]*config.MappingFile, len(o.files))

	var g errgroup.Group
	g.SetLimit(maxParallelLoads)

	for i, path := range o.files {
		g.Go(func() error {
			mf, err := config.LoadFile(path)
			if err != nil {
				return err
			}

			files[i] = mf

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return files, nil
}

func report(cmd *cobra.Command, res *diagnostic.Diagnostics) {
	for _, d := range res.Errors {
		fmt.Fprintf(cmd.OutOrStdout(), "error: %s\n", d)
	}

	for _, d := range res.Warnings {
		fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", d)
	}
}
