package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"remapper/config"
)

type fmtOptions struct {
	*rootOptions

	file   string
	write  bool
	expand bool
}

func newFmtCommand(root *rootOptions) *cobra.Command {
	opts := &fmtOptions{rootOptions: root}

	cmd := &cobra.Command{
		Use:   "fmt",
		Short: "Rewrite a mapping file in canonical form",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return opts.run(cmd)
		},
	}

	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "mapping file to format")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to the file instead of stdout")
	cmd.Flags().BoolVar(&opts.expand, "expand", false, "expand the 121 shorthand into field entries")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (o *fmtOptions) run(cmd *cobra.Command) error {
	mf, err := config.LoadFile(o.file)
	if err != nil {
		return err
	}

	if o.expand {
		config.NormalizeMappingFile(mf)
	}

	if o.write {
		o.logger.Info("rewriting mapping file", zap.String("file", o.file))
		return config.WriteFile(mf, o.file)
	}

	data, err := config.Marshal(mf)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(data)

	return err
}
