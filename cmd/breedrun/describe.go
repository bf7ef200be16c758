package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbukum/breedkit/assembly"
	"github.com/kbukum/breedkit/breeder"
	"github.com/kbukum/breedkit/pipeline"
)

func newDescribeCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "describe",
		Short: "Assemble each subpopulation's tree and print it as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if _, err := o.logger(cmd.ErrOrStderr()); err != nil {
				return err
			}
			params, err := o.params()
			if err != nil {
				return err
			}
			cfg, err := breeder.LoadConfig(params)
			if err != nil {
				return err
			}
			builder := assembly.NewBuilder(nil, params)
			w := cmd.OutOrStdout()
			for i, sp := range cfg.Subpops {
				root, err := builder.Build(sp.Pipe())
				if err != nil {
					return err
				}
				if err := pipeline.Assemble(nil, root); err != nil {
					return err
				}
				out, err := assembly.Describe(root)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "# subpop %d: %s\n%s", i, sp.Pipe(), out)
			}
			return nil
		},
	}
}
