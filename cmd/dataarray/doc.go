package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/include"
	"github.com/born-ml/dataarray/internal/xarray"
)

func (c *cli) newDocCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doc FILE",
		Short: "Describe the class a definition declares",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			class, err := loadClass(args[0])
			if err != nil {
				return err
			}
			defer class.Unregister()

			s := class.Schema()
			fmt.Fprintln(cmd.OutOrStdout(), class)
			fmt.Fprintln(cmd.OutOrStdout())
			fmt.Fprintln(cmd.OutOrStdout(), s.Doc())
			if s.Accessor() != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nAccessor: %s\n", s.Accessor())
			}
			return nil
		},
	}
}

// loadClass loads and compiles the definition in path. The caller must
// unregister the class when done.
func loadClass(path string) (*dataclass.Class[*xarray.DataArray], error) {
	def, err := include.Load(path)
	if err != nil {
		return nil, err
	}
	class, err := dataclass.Define(def)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return class, nil
}
