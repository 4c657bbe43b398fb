package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/include"
)

func (c *cli) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate FILE...",
		Short: "Validate class definitions",
		Long: `Validate one or more class definition files.

Checks:
  - The file is JSON, TOML or YAML and parses
  - Only known keys are used
  - Dimensions, dtypes, coordinates, defaults and the accessor name are valid`,
		Args: cobra.MinimumNArgs(1),
		RunE: c.runValidate,
	}
}

func (c *cli) runValidate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	failed := 0

	for _, path := range args {
		def, err := include.Load(path)
		if err == nil {
			err = dataclass.Validate(def)
		}
		if err != nil {
			failed++
			fmt.Fprintf(out, "  %s %s\n      %v\n", crossMark, path, err)
			c.logger.Debug().Err(err).Str("path", path).Msg("invalid definition")
			continue
		}
		fmt.Fprintf(out, "  %s %s: %s %v, %d coordinates\n", checkMark, path, def.Name, def.Dims, len(def.Coords))
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d definitions invalid", failed, len(args))
	}
	return nil
}
