package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/include"
	"github.com/born-ml/dataarray/internal/xarray"
)

type createOptions struct {
	kind   string
	shape  []int
	fill   string
	data   string
	coords []string
	dtype  string
	name   string
	output string
}

func (c *cli) newCreateCmd() *cobra.Command {
	o := &createOptions{}
	cmd := &cobra.Command{
		Use:   "create FILE",
		Short: "Build an instance of a class",
		Long: `Build an instance of the class declared in FILE and print it.

The instance is built from --data (a JSON array) or from --shape with
one of the NumPy-style kinds: zeros, ones, empty or full.

Examples:
  dataarray create image.toml --shape 2,3 --kind ones
  dataarray create image.toml --data '[[0, 1], [2, 3]]' --coord x=10,20
  dataarray create image.toml --shape 2,2 --kind full --fill 0.5 -o json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCreate(cmd, args[0], o)
		},
	}

	cmd.Flags().StringVarP(&o.kind, "kind", "k", "zeros", "initializer when --shape is given (zeros, ones, empty, full)")
	cmd.Flags().IntSliceVarP(&o.shape, "shape", "s", nil, "instance shape, one size per dimension")
	cmd.Flags().StringVar(&o.fill, "fill", "", "fill value for --kind full")
	cmd.Flags().StringVar(&o.data, "data", "", "instance data as a JSON array")
	cmd.Flags().StringArrayVarP(&o.coords, "coord", "c", nil, "coordinate value as NAME=V[,V...] (repeatable)")
	cmd.Flags().StringVar(&o.dtype, "dtype", "", "element type for classes that declare none")
	cmd.Flags().StringVar(&o.name, "name", "", "instance name")
	cmd.Flags().StringVarP(&o.output, "output", "o", "text", "output format (text, json)")
	return cmd
}

func (c *cli) runCreate(cmd *cobra.Command, path string, o *createOptions) error {
	class, err := loadClass(path)
	if err != nil {
		return err
	}
	defer class.Unregister()

	coords, err := parseCoords(o.coords)
	if err != nil {
		return err
	}

	opts := []dataclass.Option{dataclass.WithName(o.name), dataclass.WithDType(o.dtype)}

	var da *xarray.DataArray
	switch {
	case o.data != "" && o.shape != nil:
		return fmt.Errorf("--data and --shape are mutually exclusive")
	case o.data != "":
		var data any
		if data, err = include.DecodeValue([]byte(o.data)); err != nil {
			return fmt.Errorf("parse --data: %w", err)
		}
		da, err = class.New(data, coords, opts...)
	case o.shape != nil:
		da, err = c.fromShape(class, o, coords, opts)
	default:
		return fmt.Errorf("one of --data or --shape is required")
	}
	if err != nil {
		return err
	}

	c.logger.Debug().
		Str("class", class.Name()).
		Strs("dims", da.Dims()).
		Str("dtype", da.DType().String()).
		Msg("created instance")

	return printArray(cmd, da, o.output)
}

func (c *cli) fromShape(class *dataclass.Class[*xarray.DataArray], o *createOptions, coords dataclass.Coords, opts []dataclass.Option) (*xarray.DataArray, error) {
	switch o.kind {
	case "zeros":
		return class.Zeros(o.shape, coords, opts...)
	case "ones":
		return class.Ones(o.shape, coords, opts...)
	case "empty":
		return class.Empty(o.shape, coords, opts...)
	case "full":
		if o.fill == "" {
			return nil, fmt.Errorf("--kind full requires --fill")
		}
		fill, err := parseScalar(o.fill)
		if err != nil {
			return nil, fmt.Errorf("parse --fill: %w", err)
		}
		return class.Full(o.shape, fill, coords, opts...)
	default:
		return nil, fmt.Errorf("unknown kind %q (want zeros, ones, empty or full)", o.kind)
	}
}

func printArray(cmd *cobra.Command, da *xarray.DataArray, format string) error {
	out := cmd.OutOrStdout()
	switch format {
	case "text":
		fmt.Fprintln(out, da)
		return nil
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(da)
	default:
		return fmt.Errorf("unknown output format %q (want text or json)", format)
	}
}

// parseCoords parses NAME=V[,V...] pairs. A single value is a scalar; a
// value starting with "[" is parsed as JSON.
func parseCoords(pairs []string) (dataclass.Coords, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	coords := make(dataclass.Coords, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid coordinate %q: want NAME=VALUES", pair)
		}

		if strings.HasPrefix(raw, "[") {
			v, err := include.DecodeValue([]byte(raw))
			if err != nil {
				return nil, fmt.Errorf("coordinate %s: %w", name, err)
			}
			coords[name] = v
			continue
		}

		fields := strings.Split(raw, ",")
		values := make([]any, len(fields))
		for i, f := range fields {
			v, err := parseScalar(f)
			if err != nil {
				return nil, fmt.Errorf("coordinate %s: %w", name, err)
			}
			values[i] = v
		}
		if len(values) == 1 {
			coords[name] = values[0]
		} else {
			coords[name] = values
		}
	}
	return coords, nil
}

// parseScalar parses an integer, a float or a boolean.
func parseScalar(s string) (any, error) {
	s = strings.TrimSpace(s)
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f, nil
	}
	if b, err := strconv.ParseBool(s); err == nil {
		return b, nil
	}
	return nil, fmt.Errorf("invalid value %q", s)
}
