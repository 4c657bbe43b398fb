package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/born-ml/dataarray/internal/xarray"
)

// EnvLogLevel overrides the default log level.
const EnvLogLevel = "DATAARRAY_LOG_LEVEL"

const (
	checkMark = "\033[32m✓\033[0m"
	crossMark = "\033[31m✗\033[0m"
)

// cli holds state shared by all subcommands.
type cli struct {
	logLevel  string
	logFormat string
	logger    zerolog.Logger
}

// newRootCmd builds the command tree.
func newRootCmd() *cobra.Command {
	c := &cli{logger: zerolog.Nop()}

	root := &cobra.Command{
		Use:   "dataarray",
		Short: "Declarative labeled-array classes",
		Long: `dataarray works with data array class definitions: fixed dimension
names, a data type, default coordinates and an accessor name, written
in JSON, TOML or YAML.

Examples:
  dataarray validate image.toml        # Check a definition
  dataarray doc image.toml             # Describe the class
  dataarray create image.toml -s 2,2   # Build an instance
  dataarray watch image.toml           # Re-check on every save`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setupLogger(cmd.ErrOrStderr())
		},
	}

	level := os.Getenv(EnvLogLevel)
	if level == "" {
		level = "warn"
	}
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", level, "log level (debug, info, warn, error); env "+EnvLogLevel)
	root.PersistentFlags().StringVar(&c.logFormat, "log-format", "console", "log format (console, json)")

	root.AddCommand(
		c.newValidateCmd(),
		c.newDocCmd(),
		c.newCreateCmd(),
		c.newWatchCmd(),
		newVersionCmd(),
	)
	return root
}

func (c *cli) setupLogger(out io.Writer) error {
	level, err := zerolog.ParseLevel(c.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.logLevel, err)
	}

	switch c.logFormat {
	case "console":
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
	case "json":
	default:
		return fmt.Errorf("invalid log format %q", c.logFormat)
	}

	c.logger = zerolog.New(out).Level(level).With().Timestamp().Logger()
	xarray.SetLogger(c.logger)
	return nil
}

// Execute runs the CLI and exits non-zero on error.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
