package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/born-ml/dataarray/internal/dataclass"
	"github.com/born-ml/dataarray/internal/include"
)

func (c *cli) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch FILE",
		Short: "Validate a definition every time it is saved",
		Long: `Watch a definition file and print the class documentation every time
a valid revision is saved. Invalid revisions are reported and the last
valid one is kept. Stops on SIGINT or SIGTERM.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return c.runWatch(ctx, cmd, args[0])
		},
	}
}

func (c *cli) runWatch(ctx context.Context, cmd *cobra.Command, path string) error {
	w, err := include.NewWatcher(path, c.logger)
	if err != nil {
		return err
	}
	defer w.Stop()

	out := cmd.OutOrStdout()
	describe := func(def dataclass.Definition) {
		class, err := dataclass.Define(def)
		if err != nil {
			fmt.Fprintf(out, "%s %s: %v\n", crossMark, w.Path(), err)
			return
		}
		defer class.Unregister()
		fmt.Fprintf(out, "%s %s\n%s\n\n", checkMark, class, class.Schema().Doc())
	}

	describe(w.Definition())
	w.OnChange(describe)

	if err := w.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}
