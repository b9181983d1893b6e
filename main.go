package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Septimmius/ml-templates/gologger"
	"github.com/Septimmius/ml-templates/utils"
	"github.com/spf13/cobra"
)

var logger = gologger.NewLogger()

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if utils.RUN_TIMEOUT_SEC > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Second*time.Duration(utils.RUN_TIMEOUT_SEC))
		defer cancel()
	}

	ctx = logger.WithContext(ctx)
	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logger.Error().Err(err).Msg("command failed")
		stop()
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "ml-templates",
		Short:         "Column classification and preprocessing pipelines for tabular data",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newClassifyCmd(), newTransformCmd())
	return root
}
