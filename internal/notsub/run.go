package notsub

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"carnitas-elguero/internal/notsub/subscriber"
	"carnitas-elguero/internal/xpkg/config"
	xerrors "carnitas-elguero/internal/xpkg/errors"
	"carnitas-elguero/internal/xpkg/logger"
)

// Execute starts the notification subscriber.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fs := flag.NewFlagSet("notification-subscriber", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")
	if err := fs.Parse(args); err != nil {
		return errors.New("cannot parse arguments")
	}
	if *showHelp {
		fs.Usage()
		return xerrors.ErrHelp
	}

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return err
		}
		cfg = config.LoadDotEnv()
	}

	sub := subscriber.New(newCtx, context.Background(), cfg, mylog)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- sub.Run()
	}()

	select {
	case <-newCtx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return sub.Stop(context.Background())
	case err := <-runErrCh:
		if err != nil {
			mylog.Action("subscriber_failed").Error("Subscriber failed unexpectedly", err)
			return err
		}
		return sub.Stop(context.Background())
	}
}
