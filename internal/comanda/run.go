package comanda

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	comandahttp "carnitas-elguero/internal/comanda/api/http"
	"carnitas-elguero/internal/comanda/app/core"
	"carnitas-elguero/internal/xpkg/config"
	xerrors "carnitas-elguero/internal/xpkg/errors"
	"carnitas-elguero/internal/xpkg/logger"
)

type params struct {
	comandaParams *core.ComandaParams
	configPath    string
	cfg           *config.Config
}

// Execute starts the comanda service.
func Execute(ctx context.Context, mylog logger.Logger, args []string) error {
	newCtx, stop := signal.NotifyContext(ctx, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	params, err := parseParams(args)
	if err != nil {
		if !errors.Is(err, xerrors.ErrHelp) {
			mylog.Action("command_parse_failed").Error("Invalid command received", err)
		}
		return err
	}
	if err = validateParams(params); err != nil {
		mylog.Action("command_validation_failed").Error("Invalid command received", err)
		return err
	}

	server := comandahttp.NewServer(newCtx, context.Background(), params.cfg, params.comandaParams, mylog)

	runErrCh := make(chan error, 1)
	go func() {
		runErrCh <- server.Run()
	}()

	// Wait for signal or server crash
	select {
	case <-newCtx.Done():
		mylog.Action("shutdown_signal_received").Info("Shutdown signal received")
		return server.Stop(context.Background())
	case err := <-runErrCh:
		if err != nil && !errors.Is(err, comandahttp.ErrServerClosed) {
			mylog.Action("comanda_service_failed").Error("Server failed unexpectedly", err)
			return err
		}
		mylog.Action("server_stopped").Info("Server exited normally")
		return nil
	}
}

func parseParams(args []string) (*params, error) {
	fs := flag.NewFlagSet("comanda-service", flag.ContinueOnError)
	showHelp := fs.Bool("help", false, "Show help")
	configPath := fs.String("config-path", "config.yaml", "path for config yaml")

	port := fs.Int("port", 8000, "Port to run the comanda service")
	alertInterval := fs.Int("alert-interval", 0, "Seconds between delivery-alert scans (0 = config value)")
	alertLookahead := fs.Int("alert-lookahead", 0, "Minutes of delivery-alert lookahead (0 = config value)")
	noNotify := fs.Bool("no-notify", false, "Run without the RabbitMQ notification publisher")

	if err := fs.Parse(args); err != nil {
		return nil, xerrors.ErrParseCmd
	}

	if *showHelp {
		fs.Usage()
		return nil, xerrors.ErrHelp
	}

	return &params{
		comandaParams: &core.ComandaParams{
			Port:             *port,
			AlertInterval:    *alertInterval,
			AlertLookahead:   *alertLookahead,
			SkipNotification: *noNotify,
		},
		configPath: *configPath,
	}, nil
}

func validateParams(params *params) error {
	cfg, err := loadConfig(params.configPath)
	if err != nil {
		return err
	}
	params.cfg = cfg

	cp := params.comandaParams
	if cp.Port <= 0 || cp.Port >= 65536 {
		return fmt.Errorf("port must be in [1: 65,535]: %d", cp.Port)
	}

	// config supplies the defaults; flags override
	if cp.AlertInterval == 0 {
		cp.AlertInterval = cfg.Alerts.IntervalSeconds
	}
	if cp.AlertLookahead == 0 {
		cp.AlertLookahead = cfg.Alerts.LookaheadMinutes
	}
	if cp.AlertInterval < 0 {
		return fmt.Errorf("alert interval cannot be negative: %d", cp.AlertInterval)
	}
	if cp.AlertLookahead < 0 {
		return fmt.Errorf("alert lookahead cannot be negative: %d", cp.AlertLookahead)
	}
	return nil
}

// loadConfig reads the yaml config, falling back to environment variables
// when the file is absent.
func loadConfig(configPath string) (*config.Config, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return config.LoadDotEnv(), nil
		}
		return nil, err
	}
	return cfg, nil
}
