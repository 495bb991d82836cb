package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"carnitas-elguero/internal/comanda"
	"carnitas-elguero/internal/notsub"
	xerrors "carnitas-elguero/internal/xpkg/errors"
	"carnitas-elguero/internal/xpkg/logger"
)

func main() {
	mylog, err := logger.New(os.Getenv("LOG_LEVEL"))
	if err != nil {
		log.Fatalf("log error: %v", err)
	}

	// Global flags for selecting the service mode
	fs := flag.NewFlagSet("main", flag.ExitOnError)
	mode := fs.String("mode", "", "service to run: comanda-service | notification-subscriber")

	// Only parse up to `--mode`, the rest go to the service
	args := os.Args[1:]
	modeArgs := []string{}
	for i, arg := range args {
		if strings.HasPrefix(arg, "--mode") || strings.HasPrefix(arg, "-mode") {
			modeArgs = args[:i+1]
			break
		}
	}
	if err := fs.Parse(modeArgs); err != nil {
		mylog.Action("startup_failed").Error("Failed to parse flags", err)
		help(fs)
		return
	}

	if *mode == "" {
		mylog.Action("startup_failed").Error("Failed to start", xerrors.ErrModeFlag)
		help(fs)
		return
	}

	remainingArgs := args[len(modeArgs):]

	ctx := context.Background()
	switch *mode {
	case "comanda-service", "cs":
		l := mylog.With("service", "comanda-service")
		l.Action("comanda_service_started").Info("Successfully started")
		if err := comanda.Execute(ctx, l, remainingArgs); err != nil {
			l.Action("comanda_service_failed").Error("Error in comanda-service", err)
			if !errors.Is(err, xerrors.ErrHelp) {
				log.Fatalf("failed to execute comanda-service: %s", err)
			}
		}
		l.Action("comanda_service_completed").Info("Successfully completed")

	case "notification-subscriber", "ns":
		l := mylog.With("service", "notification-subscriber")
		l.Action("notification_subscriber_started").Info("Successfully started")
		if err := notsub.Execute(ctx, l, remainingArgs); err != nil {
			l.Action("notification_subscriber_failed").Error("Error in notification-subscriber", err)
			if !errors.Is(err, xerrors.ErrHelp) {
				log.Fatalf("failed to execute notification-subscriber: %s", err)
			}
		}
		l.Action("notification_subscriber_completed").Info("Successfully completed")

	default:
		mylog.Action("startup_failed").Error("Failed to start", xerrors.ErrUnknownService)
		help(fs)
	}
}

func help(fs *flag.FlagSet) {
	fmt.Println("\nUsage:")
	fs.PrintDefaults()
	fmt.Println("\nExample:")
	fmt.Println("  ./carnitas-elguero --mode=comanda-service --port=8000")
	fmt.Println("  ./carnitas-elguero --mode=notification-subscriber")
}
