package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/barbershop-bot/app"
	"github.com/Black-And-White-Club/barbershop-bot/config"
)

func main() {
	configFile := flag.String("config", "config.yaml", "Path to the configuration file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	runErr := application.Run(ctx)
	if runErr != nil {
		application.Obs.Logger.Error("Application stopped with error", "error", runErr)
	}

	if err := application.Close(); err != nil {
		log.Printf("Error during shutdown: %v", err)
	}
	if runErr != nil {
		os.Exit(1)
	}
}
