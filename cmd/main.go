package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"itimapps/internal/config"
	"itimapps/utils"
)

const defaultConfigPath = "config.json"

func main() {
	// initiate logging
	l := log.New(os.Stderr, "", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)

	configPath := os.Getenv("ITIMAPPS_CONFIG")
	if configPath == "" {
		configPath = defaultConfigPath
	}
	appConfig, err := config.Load(configPath)
	if err != nil {
		l.Fatalf("ERROR: %v", err)
	}

	var statsClient *utils.StatsClient
	if appConfig.Stats.Enabled {
		statsClient = utils.NewStatsClient(l, appConfig.Stats.Address, appConfig.Stats.Prefix)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err = newRootCommand(newApp(appConfig, l, statsClient)).ExecuteContext(ctx)
	stop()
	statsClient.Shutdown()

	if err != nil {
		l.Printf("ERROR: %v", err)
	}
	os.Exit(exitCode(err))
}
