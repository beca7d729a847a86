package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/logging"
	"github.com/df07/go-whitted-raytracer/web/server"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "Path to a YAML config file")
	port := flag.Int("port", 0, "Port to serve on (default from config, 8080)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error")
	logFile := flag.String("log-file", "", "Also write logs to this file (rotated)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	cfg.Apply(config.Flags{
		MaxDepth: -1,
		Port:     *port,
		LogLevel: *logLevel,
		LogFile:  *logFile,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration:\n%v\n", err)
		os.Exit(1)
	}

	if err := logging.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error initializing logging: %v\n", err)
		os.Exit(1)
	}
	defer logging.Sync()

	// Create and start web server
	webServer := server.NewServer(cfg.Server.Port, cfg.Render, logging.Named("web"))

	logging.Info("Whitted Raytracer Web Server", zap.Int("port", cfg.Server.Port))
	logging.Sugar.Infof("Visit http://localhost:%d/api/scenes to list scenes", cfg.Server.Port)

	if err := webServer.Start(); err != nil {
		logging.Error("Error starting server", zap.Error(err))
		logging.Sync()
		os.Exit(1)
	}
}
