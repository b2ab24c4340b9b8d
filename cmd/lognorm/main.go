package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lognorm/internal/app"
	"lognorm/internal/config"
	"lognorm/internal/logging"
)

func main() {
	configPath := flag.String("c", "", "path to config file")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: lognorm [-c config.yaml] [logfile] [filter]\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := loadConfig(*configPath, flag.Args())
	if err != nil {
		logging.New(logging.Options{}).Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{Level: cfg.Log.Level, JSON: cfg.Log.JSON})

	ctx, stop := signal.NotifyContext(
		context.Background(),
		syscall.SIGINT,
		syscall.SIGTERM,
	)
	defer stop()

	a := app.New(cfg, logger)
	if err := a.Run(ctx); err != nil {
		logger.Error("run failed", "error", err)
		stop()
		os.Exit(1)
	}
}

// loadConfig reads the -c file when given, otherwise builds a config from
// the positional [logfile] [filter] arguments.
func loadConfig(path string, args []string) (*config.Config, error) {
	var cfg *config.Config
	if path != "" {
		if len(args) > 0 {
			return nil, fmt.Errorf("positional arguments are not allowed with -c")
		}
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		if len(args) > 2 {
			return nil, fmt.Errorf("too many arguments: %v", args[2:])
		}
		var logfile, filter string
		if len(args) > 0 {
			logfile = args[0]
		}
		if len(args) > 1 {
			filter = args[1]
		}
		cfg = config.Default(logfile, filter)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
