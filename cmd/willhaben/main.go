package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/devskale/willhaben-agent/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "override config path (optional)")
	dataDir := flag.String("data", "", "override data directory (optional)")
	useBrowser := flag.Bool("browser", false, "allow headless-browser fallback for challenged pages")
	show := flag.String("show", "", "print a single listing by ad id and exit")
	debug := flag.Bool("debug", false, "write a debug log to the data directory")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		DataDir:    *dataDir,
		UseBrowser: *useBrowser,
		Debug:      *debug,
	}

	if *show != "" {
		if err := app.Show(ctx, opts, *show, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "willhaben: %v\n", err)
			return 1
		}
		return 0
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "willhaben: %v\n", err)
		return 1
	}
	return 0
}
