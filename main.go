package main

import (
	"flag"
	"os"

	"headsup/server"
	"headsup/stats"
	"headsup/ui"

	"github.com/charmbracelet/log"
)

func main() {
	var (
		stack      = flag.Int("stack", 100, "starting stack size in big blinds")
		aggression = flag.Float64("aggression", 0.5, "bot aggression level (0.0 = passive, 1.0 = aggressive)")
		seed       = flag.Int64("seed", 0, "deck seed (0 = random)")
		serve      = flag.Bool("serve", false, "run the WebSocket server instead of the terminal game")
		port       = flag.String("port", "7777", "server port when running with -serve")
		verbose    = flag.Bool("verbose", false, "enable debug logging")
	)
	flag.Parse()

	logger := log.New(os.Stderr)
	if *verbose {
		logger.SetLevel(log.DebugLevel)
	}

	if *serve {
		if err := server.NewServer(logger).Start(*port); err != nil {
			logger.Fatal("server failed", "err", err)
		}
		return
	}

	store, err := stats.Load()
	if err != nil {
		logger.Warn("could not load stats, starting fresh", "err", err)
	}

	app := ui.NewApp(*stack, *aggression, *seed, store, logger)
	runErr := app.Run()

	if err := store.Save(); err != nil {
		logger.Warn("could not save stats", "err", err)
	}
	if runErr != nil {
		logger.Fatal("game loop failed", "err", runErr)
	}
}
