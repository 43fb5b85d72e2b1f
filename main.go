package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"TempeQuest/internal/console"
	"TempeQuest/internal/dag"
	"TempeQuest/internal/game"
	"TempeQuest/internal/server"
)

func main() {
	addr := flag.String("addr", ":8080", "address to listen on (e.g., 127.0.0.1:8080)")
	contentPath := flag.String("content", "", "path to a story content JSON file (default: built-in story)")
	dotenvPath := flag.String("env-file", ".env", "optional .env file loaded before the environment")
	sessionIdle := flag.Duration("session-idle", 30*time.Minute, "drop sessions idle for longer than this")
	cleanupEvery := flag.Duration("cleanup-every", time.Minute, "how often idle sessions are collected")
	playConsole := flag.Bool("console", false, "play in the terminal instead of serving")
	dumpContent := flag.Bool("dump-content", false, "write the built-in story as JSON to stdout and exit")
	flag.Parse()

	if *dumpContent {
		if err := dag.SeedContent().Encode(os.Stdout); err != nil {
			log.Fatalf("dump content: %v", err)
		}
		return
	}

	var overrides server.ConfigOverrides
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			overrides.Addr = addr
		case "content":
			overrides.ContentPath = contentPath
		case "session-idle":
			overrides.SessionIdle = sessionIdle
		case "cleanup-every":
			overrides.CleanupEvery = cleanupEvery
		}
	})

	cfg, err := server.LoadConfig(*dotenvPath, overrides)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	if *playConsole {
		graph, err := server.LoadGraph(cfg.ContentPath)
		if err != nil {
			log.Fatalf("load story: %v", err)
		}
		s := game.NewSession("console", graph, nil)
		if err := console.Run(os.Stdin, os.Stdout, s); err != nil {
			log.Fatalf("console: %v", err)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := server.StartApp(ctx, cfg); err != nil {
		log.Fatalf("server: %v", err)
	}
}
