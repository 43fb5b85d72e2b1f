package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"TempeQuest/internal/dag"
	"TempeQuest/internal/game"
)

// LoadGraph builds the story graph from the content file, or from the
// built-in story when path is empty.
func LoadGraph(path string) (*dag.Graph, error) {
	content := dag.SeedContent()
	if path != "" {
		loaded, err := dag.LoadContentFile(path)
		if err != nil {
			return nil, err
		}
		content = loaded
	}
	graph, err := dag.Build(content)
	if err != nil {
		return nil, fmt.Errorf("build %q: %w", content.Title, err)
	}
	log.Printf("story %q loaded: %d scenes, %d dialogue nodes, %d characters",
		graph.Title, len(graph.Scenes), len(graph.Dialogues), len(graph.Roster()))
	return graph, nil
}

// StartApp serves the game until ctx is cancelled.
func StartApp(ctx context.Context, cfg AppConfig) error {
	graph, err := LoadGraph(cfg.ContentPath)
	if err != nil {
		return err
	}
	hub := game.NewHub(graph, game.LogEffects{})

	gin.SetMode(cfg.GinMode)
	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: NewRouter(hub),
	}

	// Periodic cleanup of idle sessions
	go func() {
		ticker := time.NewTicker(cfg.CleanupEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				hub.CleanupIdle(now, cfg.SessionIdle)
			}
		}
	}()

	errCh := make(chan error, 1)
	go func() {
		log.Printf("starting web server on %s (session idle %v)", cfg.Addr, cfg.SessionIdle)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	log.Printf("shutting down web server")
	return srv.Shutdown(shutdownCtx)
}
