package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/MikeSquared-Agency/breakdowns/internal/api"
	"github.com/MikeSquared-Agency/breakdowns/internal/config"
	"github.com/MikeSquared-Agency/breakdowns/internal/flow"
)

var serveFlags struct {
	port int
}

var serveCmd = &cobra.Command{
	Use:   "serve [dialogue_flow]",
	Short: "Serve the breakdown detection HTTP API",
	Long: `Start the HTTP API. When a dialogue flow is given, flow discontinuation
is available to detect requests; without one those requests are rejected.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&serveFlags.port, "port", 0, "HTTP port (default: $BREAKDOWNS_PORT or 8760)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	logger := setupLogging(cfg.LogLevel, rootFlags.debug, os.Stdout)
	if serveFlags.port != 0 {
		cfg.Port = serveFlags.port
	}

	var graph *flow.Graph
	if len(args) == 1 {
		g, err := flow.LoadFile(args[0])
		if err != nil {
			return fmt.Errorf("load dialogue flow: %w", err)
		}
		graph = g
		logger.Info("dialogue flow loaded", "nodes", len(g.Nodes()), "edges", g.EdgeCount())
	} else {
		logger.Warn("no dialogue flow given, flow discontinuation disabled")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	srv := api.NewServer(cfg.Port, cfg.APIToken, graph, api.DetectConfig{
		PatternSize:   cfg.PatternSize,
		Workers:       cfg.Workers,
		DeafThreshold: cfg.DeafThreshold,
	}, logger)
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	if client := connectHermes(ctx, cfg, logger); client != nil {
		defer client.Close()
		if err := client.Publish("breakdowns.agent.registered", map[string]any{
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"port":        cfg.Port,
			"flow_loaded": graph != nil,
		}); err != nil {
			logger.Warn("failed to publish registration", "error", err)
		}
	}

	logger.Info("breakdowns ready", "port", cfg.Port)

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigCh:
		logger.Info("shutting down")
		return nil
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	}
}
