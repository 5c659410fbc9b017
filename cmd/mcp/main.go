package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "github.com/Balaji91221/resume-screening-app/internal/adapters/mcp"
	"github.com/Balaji91221/resume-screening-app/internal/bootstrap"
	"github.com/Balaji91221/resume-screening-app/internal/config"
	"github.com/Balaji91221/resume-screening-app/internal/observability/logging"
)

const serviceName = "resume-screening-mcp"

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("dotenv_load_failed", "error", err)
	}
	cfg := config.Load()
	slog.SetDefault(logging.NewStderr(serviceName, cfg.LogLevel, cfg.LogFormat))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	loaded, err := bootstrap.LoadModel(ctx, cfg)
	if err != nil {
		slog.Error("bootstrap_failed", "error", err)
		os.Exit(1)
	}

	s := mcpadapter.NewTools(loaded.ClassifyUC, loaded.Bundle).NewServer()
	slog.Info("mcp_serving", "transport", "stdio")
	if err := server.ServeStdio(s); err != nil {
		slog.Error("mcp_server_failed", "error", err)
		os.Exit(1)
	}
}
