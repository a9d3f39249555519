package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/taddiemason/Gmail-MCP-Server/configs"
	"github.com/taddiemason/Gmail-MCP-Server/internal/app"
	"github.com/taddiemason/Gmail-MCP-Server/internal/audit"
	"github.com/taddiemason/Gmail-MCP-Server/internal/config"
	"github.com/taddiemason/Gmail-MCP-Server/internal/http/dispatch"
	"github.com/taddiemason/Gmail-MCP-Server/internal/limits"
	"github.com/taddiemason/Gmail-MCP-Server/internal/log"
	"github.com/taddiemason/Gmail-MCP-Server/internal/mcpserver"
	"github.com/taddiemason/Gmail-MCP-Server/internal/registry"
	"github.com/taddiemason/Gmail-MCP-Server/internal/render"
	"github.com/taddiemason/Gmail-MCP-Server/internal/startup"
	"github.com/taddiemason/Gmail-MCP-Server/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	var rendered []byte
	if cfg.RegistryPath != "" {
		rendered, err = render.File(cfg.RegistryPath)
	} else {
		var raw []byte
		raw, err = configs.Default()
		if err == nil {
			rendered, err = render.Bytes(configs.DefaultRegistryName, raw)
		}
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "registry error: %v\n", err)
		os.Exit(1)
	}

	reg, err := registry.Load(rendered)
	if err != nil {
		fmt.Fprintf(os.Stderr, "registry error: %v\n", err)
		os.Exit(1)
	}

	logger := log.New(reg.Service(), cfg.LogLevel)

	workerEnv := map[string]string{}
	if cfg.TokenEnv != "" {
		if token, ok := os.LookupEnv(cfg.TokenEnv); ok {
			workerEnv[cfg.TokenEnv] = token
		}
	}
	driver, err := worker.NewDriver(worker.Command{
		Path: cfg.WorkerCommand,
		Args: cfg.WorkerArgs,
		Env:  workerEnv,
	}, cfg.ToolTimeout, cfg.MaxOutputBytes, logger)
	if err != nil {
		logger.Error("worker driver init failed", "error", err)
		os.Exit(1)
	}

	limiter := limits.New(cfg.MaxConcurrent, cfg.RatePerSecond, cfg.RateBurst)

	baseCtx := context.Background()
	runCtx, cancel := context.WithCancel(baseCtx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP)
	go func() {
		sig := <-sigCh
		logger.Warn("shutdown requested", "signal", sig.String())
		cancel()
	}()

	if cfg.WorkerContainer != "" && cfg.WorkerCommand == "docker" {
		startup.Preflight(runCtx, cfg.WorkerCommand, []string{"inspect", cfg.WorkerContainer}, 10*time.Second, logger)
	}

	switch strings.ToLower(strings.TrimSpace(cfg.Transport)) {
	case "stdio":
		server, err := mcpserver.Build(reg, driver, limiter, logger)
		if err != nil {
			logger.Error("build mcp server failed", "error", err)
			os.Exit(1)
		}
		if err := server.Run(runCtx, &mcp.StdioTransport{}); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	default:
		handler := dispatch.NewHandler(reg, driver, limiter, audit.New(logger), logger)
		application, err := app.New(baseCtx, cfg, reg.Service(), handler, logger)
		if err != nil {
			logger.Error("http server init failed", "error", err)
			os.Exit(1)
		}
		if err := application.Run(runCtx); err != nil {
			logger.Error("runtime error", "error", err)
			os.Exit(1)
		}
	}
}
