// Copyright 2025 The Go STF Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Command stf-server runs the STF streaming agent server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.opentelemetry.io/otel"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/go-stf/stf"
	"github.com/go-stf/stf/config"
	"github.com/go-stf/stf/engine"
	"github.com/go-stf/stf/server"
	"github.com/go-stf/stf/server/session"
	"github.com/go-stf/stf/server/stream"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := cfg.Logging.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, err := openStore(ctx, cfg.Database)
	if err != nil {
		return err
	}

	tracer := otel.GetTracerProvider().Tracer("github.com/go-stf/stf")

	bridge, err := stream.NewBridge(engine.Echo{}, store,
		stream.WithLogger(logger),
		stream.WithTracer(tracer),
		stream.WithMaxTurns(cfg.Engine.MaxTurns),
	)
	if err != nil {
		return err
	}

	srv, err := server.New(bridge,
		server.WithAddr(cfg.Server.Addr),
		server.WithEndpoint(cfg.Server.Endpoint),
		server.WithLogger(logger),
		server.WithTracer(tracer),
		server.WithModelDefaults(modelDefaults(cfg.Engine)),
		server.WithAuthKey(authKey(cfg.Auth)),
	)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start(ctx)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}

const shutdownTimeout = 10 * time.Second

func openStore(ctx context.Context, cfg config.DatabaseConfig) (session.Store, error) {
	if cfg.Driver == "memory" {
		return session.NewMemoryStore(), nil
	}

	if dir := filepath.Dir(cfg.DSN); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating database folder: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(cfg.DSN), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	store, err := session.NewDatabaseStore(session.DatabaseStoreConfig{
		DB:          db,
		CreateTable: true,
	})
	if err != nil {
		return nil, err
	}
	if err := store.Initialize(ctx); err != nil {
		return nil, err
	}
	return store, nil
}

func modelDefaults(cfg config.EngineConfig) stf.ModelConfig {
	defaults := stf.DefaultModelConfig()
	if cfg.ModelName != "" {
		defaults.ModelName = cfg.ModelName
	}
	return defaults
}

func authKey(cfg config.AuthConfig) []byte {
	if !cfg.Enabled {
		return nil
	}
	return []byte(cfg.Secret)
}
