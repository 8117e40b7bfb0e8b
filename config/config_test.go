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

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config is invalid: %v", err)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
server:
  addr: ":9090"
database:
  driver: memory
engine:
  model_name: gpt-5
logging:
  level: debug
  format: json
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff(":9090", cfg.Server.Addr); diff != "" {
		t.Errorf("addr mismatch (-want +got):\n%s", diff)
	}
	if cfg.Database.Driver != "memory" {
		t.Errorf("driver = %q, want memory", cfg.Database.Driver)
	}
	if cfg.Engine.ModelName != "gpt-5" {
		t.Errorf("model name = %q, want gpt-5", cfg.Engine.ModelName)
	}
	// Unset fields keep their defaults.
	if cfg.Server.Endpoint != "/stf/extract" {
		t.Errorf("endpoint = %q, want default", cfg.Server.Endpoint)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv(EnvAddr, ":7070")
	t.Setenv(EnvAuthSecret, "topsecret")
	t.Setenv(EnvLogLevel, "warn")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr != ":7070" {
		t.Errorf("addr = %q, want :7070", cfg.Server.Addr)
	}
	if !cfg.Auth.Enabled || cfg.Auth.Secret != "topsecret" {
		t.Errorf("auth = %+v, want enabled with secret", cfg.Auth)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("log level = %q, want warn", cfg.Logging.Level)
	}
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		mutate  func(*Config)
		wantErr bool
	}{
		"success: defaults": {
			mutate: func(*Config) {},
		},
		"error: empty addr": {
			mutate:  func(c *Config) { c.Server.Addr = "" },
			wantErr: true,
		},
		"error: unknown driver": {
			mutate:  func(c *Config) { c.Database.Driver = "oracle" },
			wantErr: true,
		},
		"error: sqlite without dsn": {
			mutate:  func(c *Config) { c.Database.DSN = "" },
			wantErr: true,
		},
		"error: auth enabled without secret": {
			mutate:  func(c *Config) { c.Auth.Enabled = true },
			wantErr: true,
		},
		"error: non-positive max turns": {
			mutate:  func(c *Config) { c.Engine.MaxTurns = 0 },
			wantErr: true,
		},
		"error: bogus log level": {
			mutate:  func(c *Config) { c.Logging.Level = "shout" },
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoggingConfig_NewLogger(t *testing.T) {
	t.Parallel()

	for _, format := range []string{"text", "json"} {
		logger := LoggingConfig{Level: "info", Format: format}.NewLogger()
		if logger == nil {
			t.Errorf("NewLogger(%s) = nil", format)
		}
	}
}
