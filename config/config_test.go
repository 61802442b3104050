package config

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestBuildDefaults(t *testing.T) {
	v := viper.New()
	setDefaults(v)

	cfg, err := build(v)
	if err != nil {
		t.Fatalf("build() error = %v", err)
	}
	if cfg.Store.Backend != BackendFile || cfg.Store.Key != "sqlite_db_binary" {
		t.Errorf("Store = %+v", cfg.Store)
	}
	if cfg.JWT.AccessExpiry != 15*time.Minute || cfg.Queue.Scope != "doctor" {
		t.Errorf("JWT = %+v, Queue = %+v", cfg.JWT, cfg.Queue)
	}
}

func TestBuildOverrides(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]interface{}
		check   func(*Config) bool
		wantErr error
	}{
		{
			name:  "backend is case insensitive",
			set:   map[string]interface{}{"STORE_BACKEND": "Redis"},
			check: func(c *Config) bool { return c.Store.Backend == BackendRedis },
		},
		{
			name:  "bad expiry falls back",
			set:   map[string]interface{}{"JWT_ACCESS_EXPIRY": "soon"},
			check: func(c *Config) bool { return c.JWT.AccessExpiry == 15*time.Minute },
		},
		{
			name:  "quota and clinic queue",
			set:   map[string]interface{}{"STORE_MAX_SNAPSHOT_BYTES": 5 << 20, "QUEUE_SCOPE": "CLINIC"},
			check: func(c *Config) bool { return c.Store.MaxSnapshotBytes == 5<<20 && c.Queue.Scope == "clinic" },
		},
		{
			name:    "unknown backend",
			set:     map[string]interface{}{"STORE_BACKEND": "s3"},
			wantErr: ErrUnknownBackend,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			setDefaults(v)
			for k, val := range tt.set {
				v.Set(k, val)
			}

			cfg, err := build(v)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("build() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("build() error = %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("build() = %+v", cfg)
			}
		})
	}
}
