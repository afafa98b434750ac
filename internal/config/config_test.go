package config

import (
	"testing"

	"github.com/pelletier/go-toml/v2"
)

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	if cfg.Server.Port != 20371 {
		t.Errorf("Port = %d, want 20371", cfg.Server.Port)
	}
	if cfg.Engine.MinChunkSize != 1000 {
		t.Errorf("MinChunkSize = %d, want 1000", cfg.Engine.MinChunkSize)
	}
}

// TestConfigOverlay 配置文件只覆盖显式给出的字段，其余保持默认值
func TestConfigOverlay(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	data := []byte("[server]\nport = 8080\n")
	if err := toml.Unmarshal(data, cfg); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Engine.MinChunkSize != 1000 {
		t.Errorf("MinChunkSize = %d, want default 1000", cfg.Engine.MinChunkSize)
	}
}
