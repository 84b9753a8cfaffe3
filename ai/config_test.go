package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "none", cfg.Token)
	assert.Equal(t, 2, cfg.ExpansionCount)
	assert.Equal(t, 30*time.Second, cfg.CallTimeout)
	assert.False(t, cfg.ChatConfigured())
}

func TestNewConfig_Options(t *testing.T) {
	cfg := NewConfig(
		WithHost("http://ai.internal:8080/v1"),
		WithEmbeddingModel("embeddinggemma"),
		WithChatModel("qwen2.5:3b"),
		WithToken("secret"),
		WithExpansionCount(3),
		WithCallTimeout(10*time.Second),
	)

	assert.Equal(t, "http://ai.internal:8080/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://ai.internal:8080/v1", cfg.ChatHost)
	assert.Equal(t, "qwen2.5:3b", cfg.ChatModel)
	assert.Equal(t, "secret", cfg.Token)
	assert.Equal(t, 3, cfg.ExpansionCount)
	assert.True(t, cfg.ChatConfigured())
}

func TestConfig_Normalize(t *testing.T) {
	cfg := NewConfig(
		WithEmbeddingHost("http://localhost:11434"),
		WithChatHost("http://localhost:11434/"),
		WithChatModel("qwen2.5:3b"),
	)
	cfg.Normalize()

	assert.Equal(t, "http://localhost:11434/v1", cfg.EmbeddingHost)
	assert.Equal(t, "http://localhost:11434/v1", cfg.ChatHost)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:    "default is valid",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "chat fully configured is valid",
			mutate:  func(c *Config) { c.ChatHost = "http://localhost:11434"; c.ChatModel = "qwen2.5:3b" },
			wantErr: false,
		},
		{
			name:    "missing embedding host",
			mutate:  func(c *Config) { c.EmbeddingHost = "" },
			wantErr: true,
		},
		{
			name:    "missing embedding model",
			mutate:  func(c *Config) { c.EmbeddingModel = "" },
			wantErr: true,
		},
		{
			name:    "chat host without model",
			mutate:  func(c *Config) { c.ChatHost = "http://localhost:11434" },
			wantErr: true,
		},
		{
			name:    "chat model without host",
			mutate:  func(c *Config) { c.ChatModel = "qwen2.5:3b" },
			wantErr: true,
		},
		{
			name:    "missing token",
			mutate:  func(c *Config) { c.Token = "" },
			wantErr: true,
		},
		{
			name:    "zero expansion count",
			mutate:  func(c *Config) { c.ExpansionCount = 0 },
			wantErr: true,
		},
		{
			name:    "zero timeout",
			mutate:  func(c *Config) { c.CallTimeout = 0 },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
