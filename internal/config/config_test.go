// File: internal/config/config_test.go
package config

import (
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.ServerPort != "3000" {
		t.Errorf("ServerPort = %q, want 3000", cfg.ServerPort)
	}
	if cfg.TTSProvider != "google" {
		t.Errorf("TTSProvider = %q, want google", cfg.TTSProvider)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("StoreBackend = %q, want memory", cfg.StoreBackend)
	}
	if cfg.ChatModel != "gpt-4o-mini" {
		t.Errorf("ChatModel = %q", cfg.ChatModel)
	}
	if cfg.ChatMaxTokens != 1024 {
		t.Errorf("ChatMaxTokens = %d, want 1024", cfg.ChatMaxTokens)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "8090")
	t.Setenv("TTS_PROVIDER", "azure")
	t.Setenv("AZURE_SPEECH_REGION", "westeurope")
	t.Setenv("STORE_BACKEND", "sqlite")
	t.Setenv("CHAT_MAX_TOKENS", "256")

	cfg := Load()

	if cfg.ServerPort != "8090" {
		t.Errorf("ServerPort = %q", cfg.ServerPort)
	}
	if cfg.TTSProvider != "azure" || cfg.AzureSpeechRegion != "westeurope" {
		t.Errorf("azure settings = %q/%q", cfg.TTSProvider, cfg.AzureSpeechRegion)
	}
	if cfg.StoreBackend != "sqlite" {
		t.Errorf("StoreBackend = %q", cfg.StoreBackend)
	}
	if cfg.ChatMaxTokens != 256 {
		t.Errorf("ChatMaxTokens = %d", cfg.ChatMaxTokens)
	}
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("CHAT_MAX_TOKENS", "lots")

	cfg := Load()
	if cfg.ChatMaxTokens != 1024 {
		t.Errorf("ChatMaxTokens = %d, want default on parse failure", cfg.ChatMaxTokens)
	}
}
