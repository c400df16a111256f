package genai

import (
	"testing"

	"motionforge/internal/config"
)

func TestSetupProvider(t *testing.T) {
	t.Run("lorem provider", func(t *testing.T) {
		cfg := &config.Config{DefaultProvider: "lorem"}
		provider, err := SetupProvider(cfg, testLogger())
		if err != nil {
			t.Fatalf("SetupProvider failed: %v", err)
		}
		if provider.Name() != "lorem" {
			t.Errorf("got provider %q", provider.Name())
		}
	})

	t.Run("unknown provider fails fast", func(t *testing.T) {
		cfg := &config.Config{DefaultProvider: "gemini"}
		if _, err := SetupProvider(cfg, testLogger()); err == nil {
			t.Error("expected error for unknown provider")
		}
	})
}
