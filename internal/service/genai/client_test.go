package genai

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"motionforge/internal/domain/models"
)

// stubProvider is a test implementation of GenerationProvider.
type stubProvider struct {
	mu        sync.Mutex
	calls     int
	response  string
	err       error
	ocrCalls  int
	extracted *models.ExtractedCase
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) GenerateSection(ctx context.Context, prompt string) (string, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return s.response, s.err
}

func (s *stubProvider) ExtractCase(ctx context.Context, data []byte, mimeType string) (*models.ExtractedCase, error) {
	return s.extracted, s.err
}

func (s *stubProvider) PerformOCR(ctx context.Context, data []byte, mimeType string) (string, error) {
	s.mu.Lock()
	s.ocrCalls++
	s.mu.Unlock()
	return s.response, s.err
}

func (s *stubProvider) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestClient_GenerateSection(t *testing.T) {
	ctx := context.Background()

	t.Run("forwards provider output", func(t *testing.T) {
		provider := &stubProvider{response: "Drafted text."}
		client := NewClient(provider, ClientOptions{}, testLogger())

		got, err := client.GenerateSection(ctx, "prompt")
		if err != nil {
			t.Fatalf("GenerateSection failed: %v", err)
		}
		if got != "Drafted text." {
			t.Errorf("got %q", got)
		}
	})

	t.Run("identical prompts served from cache", func(t *testing.T) {
		provider := &stubProvider{response: "Cached answer."}
		client := NewClient(provider, ClientOptions{CacheTTL: time.Minute}, testLogger())

		for i := 0; i < 3; i++ {
			if _, err := client.GenerateSection(ctx, "same prompt"); err != nil {
				t.Fatal(err)
			}
		}
		if provider.callCount() != 1 {
			t.Errorf("expected 1 provider call, got %d", provider.callCount())
		}

		// A different prompt misses
		if _, err := client.GenerateSection(ctx, "other prompt"); err != nil {
			t.Fatal(err)
		}
		if provider.callCount() != 2 {
			t.Errorf("expected cache miss for new prompt, got %d calls", provider.callCount())
		}
	})

	t.Run("empty output becomes placeholder", func(t *testing.T) {
		provider := &stubProvider{response: "  \n "}
		client := NewClient(provider, ClientOptions{}, testLogger())

		got, err := client.GenerateSection(ctx, "prompt")
		if err != nil {
			t.Fatal(err)
		}
		if got != NoContentPlaceholder {
			t.Errorf("expected placeholder, got %q", got)
		}
	})

	t.Run("provider errors propagate uncached", func(t *testing.T) {
		provider := &stubProvider{err: errors.New("rate limited")}
		client := NewClient(provider, ClientOptions{CacheTTL: time.Minute}, testLogger())

		if _, err := client.GenerateSection(ctx, "prompt"); err == nil {
			t.Fatal("expected error")
		}
		// Errors are not cached; the next call hits the provider again
		if _, err := client.GenerateSection(ctx, "prompt"); err == nil {
			t.Fatal("expected error")
		}
		if provider.callCount() != 2 {
			t.Errorf("expected 2 provider calls, got %d", provider.callCount())
		}
	})

	t.Run("pacing honors cancellation", func(t *testing.T) {
		provider := &stubProvider{response: "text"}
		// 1 rpm with burst 1: the second call would wait ~a minute
		client := NewClient(provider, ClientOptions{RequestsPerMinute: 1}, testLogger())

		if _, err := client.GenerateSection(ctx, "first"); err != nil {
			t.Fatal(err)
		}

		cancelCtx, cancel := context.WithTimeout(ctx, 20*time.Millisecond)
		defer cancel()
		if _, err := client.GenerateSection(cancelCtx, "second"); err == nil {
			t.Fatal("expected pacing wait to be cancelled")
		}
	})
}

func TestClient_OCRNotCached(t *testing.T) {
	provider := &stubProvider{response: "scanned text"}
	client := NewClient(provider, ClientOptions{CacheTTL: time.Minute}, testLogger())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := client.PerformOCR(ctx, []byte("doc"), "application/pdf"); err != nil {
			t.Fatal(err)
		}
	}
	if provider.ocrCalls != 2 {
		t.Errorf("OCR must never be cached, got %d calls", provider.ocrCalls)
	}
}
