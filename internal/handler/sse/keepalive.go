package sse

import (
	"log/slog"
	"sync"
	"time"
)

// KeepAliveWriter abstracts the mechanism for writing keep-alive messages
// so the strategy can be tested without a real HTTP connection.
type KeepAliveWriter interface {
	WriteKeepAlive() error
}

// TickerKeepAlive sends keep-alive pings at fixed intervals until stopped
// or until a write fails (connection dropped).
type TickerKeepAlive struct {
	interval time.Duration
	done     chan struct{}
	stop     sync.Once
}

// NewTickerKeepAlive creates a new ticker-based keep-alive strategy.
func NewTickerKeepAlive(interval time.Duration) *TickerKeepAlive {
	return &TickerKeepAlive{
		interval: interval,
		done:     make(chan struct{}),
	}
}

// Start begins sending keep-alive pings on the configured interval.
// Returns a channel that closes when keep-alive terminates.
func (k *TickerKeepAlive) Start(writer KeepAliveWriter, logger *slog.Logger) <-chan struct{} {
	ticker := time.NewTicker(k.interval)
	stopChan := make(chan struct{})

	go func() {
		defer close(stopChan)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if err := writer.WriteKeepAlive(); err != nil {
					logger.Warn("keep-alive write failed, stopping", "error", err)
					return
				}
			case <-k.done:
				return
			}
		}
	}()

	return stopChan
}

// Stop terminates the keep-alive mechanism. Safe to call multiple
// times, including from concurrent goroutines.
func (k *TickerKeepAlive) Stop() {
	k.stop.Do(func() {
		close(k.done)
	})
}
