// Package monitor periodically logs the server's own resource usage.
package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/shirou/gopsutil/v4/process"
)

// Monitor logs CPU and memory figures for the running process.
type Monitor struct {
	interval time.Duration
	logger   *slog.Logger
	wg       sync.WaitGroup
	proc     *process.Process
}

// New returns nil when the process handle cannot be obtained or the interval
// is not positive. Callers treat a nil Monitor as disabled.
func New(interval time.Duration, logger *slog.Logger) *Monitor {
	if interval <= 0 {
		return nil
	}
	if logger == nil {
		logger = slog.Default()
	}
	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		logger.Error("failed to get process handle", "error", err)
		return nil
	}

	return &Monitor{
		interval: interval,
		logger:   logger,
		proc:     proc,
	}
}

// Run starts the sampling loop in the background. It stops when ctx is done.
func (m *Monitor) Run(ctx context.Context) {
	if m == nil {
		return
	}
	m.wg.Add(1)
	go func() {
		defer m.wg.Done()

		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()

		m.collect(ctx)

		for {
			select {
			case <-ctx.Done():
				m.logger.Debug("monitor stopped")
				return
			case <-ticker.C:
				m.collect(ctx)
			}
		}
	}()
}

// Wait blocks until the loop exits.
func (m *Monitor) Wait() {
	if m == nil {
		return
	}
	m.wg.Wait()
}

func (m *Monitor) collect(ctx context.Context) {
	cpu, err := m.proc.CPUPercentWithContext(ctx)
	if err != nil {
		m.logger.Warn("failed to get CPU percent", "error", err)
		cpu = 0
	}

	rss := uint64(0)
	if info, err := m.proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
		rss = info.RSS
	}

	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	mb := func(b uint64) float64 {
		return float64(b) / (1024 * 1024)
	}

	m.logger.LogAttrs(
		ctx,
		slog.LevelInfo,
		"resource",
		slog.String("cpu", fmt.Sprintf("%.2f%%", cpu)),
		slog.Int("gor", runtime.NumGoroutine()),
		slog.String("mem", fmt.Sprintf("rss:%.2fMB heap:%.2fMB", mb(rss), mb(ms.HeapAlloc))),
		slog.Uint64("gc", uint64(ms.NumGC)),
	)
}
