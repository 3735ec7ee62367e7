package telemetry

import (
	"context"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/process"
	"go.opentelemetry.io/otel"
)

var meter = otel.Meter("framedata/lib/telemetry")
var cpuGauge, _ = meter.Float64Gauge("process_cpu_percent")
var rssGauge, _ = meter.Int64Gauge("process_rss_mb")
var heapGauge, _ = meter.Int64Gauge("heap_alloc_mb")
var goroutineGauge, _ = meter.Int64Gauge("goroutine_count")

// InstrumentPerfStats records gauges of the current process every 15 seconds until
// ctx is done.
func InstrumentPerfStats(ctx context.Context) {
	self, err := process.NewProcessWithContext(ctx, int32(os.Getpid()))
	if err != nil {
		slog.Warn("failed to inspect own process, perf stats disabled", "err", err)
		return
	}

	go func() {
		var memStats runtime.MemStats
		ticker := time.NewTicker(time.Second * 15)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cpuPercent, err := self.CPUPercentWithContext(ctx)
				if err == nil {
					cpuGauge.Record(ctx, cpuPercent)
				} else {
					slog.Debug("failed to read cpu usage", "err", err)
				}
				memory, err := self.MemoryInfoWithContext(ctx)
				if err == nil {
					rssGauge.Record(ctx, int64(memory.RSS/1_000_000))
				} else {
					slog.Debug("failed to read memory usage", "err", err)
				}

				runtime.ReadMemStats(&memStats)
				heapGauge.Record(ctx, int64(memStats.HeapAlloc/1_000_000))
				goroutineGauge.Record(ctx, int64(runtime.NumGoroutine()))
			case <-ctx.Done():
				return
			}
		}
	}()
}
