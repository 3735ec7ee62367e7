package commands

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"framedata/internal/scrapers/supercombo"
	"framedata/lib/restyutil"
	"framedata/lib/serviceutil"
	"framedata/lib/telemetry"
)

var otelProviders telemetry.Telemetry

func InitTelemetry(ctx context.Context, verbose bool) {
	telemetry.InitSlog(verbose)

	if verbose {
		slog.DebugContext(ctx, "verbose logging enabled")
	}

	t, err := telemetry.SetupFromEnv(ctx, "framedata-cli")
	if errors.Is(err, os.ErrNotExist) {
		slog.DebugContext(ctx, "no telemetry.json5 found, telemetry disabled")
		return
	}
	if err != nil {
		serviceutil.Fatal("setup telemetry", err)
	}
	otelProviders = t
	telemetry.InstrumentPerfStats(ctx)
}

// ShutdownTelemetry flushes whatever the exporters still hold.
func ShutdownTelemetry() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := otelProviders.Shutdown(ctx)
	if err != nil {
		slog.Warn("failed to shutdown telemetry", "err", err)
	}
}

// setRestyDump makes the scraper dump every HTTP message to dir.
func setRestyDump(dir string) {
	if dir == "" {
		return
	}
	out, err := restyutil.NewFilesystemOutput(dir)
	if err != nil {
		slog.Warn("failed to create resty dump directory", "dir", dir, "err", err)
		return
	}
	supercombo.SetRestyInstrumentOutput(out)
}
