package supercombo

import (
	"framedata/lib/restyutil"

	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("framedata/internal/scrapers/supercombo")
var restyInstrumentOutput restyutil.InstrumentOutput

// SetRestyInstrumentOutput makes every client created afterwards dump its HTTP
// messages to out.
func SetRestyInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}

const (
	report_client_fetch = "client.fetch"
	report_cache_get    = "cache.get"
	report_cache_set    = "cache.set"
)
