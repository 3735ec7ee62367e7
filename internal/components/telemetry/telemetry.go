package telemetry

import (
	"fmt"
)

// API is what components report problems and counts through, so tests can assert
// on them with a Recorder instead of scraping logs.
type API interface {
	// ReportBroken reports a component that broke in a way someone should look at.
	//
	// `id` names the component, not the line that failed: a page fetch failing inside
	// the loader is `pipeline.fetch`, whatever the transport error was. Details go
	// into params (errors, urls).
	//
	// ids are lowercase `<struct or interface>.<method>`, underscores inside long
	// names. ScopedAPI adds the package part.
	ReportBroken(id string, params ...any)

	// ReportWarning reports something that did not break anything but may be worth
	// investigating, like a page that was fetched but yielded no moves.
	ReportWarning(id string, params ...any)

	// ReportDebug is dropped unless verbose logging is on.
	ReportDebug(msg string, params ...any)

	// ReportCount reports the count of something at the time of the call. Counts are
	// points in time and should not be summed.
	ReportCount(id string, count int64)
}

// ScopedAPI is a telemetry API that attaches a namespace for a given API, kind of like creating a
// "sub" logger using things like log.New(), in which you can define the prefix for the logs.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
