package fieldsafe

import "time"

// FallbackReason identifies why a field left the primary matcher path.
type FallbackReason string

// Fallback reasons carried on diagnostic events.
const (
	// ReasonGuardrail: pathological pattern plus long input; the
	// primary matcher was skipped pre-emptively.
	ReasonGuardrail FallbackReason = "guardrail"
	// ReasonNoPermit: the admission pool was exhausted.
	ReasonNoPermit FallbackReason = "no-permit"
	// ReasonTimeout: the primary matcher exceeded its budget.
	ReasonTimeout FallbackReason = "timeout"
	// ReasonNoMatch: the primary matcher completed and rejected.
	ReasonNoMatch FallbackReason = "no-match"
	// ReasonBadPattern: the declared pattern failed to compile.
	ReasonBadPattern FallbackReason = "bad-pattern"
)

// Event is the structured diagnostic record emitted whenever a field
// is routed to the fallback path (or would be, with fallback disabled).
// A sustained spike of events with large InputLen values is the
// operational signal of ReDoS probing.
type Event struct {
	Time     time.Time      `json:"time"`
	Field    string         `json:"field"`
	Pattern  string         `json:"pattern"`
	InputLen int            `json:"inputLen"`
	Reason   FallbackReason `json:"reason"`
}

// EventSink receives diagnostic events. Implementations must be safe
// for concurrent use; Record should be cheap or internally buffered,
// since it sits on the validation path.
type EventSink interface {
	Record(event Event) error
}

// NopSink discards all events. It is the default sink.
type NopSink struct{}

// Record implements EventSink.
func (NopSink) Record(Event) error { return nil }
