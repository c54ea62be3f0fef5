package rconn

// Sink is the external observability collaborator spec.md §9 calls a
// "mutable global-style counters" pattern mapped onto "an external
// observability sink passed by reference": rather than incrementing
// package-level counters, a Connection reports coverage events to
// whatever Sink the embedding program supplied via WithSink, the same way
// the teacher wires a *zap.Logger through WithConnPoolLogger rather than
// calling a global logger.
//
// Inc is called with a short, stable event name ("sent", "received",
// or "flushed") each time that event occurs. Sinks
// must be safe for the one goroutine that drives the owning Connection;
// no concurrent calls are made.
type Sink interface {
	Inc(event string)
}

// noopSink is the default Sink: every event is discarded. Mirrors the
// teacher's zap.NewNop() default for loggers.
type noopSink struct{}

func (noopSink) Inc(string) {}
