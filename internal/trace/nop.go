package trace

type nopTracer struct{}

func (nopTracer) Emit(*Event) {}
func (nopTracer) Flush() error { return nil }
func (nopTracer) Close() error { return nil }
func (nopTracer) Level() Level { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards every event.
var Nop Tracer = nopTracer{}

// OrNop returns t, or Nop when t is nil.
func OrNop(t Tracer) Tracer {
	if t == nil {
		return Nop
	}
	return t
}
