// Package tone emits the audible medication-reminder pattern: ten short
// 880 Hz tones at half-second intervals, each fading out, five seconds
// in total.
package tone

// Emitter is the capability interface for the reminder alert.
// Play is fire-and-forget: synchronous to invoke, asynchronous in
// effect, and never returns an error to the caller.
type Emitter interface {
	Play()
}

// Nop is an Emitter that does nothing. Useful in tests.
type Nop struct{}

func (Nop) Play() {}
