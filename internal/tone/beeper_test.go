package tone

import (
	"bytes"
	"errors"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mediminder/mediminder/internal/logging"
)

func drain(s *sequence) int {
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		total += n
		if !ok {
			return total
		}
	}
}

func TestSequence_TotalLength(t *testing.T) {
	s := newSequence(sampleRate)
	got := drain(s)
	assert.Equal(t, sampleRate.N(totalLength), got, "sequence must span exactly five seconds")

	n, ok := s.Stream(make([][2]float64, 16))
	assert.Zero(t, n)
	assert.False(t, ok, "a finished sequence must stay finished")
}

func TestSequence_BurstEnvelope(t *testing.T) {
	s := newSequence(sampleRate)
	period := sampleRate.N(burstPeriod)
	decay := sampleRate.N(burstDecay)

	for burst := 0; burst < burstCount; burst++ {
		start := burst * period

		// Peak gain somewhere near the burst start.
		peak := 0.0
		for pos := start; pos < start+decay/10; pos++ {
			peak = math.Max(peak, math.Abs(s.valueAt(pos)))
		}
		assert.Greater(t, peak, 0.2, "burst %d should start loud", burst)

		// Silent in the gap after the decay window.
		for pos := start + decay; pos < start+period; pos += decay / 3 {
			assert.Zero(t, s.valueAt(pos), "burst %d gap must be silent", burst)
		}
	}
}

func TestSequence_DecayIsMonotonicAcrossBurst(t *testing.T) {
	s := newSequence(sampleRate)
	decay := sampleRate.N(burstDecay)

	gainAt := func(offset int) float64 {
		progress := float64(offset) / float64(decay)
		return startGain * math.Pow(endGain/startGain, progress)
	}
	assert.InDelta(t, startGain, gainAt(0), 1e-9)
	assert.Less(t, gainAt(decay-1), 0.01, "burst must fade close to silence")
	assert.Greater(t, gainAt(decay/2), gainAt(decay-1))

	// Samples outside the envelope are exactly zero.
	assert.Zero(t, s.valueAt(decay))
}

func TestBeeper_FallsBackToBellWhenAudioUnavailable(t *testing.T) {
	origInit := speakerInit
	t.Cleanup(func() { speakerInit = origInit })
	speakerInit = func(beep.SampleRate, int) error { return errors.New("no audio device") }

	var mu sync.Mutex
	var bell bytes.Buffer
	done := make(chan struct{})

	b := NewBeeper(logging.Nop())
	b.bell = writerFunc(func(p []byte) (int, error) {
		mu.Lock()
		defer mu.Unlock()
		return bell.Write(p)
	})
	rung := 0
	b.sleep = func(time.Duration) {
		rung++
		if rung == burstCount {
			close(done)
		}
	}

	require.NotPanics(t, b.Play)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("bell fallback never completed")
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, burstCount, bytes.Count(bell.Bytes(), []byte("\a")))
}

func TestBeeper_ConcurrentPlayDoesNotPanic(t *testing.T) {
	origInit := speakerInit
	t.Cleanup(func() { speakerInit = origInit })
	speakerInit = func(beep.SampleRate, int) error { return errors.New("no audio device") }

	b := NewBeeper(logging.Nop())
	b.bell = writerFunc(func(p []byte) (int, error) { return len(p), nil })
	b.sleep = func(time.Duration) {}

	require.NotPanics(t, func() {
		b.Play()
		b.Play()
	})
}

func TestNop_Play(t *testing.T) {
	require.NotPanics(t, Nop{}.Play)
}

type writerFunc func(p []byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }
