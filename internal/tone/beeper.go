package tone

import (
	"context"
	"fmt"
	"io"
	"math"
	"os"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/mediminder/mediminder/internal/logging"
)

const (
	sampleRate  = beep.SampleRate(44100)
	pitchHz     = 880 // A5, same pitch as the reminder chime everywhere else
	burstCount  = 10
	burstPeriod = 500 * time.Millisecond
	burstDecay  = 300 * time.Millisecond
	totalLength = 5 * time.Second

	startGain = 0.5
	endGain   = 0.001
)

// speakerInit is a test seam for speaker.Init.
var speakerInit = speaker.Init

// Beeper plays the reminder pattern through the system speaker. The
// speaker is initialized lazily on the first Play; if no audio backend
// is available, Beeper degrades to ringing the terminal bell instead.
// Play never panics and never reports errors to the caller.
type Beeper struct {
	log logging.Logger

	initOnce sync.Once
	ready    bool

	bell  io.Writer
	sleep func(time.Duration)
}

var _ Emitter = (*Beeper)(nil)

func NewBeeper(log logging.Logger) *Beeper {
	return &Beeper{log: log, bell: os.Stdout, sleep: time.Sleep}
}

// Play starts one reminder sequence. Concurrent calls are allowed: each
// owns an independent streamer and the speaker mixes them.
func (b *Beeper) Play() {
	b.initOnce.Do(func() {
		if err := speakerInit(sampleRate, sampleRate.N(time.Second/10)); err != nil {
			b.log.Warn(context.Background(), "audio unavailable, falling back to terminal bell", "error", err)
			return
		}
		b.ready = true
	})

	if !b.ready {
		go b.ringBell()
		return
	}
	speaker.Play(newSequence(sampleRate))
}

// ringBell approximates the tone pattern with the terminal bell.
func (b *Beeper) ringBell() {
	for i := 0; i < burstCount; i++ {
		fmt.Fprint(b.bell, "\a")
		b.sleep(burstPeriod)
	}
}

// sequence streams the full reminder pattern and then ends: a sine
// carrier gated into bursts, one per period, each decaying from
// startGain toward endGain over burstDecay.
type sequence struct {
	sr  beep.SampleRate
	pos int
	n   int
}

func newSequence(sr beep.SampleRate) *sequence {
	return &sequence{sr: sr, n: sr.N(totalLength)}
}

func (s *sequence) Stream(samples [][2]float64) (int, bool) {
	if s.pos >= s.n {
		return 0, false
	}
	n := 0
	for i := range samples {
		if s.pos >= s.n {
			break
		}
		v := s.valueAt(s.pos)
		samples[i][0] = v
		samples[i][1] = v
		s.pos++
		n++
	}
	return n, true
}

func (s *sequence) Err() error { return nil }

// valueAt computes the signal at sample index pos.
func (s *sequence) valueAt(pos int) float64 {
	offset := pos % s.sr.N(burstPeriod)
	decay := s.sr.N(burstDecay)
	if offset >= decay {
		return 0
	}
	progress := float64(offset) / float64(decay)
	gain := startGain * math.Pow(endGain/startGain, progress)
	t := float64(pos) / float64(s.sr)
	return gain * math.Sin(2*math.Pi*pitchHz*t)
}
