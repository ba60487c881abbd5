package notify

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"

	"github.com/soocke/dwell-monitor/domain/dwell"
)

const (
	bellSampleRate   = beep.SampleRate(44100)
	bellDuration     = 600 * time.Millisecond
	bellAttack       = 5 * time.Millisecond
	bellFundRelease  = 550 * time.Millisecond
	bellOverRelease  = 300 * time.Millisecond
	bellFundamental  = 880.0
	bellOvertone     = 1760.0
	bellPulseSpacing = 150 * time.Millisecond
)

// Bell plays a short chime per expiry, one pulse per area number so the
// area can be told apart by ear.
type Bell struct {
	mu     sync.Mutex
	rate   beep.SampleRate
	volume float64
	play   func(beep.Streamer)
	logger *slog.Logger
}

// NewBell initializes the speaker. The returned Bell must be closed.
func NewBell(volume float64, logger *slog.Logger) (*Bell, error) {
	if err := speaker.Init(bellSampleRate, bellSampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	return newBell(bellSampleRate, volume, func(s beep.Streamer) { speaker.Play(s) }, logger), nil
}

func newBell(rate beep.SampleRate, volume float64, play func(beep.Streamer), logger *slog.Logger) *Bell {
	if volume <= 0 || volume > 1 {
		volume = 0.8
	}
	return &Bell{rate: rate, volume: volume, play: play, logger: logger}
}

func (b *Bell) Notify(ev dwell.ExpiryEvent) {
	if b == nil || b.play == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.play(b.Chime(ev.Index()))
	if b.logger != nil {
		b.logger.Debug("bell played", "area", ev.Index())
	}
}

// Chime returns the sound for an area: pulses chimes separated by a short gap.
func (b *Bell) Chime(pulses int) beep.Streamer {
	if pulses < 1 {
		pulses = 1
	}
	var parts []beep.Streamer
	for i := 0; i < pulses; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(b.rate.N(bellPulseSpacing)))
		}
		parts = append(parts, bellTone(b.rate, b.volume))
	}
	return beep.Seq(parts...)
}

// Close stops any queued chime.
func (b *Bell) Close() {
	if b == nil {
		return
	}
	speaker.Clear()
}

func bellTone(rate beep.SampleRate, volume float64) beep.Streamer {
	fund := newEnvelope(newSine(bellFundamental, bellDuration, rate), bellDuration, bellAttack, bellFundRelease, rate)
	over := newEnvelope(newSine(bellOvertone, bellDuration, rate), bellDuration, bellAttack, bellOverRelease, rate)
	mixed := beep.Mix(withVolume(fund, 0.7), withVolume(over, 0.3))
	return withVolume(mixed, volume)
}

// sine generates a fixed-length sine wave.
type sine struct {
	freq     float64
	phase    float64
	samples  int
	position int
	rate     beep.SampleRate
}

func newSine(freq float64, d time.Duration, rate beep.SampleRate) beep.Streamer {
	return &sine{freq: freq, samples: rate.N(d), rate: rate}
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if s.position >= s.samples {
			return i, i > 0
		}
		v := math.Sin(2 * math.Pi * s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
		s.position++
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// envelope applies a linear attack and release to a stream.
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	sustainSamples int
	totalSamples   int
}

func newEnvelope(s beep.Streamer, d, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(d)
	att := rate.N(attack)
	rel := rate.N(release)
	sus := total - att - rel
	if sus < 0 {
		sus = 0
	}
	return &envelope{streamer: s, attackSamples: att, releaseSamples: rel, sustainSamples: sus, totalSamples: total}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.attackSamples + e.sustainSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
			if vol < 0 {
				vol = 0
			}
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume maps to Silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}
