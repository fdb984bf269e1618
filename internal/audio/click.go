// Package audio synthesizes the game's short square-wave clicks with beep
// and plays them in response to session events.
package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

const (
	sampleRate = beep.SampleRate(48000)

	masterGain = 0.45
	silence    = 0.0001 // Envelope floor; exponential ramps cannot reach zero
	attack     = 2 * time.Millisecond
	release    = 10 * time.Millisecond // Tail kept after the envelope ends
)

// Click is one square-wave blip. The pitch falls exponentially to half
// (never below 120Hz) and the level decays to silence over Duration.
type Click struct {
	Freq     float64
	Gain     float64
	Delay    time.Duration
	Duration time.Duration
}

// ClickGenerator streams a single Click.
type ClickGenerator struct {
	click Click
	sr    beep.SampleRate
	pos   int
	start int // First sample of the click after the delay
	total int
	phase float64
}

// NewClickGenerator creates a click streamer at the given sample rate.
func NewClickGenerator(sr beep.SampleRate, c Click) *ClickGenerator {
	start := sr.N(c.Delay)
	return &ClickGenerator{
		click: c,
		sr:    sr,
		start: start,
		total: start + sr.N(c.Duration+release),
	}
}

// Len returns the click length in samples, including the delay.
func (g *ClickGenerator) Len() int {
	return g.total
}

func (g *ClickGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}

	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}

		var s float64
		if g.pos >= g.start {
			t := float64(g.pos-g.start) / float64(g.sr)
			g.phase += g.freqAt(t) / float64(g.sr)
			g.phase -= math.Floor(g.phase)

			s = g.envelope(t) * masterGain
			if g.phase >= 0.5 {
				s = -s
			}
		}

		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *ClickGenerator) Err() error {
	return nil
}

// freqAt ramps the pitch from Freq to max(120, Freq/2) over the duration.
func (g *ClickGenerator) freqAt(t float64) float64 {
	d := g.click.Duration.Seconds()
	f0 := g.click.Freq
	f1 := math.Max(120, f0*0.5)
	if d <= 0 || t >= d {
		return f1
	}
	return f0 * math.Pow(f1/f0, t/d)
}

// envelope rises to Gain within the attack, then decays to silence.
func (g *ClickGenerator) envelope(t float64) float64 {
	gain := g.click.Gain
	a := attack.Seconds()
	d := g.click.Duration.Seconds()

	switch {
	case gain <= 0:
		return 0
	case t < a:
		return silence * math.Pow(gain/silence, t/a)
	case t < d:
		return gain * math.Pow(silence/gain, (t-a)/(d-a))
	default:
		return 0
	}
}
