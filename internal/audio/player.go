package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/vovakirdan/colormerge/internal/games/merge"
)

// Sink plays streamers.
type Sink interface {
	Play(s beep.Streamer)
}

// Speaker plays streamers on the default audio device through one mixer.
type Speaker struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// NewSpeaker creates a speaker. Call Initialize before sounds are audible.
func NewSpeaker() *Speaker {
	return &Speaker{mixer: &beep.Mixer{}}
}

// Initialize opens the audio device. Without a device it returns an error
// and the speaker stays silent.
func (sp *Speaker) Initialize() error {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if sp.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(40*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sp.mixer)
	sp.initialized = true
	return nil
}

// Play adds s to the mix. It is a no-op before Initialize.
func (sp *Speaker) Play(s beep.Streamer) {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}
	speaker.Lock()
	sp.mixer.Add(s)
	speaker.Unlock()
}

// Close silences the mixer and releases the device.
func (sp *Speaker) Close() {
	sp.mu.Lock()
	defer sp.mu.Unlock()

	if !sp.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sp.initialized = false
}

// Observer turns session events into clicks.
type Observer struct {
	sink Sink
	sr   beep.SampleRate
}

var _ merge.Observer = (*Observer)(nil)

// NewObserver creates an observer playing into sink.
func NewObserver(sink Sink) *Observer {
	return &Observer{sink: sink, sr: sampleRate}
}

// TurnPlayed plays the move, spawn and merge clicks together.
func (o *Observer) TurnPlayed(ev merge.TurnEvent) {
	o.play(TurnClicks(ev))
}

// SessionEnded plays the game over click.
func (o *Observer) SessionEnded(merge.EndEvent) {
	o.play([]Click{GameOverClick()})
}

func (o *Observer) play(clicks []Click) {
	streamers := make([]beep.Streamer, len(clicks))
	for i, c := range clicks {
		streamers[i] = NewClickGenerator(o.sr, c)
	}
	o.sink.Play(beep.Mix(streamers...))
}
