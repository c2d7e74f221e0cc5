// Package audio plays short feedback tones for captured responses.
// Audio is best-effort: when the speaker cannot be initialized the player
// degrades to silence rather than failing the session.
package audio

import (
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(44100)

	toneFreq     = 880
	toneDuration = 50 * time.Millisecond
)

// Player implements experiment.Feedback over the system speaker.
type Player struct {
	ready bool
}

// NewPlayer initializes the speaker. A failed init is reported but leaves a
// usable, silent player.
func NewPlayer() (*Player, error) {
	err := speaker.Init(sampleRate, sampleRate.N(time.Second/10))
	return &Player{ready: err == nil}, err
}

// NewSilentPlayer returns a player that never sounds, for --no-audio runs.
func NewSilentPlayer() *Player {
	return &Player{}
}

// ResponseTone plays a short confirmation beep.
func (p *Player) ResponseTone() {
	if !p.ready {
		return
	}
	sine, err := generators.SineTone(sampleRate, toneFreq)
	if err != nil {
		return
	}
	speaker.Play(beep.Take(sampleRate.N(toneDuration), sine))
}

// Close shuts the speaker down.
func (p *Player) Close() {
	if p.ready {
		speaker.Close()
	}
}
