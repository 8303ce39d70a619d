// Package audio plays a bump tone whenever a bounce is applied
// A missing audio device is not an error for the simulation; the manager just stays silent
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/pkg/errors"

	"github.com/lixenwraith/mazecar/collision"
	"github.com/lixenwraith/mazecar/parameter"
)

const sampleRate = beep.SampleRate(parameter.AudioSampleRate)

// SoundManager owns the speaker and a mixer all bumps are queued on
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	played      int
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

// Initialize opens the audio device and starts the mixer
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration))
	if err != nil {
		return errors.Wrap(err, "initializing speaker")
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.initialized = false
}

// PlayBump queues one bump; returns false when audio is not running
func (sm *SoundManager) PlayBump(left, right bool) bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return false
	}

	bump, err := NewBump(sampleRate, BumpFrequency(left, right), parameter.BumpDuration)
	if err != nil {
		return false
	}

	speaker.Lock()
	sm.mixer.Add(bump)
	speaker.Unlock()
	sm.played++
	return true
}

// OnBounce adapts PlayBump to the simulation's bounce hook
func (sm *SoundManager) OnBounce(ev collision.BounceEvent) {
	sm.PlayBump(ev.Left, ev.Right)
}

// Played returns the number of bumps queued so far
func (sm *SoundManager) Played() int {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.played
}
