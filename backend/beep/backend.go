// SPDX-License-Identifier: EPL-2.0

// Package beep is a backend.Backend on github.com/faiface/beep.
//
// Each stream is a chain mixed by the beep speaker:
//
//	clip -> beep.Resampler (pitch) -> effects.Volume -> beep.Ctrl -> beep.Callback
//
// The callback marks the stream finished once the clip runs out. Like the
// oto backend, buses are not modelled.
package beep

import (
	"fmt"
	"math"
	"sync/atomic"
	"time"

	"github.com/decred/slog"
	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

const resampleQuality = 4

type stream struct {
	name      string
	clip      *clipStreamer
	resampler *beep.Resampler
	ratio     float64 // clip rate over output rate
	volume    *effects.Volume
	ctrl      *beep.Ctrl
	started   bool
	playing   atomic.Bool
}

// Backend mixes through the process-wide beep speaker.
type Backend struct {
	sampleRate beep.SampleRate
	log        slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

// New initialises the speaker with the given buffer duration. log may be
// nil.
func New(sampleRate int, buffer time.Duration, log slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Disabled
	}

	sr := beep.SampleRate(sampleRate)
	if err := speaker.Init(sr, sr.N(buffer)); err != nil {
		return nil, fmt.Errorf("initialising speaker: %w", err)
	}

	log.Infof("Opened beep speaker: %d Hz, %s buffer", sampleRate, buffer)
	return &Backend{sampleRate: sr, log: log}, nil
}

func (b *Backend) SampleRate() int { return int(b.sampleRate) }

// Channels is always 2; the speaker is stereo.
func (b *Backend) Channels() int { return 2 }

// Open builds a paused chain for clip. Any rate and channel count is
// accepted.
func (b *Backend) Open(clip *catalog.Clip) (backend.Stream, error) {
	if clip.Frames() == 0 {
		return nil, fmt.Errorf("%w: %q", backend.ErrEmptyClip, clip.Name)
	}

	st := &stream{name: clip.Name, clip: newClipStreamer(clip), ratio: 1}
	if clip.SampleRate > 0 {
		st.ratio = float64(clip.SampleRate) / float64(b.sampleRate)
	}
	st.resampler = beep.ResampleRatio(resampleQuality, st.ratio, st.clip)
	st.volume = &effects.Volume{Streamer: st.resampler, Base: 2}
	st.ctrl = &beep.Ctrl{Streamer: st.volume, Paused: true}
	return st, nil
}

func get(s backend.Stream) *stream {
	st, ok := s.(*stream)
	if !ok || st == nil {
		return nil
	}
	return st
}

func (b *Backend) Play(s backend.Stream, bus int) {
	st := get(s)
	if st == nil {
		return
	}

	speaker.Lock()
	if st.ctrl.Streamer == nil {
		speaker.Unlock()
		return
	}
	st.ctrl.Paused = false
	start := !st.started
	st.started = true
	speaker.Unlock()

	st.playing.Store(true)
	if start {
		b.log.Tracef("Playing %q on bus %d", st.name, bus)
		speaker.Play(beep.Seq(st.ctrl, beep.Callback(func() {
			st.playing.Store(false)
		})))
	}
}

func (b *Backend) Stop(s backend.Stream) {
	st := get(s)
	if st == nil {
		return
	}
	speaker.Lock()
	st.ctrl.Streamer = nil
	speaker.Unlock()
	st.playing.Store(false)
}

// SetVolume maps the linear volume onto the base 2 exponent effects.Volume
// expects.
func (b *Backend) SetVolume(s backend.Stream, volume float64) {
	st := get(s)
	if st == nil {
		return
	}
	speaker.Lock()
	st.volume.Silent = volume <= 0
	if volume > 0 {
		st.volume.Volume = math.Log2(volume)
	}
	speaker.Unlock()
}

func (b *Backend) SetLooping(s backend.Stream, loop bool) {
	st := get(s)
	if st == nil {
		return
	}
	speaker.Lock()
	st.clip.loop = loop
	speaker.Unlock()
}

func (b *Backend) SetPitch(s backend.Stream, pitch float64) {
	st := get(s)
	if st == nil || pitch <= 0 || math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		return
	}
	speaker.Lock()
	st.resampler.SetRatio(st.ratio * pitch)
	speaker.Unlock()
}

func (b *Backend) IsPlaying(s backend.Stream) bool {
	st := get(s)
	return st != nil && st.playing.Load()
}

// Release stops s; the speaker drops the chain on its next pass.
func (b *Backend) Release(s backend.Stream) {
	b.Stop(s)
}
