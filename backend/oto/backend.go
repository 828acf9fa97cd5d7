// SPDX-License-Identifier: EPL-2.0

// Package oto is a backend.Backend on github.com/hajimehoshi/oto/v2.
//
// Every stream gets its own oto player fed by a reader that applies pitch
// and loops in software. oto has no notion of buses; the bus argument of
// Play is only logged.
package oto

import (
	"fmt"

	"github.com/decred/slog"
	otov2 "github.com/hajimehoshi/oto/v2"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

type stream struct {
	name   string
	r      *reader
	player otov2.Player
}

// Backend owns the process-wide oto context. Only one may exist at a time.
type Backend struct {
	ctx        *otov2.Context
	sampleRate int
	channels   int
	log        slog.Logger
}

var _ backend.Backend = (*Backend)(nil)

// New opens the default output device. log may be nil.
func New(sampleRate, channels int, log slog.Logger) (*Backend, error) {
	if log == nil {
		log = slog.Disabled
	}

	ctx, ready, err := otov2.NewContext(sampleRate, channels, otov2.FormatSignedInt16LE)
	if err != nil {
		return nil, fmt.Errorf("opening oto context: %w", err)
	}
	<-ready

	log.Infof("Opened oto output: %d Hz, %d channels", sampleRate, channels)
	return &Backend{ctx: ctx, sampleRate: sampleRate, channels: channels, log: log}, nil
}

func (b *Backend) SampleRate() int { return b.sampleRate }
func (b *Backend) Channels() int   { return b.channels }

// Open creates a paused player for clip. Clips at another rate play at the
// right speed; the channel count must match the output.
func (b *Backend) Open(clip *catalog.Clip) (backend.Stream, error) {
	if clip.Channels != b.channels {
		return nil, fmt.Errorf("%w: %q has %d, output has %d",
			backend.ErrChannelMismatch, clip.Name, clip.Channels, b.channels)
	}
	if clip.Frames() == 0 {
		return nil, fmt.Errorf("%w: %q", backend.ErrEmptyClip, clip.Name)
	}

	r := newReader(clip, b.sampleRate)
	return &stream{name: clip.Name, r: r, player: b.ctx.NewPlayer(r)}, nil
}

func (b *Backend) get(s backend.Stream) *stream {
	st, ok := s.(*stream)
	if !ok || st == nil || st.player == nil {
		return nil
	}
	return st
}

func (b *Backend) Play(s backend.Stream, bus int) {
	if st := b.get(s); st != nil {
		b.log.Tracef("Playing %q on bus %d", st.name, bus)
		st.player.Play()
	}
}

func (b *Backend) Stop(s backend.Stream) {
	if st := b.get(s); st != nil {
		st.r.stop()
		st.player.Pause()
	}
}

func (b *Backend) SetVolume(s backend.Stream, volume float64) {
	if st := b.get(s); st != nil {
		st.player.SetVolume(volume)
	}
}

func (b *Backend) SetLooping(s backend.Stream, loop bool) {
	if st := b.get(s); st != nil {
		st.r.setLoop(loop)
	}
}

func (b *Backend) SetPitch(s backend.Stream, pitch float64) {
	if st := b.get(s); st != nil {
		st.r.setPitch(pitch)
	}
}

func (b *Backend) IsPlaying(s backend.Stream) bool {
	st := b.get(s)
	return st != nil && st.player.IsPlaying()
}

func (b *Backend) Release(s backend.Stream) {
	st := b.get(s)
	if st == nil {
		return
	}
	st.r.stop()
	if err := st.player.Close(); err != nil {
		b.log.Warnf("Closing player for %q: %v", st.name, err)
	}
	st.player = nil
}
