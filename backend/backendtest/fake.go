// SPDX-License-Identifier: EPL-2.0

// Package backendtest provides an in-memory backend.Backend for tests.
package backendtest

import (
	"errors"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

// ErrOpen is returned by Open while Fake.FailOpen is set.
var ErrOpen = errors.New("backendtest: open failed")

// Stream records everything done to one handle.
type Stream struct {
	ID       int
	Clip     *catalog.Clip
	Bus      int
	Playing  bool
	Started  bool
	Stopped  bool
	Released bool
	Looping  bool
	Pitch    float64
	Volume   float64

	// Volumes is every value passed to SetVolume, in order.
	Volumes []float64
}

// Fake is a backend whose streams play until told otherwise.
type Fake struct {
	// FailOpen makes Open return ErrOpen.
	FailOpen bool
	// Mute makes Play leave streams not playing, as a backend that fails
	// silently would.
	Mute bool

	streams []*Stream
}

var _ backend.Backend = (*Fake)(nil)

func New() *Fake { return &Fake{} }

func (f *Fake) Open(clip *catalog.Clip) (backend.Stream, error) {
	if f.FailOpen {
		return nil, ErrOpen
	}
	s := &Stream{ID: len(f.streams) + 1, Clip: clip, Pitch: 1, Volume: 1}
	f.streams = append(f.streams, s)
	return s, nil
}

func (f *Fake) get(s backend.Stream) *Stream {
	fs, ok := s.(*Stream)
	if !ok || fs == nil || fs.Released {
		return nil
	}
	return fs
}

func (f *Fake) Play(s backend.Stream, bus int) {
	if fs := f.get(s); fs != nil {
		fs.Bus = bus
		fs.Started = true
		fs.Stopped = false
		fs.Playing = !f.Mute
	}
}

func (f *Fake) Stop(s backend.Stream) {
	if fs := f.get(s); fs != nil {
		fs.Playing = false
		fs.Stopped = true
	}
}

func (f *Fake) SetVolume(s backend.Stream, volume float64) {
	if fs := f.get(s); fs != nil {
		fs.Volume = volume
		fs.Volumes = append(fs.Volumes, volume)
	}
}

func (f *Fake) SetLooping(s backend.Stream, loop bool) {
	if fs := f.get(s); fs != nil {
		fs.Looping = loop
	}
}

func (f *Fake) SetPitch(s backend.Stream, pitch float64) {
	if fs := f.get(s); fs != nil {
		fs.Pitch = pitch
	}
}

func (f *Fake) IsPlaying(s backend.Stream) bool {
	fs := f.get(s)
	return fs != nil && fs.Playing
}

func (f *Fake) Release(s backend.Stream) {
	if fs := f.get(s); fs != nil {
		fs.Playing = false
		fs.Released = true
	}
}

// Finish ends s as if its clip ran out.
func (f *Fake) Finish(s backend.Stream) {
	if fs := f.get(s); fs != nil {
		fs.Playing = false
	}
}

// Streams returns every stream opened so far.
func (f *Fake) Streams() []*Stream { return f.streams }

// Last returns the most recently opened stream, or nil.
func (f *Fake) Last() *Stream {
	if len(f.streams) == 0 {
		return nil
	}
	return f.streams[len(f.streams)-1]
}

// Playing counts streams currently playing.
func (f *Fake) Playing() int {
	n := 0
	for _, s := range f.streams {
		if s.Playing {
			n++
		}
	}
	return n
}

// Unreleased counts streams not yet released.
func (f *Fake) Unreleased() int {
	n := 0
	for _, s := range f.streams {
		if !s.Released {
			n++
		}
	}
	return n
}
