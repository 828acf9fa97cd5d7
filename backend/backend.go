// SPDX-License-Identifier: EPL-2.0

// Package backend defines what the playback engines need from an audio
// output: per-stream transport controls and an instantaneous linear volume.
//
// Implementations live in the subpackages oto and beep. Both mix on their
// own audio goroutine; every method here may be called from the game loop
// at any time.
package backend

import "github.com/ik5/audmix/catalog"

// Stream is an opaque handle returned by Open. It is owned by exactly one
// playback instance until Release.
type Stream any

// Backend drives individual streams. Methods given a Stream the backend
// does not recognise, or one already released, do nothing.
type Backend interface {
	// Open prepares a paused stream for clip.
	Open(clip *catalog.Clip) (Stream, error)

	// Play starts or resumes s on the given bus.
	Play(s Stream, bus int)

	// Stop halts s. A stopped stream reports not playing.
	Stop(s Stream)

	// SetVolume sets the linear volume of s, in [0,1].
	SetVolume(s Stream, volume float64)

	SetLooping(s Stream, loop bool)

	// SetPitch sets the playback speed ratio; 1 is the original pitch.
	SetPitch(s Stream, pitch float64)

	// IsPlaying reports whether s is audible or about to be. It turns false
	// once a non-looping stream runs out of samples.
	IsPlaying(s Stream) bool

	// Release frees every resource behind s.
	Release(s Stream)
}
