// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/backend/backendtest"
	"github.com/ik5/audmix/catalog"
)

func testClip(name string) *catalog.Clip {
	return &catalog.Clip{Name: name, SampleRate: 48000, Channels: 2, Samples: make([]float32, 9600)}
}

func musicType(name string) *catalog.Type {
	return catalog.NewMusicType(name, "music", testClip(name))
}

func soundType(name string, voices int) *catalog.Type {
	t := catalog.NewSoundType(name, "sfx", testClip(name))
	t.Voices = voices
	t.PitchVariation = 0
	return t
}

func testRand() *rand.Rand { return rand.New(rand.NewPCG(7, 11)) }

func newMusic(t *testing.T) (*MusicPlayer, *backendtest.Fake) {
	t.Helper()
	fake := backendtest.New()
	return NewMusicPlayer(fake, DefaultSettings(), WithRand(testRand())), fake
}

func newSound(t *testing.T, policy VoicePolicy) (*SoundPlayer, *backendtest.Fake) {
	t.Helper()
	fake := backendtest.New()
	s := DefaultSettings()
	s.VoicePolicy = policy
	return NewSoundPlayer(fake, s, WithRand(testRand())), fake
}

// streamOf returns the fake stream behind id.
func streamOf(t *testing.T, e *engine, id ID) *backendtest.Stream {
	t.Helper()
	in := e.pool.get(id)
	if in == nil {
		t.Fatalf("instance %v not found", id)
	}
	return in.stream.(*backendtest.Stream)
}

func mustInfo(t *testing.T, e *engine, id ID) Info {
	t.Helper()
	info, ok := e.Instance(id)
	if !ok {
		t.Fatalf("Instance(%v) not found", id)
	}
	return info
}

func near(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

// nopBackend accepts everything and keeps every stream playing.
type nopBackend struct{}

type nopStream struct{ n int }

func (nopBackend) Open(*catalog.Clip) (backend.Stream, error) { return &nopStream{}, nil }
func (nopBackend) Play(backend.Stream, int)                   {}
func (nopBackend) Stop(backend.Stream)                        {}
func (nopBackend) SetVolume(backend.Stream, float64)          {}
func (nopBackend) SetLooping(backend.Stream, bool)            {}
func (nopBackend) SetPitch(backend.Stream, float64)           {}
func (nopBackend) IsPlaying(backend.Stream) bool              { return true }
func (nopBackend) Release(backend.Stream)                     {}
