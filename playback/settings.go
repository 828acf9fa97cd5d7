// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"
	"math"
	"strings"
)

// VoicePolicy decides what happens when a sound type is already playing
// as many voices as it allows.
type VoicePolicy int

const (
	// EvictOldest stops the voice that started first.
	EvictOldest VoicePolicy = iota
	// EvictQuietest stops the voice with the lowest target volume.
	EvictQuietest
	// Reject refuses the new voice with ErrVoiceLimit.
	Reject
)

var voicePolicyNames = [...]string{"oldest", "quietest", "reject"}

func (p VoicePolicy) String() string {
	if p >= 0 && int(p) < len(voicePolicyNames) {
		return voicePolicyNames[p]
	}
	return fmt.Sprintf("VoicePolicy(%d)", int(p))
}

func (p VoicePolicy) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

func (p *VoicePolicy) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range voicePolicyNames {
		if n == name {
			*p = VoicePolicy(i)
			return nil
		}
	}
	return fmt.Errorf("%w: voice policy %q", ErrInvalidSettings, text)
}

// Settings are shared by pointer between the players of one mixer. Changes
// take effect on the next call that reads them; fades in progress pick up
// new durations on the next Update.
type Settings struct {
	// LoudnessExponent shapes every fader: perceived = raw^exponent.
	LoudnessExponent float64

	// Fade durations in seconds.
	MusicFadeIn  float64
	MusicFadeOut float64
	SoundFadeIn  float64
	SoundFadeOut float64

	// SoundContinuousTimeout is how long, in seconds, a continuous sound
	// keeps playing after its last Play, before Type.ContinuityFactor.
	SoundContinuousTimeout float64

	VoicePolicy VoicePolicy
}

func DefaultSettings() *Settings {
	return &Settings{
		LoudnessExponent:       2,
		MusicFadeIn:            2,
		MusicFadeOut:           2,
		SoundFadeIn:            0.05,
		SoundFadeOut:           0.25,
		SoundContinuousTimeout: 0.1,
		VoicePolicy:            EvictOldest,
	}
}

func (s *Settings) Validate() error {
	if !(s.LoudnessExponent >= 1) || math.IsInf(s.LoudnessExponent, 0) {
		return fmt.Errorf("%w: LoudnessExponent %v must be >= 1", ErrInvalidSettings, s.LoudnessExponent)
	}

	durations := []struct {
		name string
		v    float64
	}{
		{"MusicFadeIn", s.MusicFadeIn},
		{"MusicFadeOut", s.MusicFadeOut},
		{"SoundFadeIn", s.SoundFadeIn},
		{"SoundFadeOut", s.SoundFadeOut},
		{"SoundContinuousTimeout", s.SoundContinuousTimeout},
	}
	for _, d := range durations {
		if !(d.v >= 0) || math.IsInf(d.v, 0) {
			return fmt.Errorf("%w: %s %v must be a finite duration >= 0", ErrInvalidSettings, d.name, d.v)
		}
	}

	if s.VoicePolicy < EvictOldest || s.VoicePolicy > Reject {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, s.VoicePolicy)
	}
	return nil
}
