// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// Kind selects the engine a type is played on.
type Kind int

const (
	KindSound Kind = iota
	KindMusic
)

func (k Kind) String() string {
	switch k {
	case KindSound:
		return "sound"
	case KindMusic:
		return "music"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k *Kind) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "sound", "":
		*k = KindSound
	case "music":
		*k = KindMusic
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidManifest, text)
	}
	return nil
}

// Mode is the playback mode of a sound type.
type Mode int

const (
	// ModeNormal sounds play once unless asked to loop.
	ModeNormal Mode = iota
	// ModeContinuous sounds loop for as long as they keep being played and
	// fade out shortly after the last request.
	ModeContinuous
	// ModePersistent sounds loop and survive transient stops.
	ModePersistent
)

func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeContinuous:
		return "continuous"
	case ModePersistent:
		return "persistent"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

func (m *Mode) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "normal", "":
		*m = ModeNormal
	case "continuous":
		*m = ModeContinuous
	case "persistent":
		*m = ModePersistent
	default:
		return fmt.Errorf("%w: mode %q", ErrInvalidManifest, text)
	}
	return nil
}

// Loops reports whether the mode implies looping playback.
func (m Mode) Loops() bool { return m != ModeNormal }

// Category groups types for bulk stops ("ambient", "ui", ...).
type Category string

// Type describes a family of sounds or a music track.
type Type struct {
	Name     string
	Kind     Kind
	Category Category

	// Voices caps concurrent instances of a sound type. Zero or less means
	// no cap. Ignored for music.
	Voices int

	// Volume is the raw relative volume in [0,1]; it goes through the
	// loudness curve like every other fader.
	Volume float64

	Pitch          float64
	PitchVariation float64

	Mode Mode

	// ContinuityFactor scales how long a continuous sound outlives its last
	// request.
	ContinuityFactor float64

	// FadeIn overrides the engine's fade-in duration in seconds when > 0.
	FadeIn float64

	Clips []*Clip
}

// NewSoundType returns a sound type with the usual defaults.
func NewSoundType(name string, category Category, clips ...*Clip) *Type {
	return &Type{
		Name:             name,
		Kind:             KindSound,
		Category:         category,
		Volume:           1,
		Pitch:            1,
		PitchVariation:   0.05,
		ContinuityFactor: 1,
		Clips:            clips,
	}
}

// NewMusicType returns a music type. Music is never pitch shifted.
func NewMusicType(name string, category Category, clips ...*Clip) *Type {
	return &Type{
		Name:             name,
		Kind:             KindMusic,
		Category:         category,
		Volume:           1,
		Pitch:            1,
		ContinuityFactor: 1,
		Clips:            clips,
	}
}

// Clip picks one of the type's clips uniformly, or returns nil when there
// are none. r may be nil.
func (t *Type) Clip(r *rand.Rand) *Clip {
	switch len(t.Clips) {
	case 0:
		return nil
	case 1:
		return t.Clips[0]
	}
	if r == nil {
		return t.Clips[rand.IntN(len(t.Clips))]
	}
	return t.Clips[r.IntN(len(t.Clips))]
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Kind.String() + ":" + t.Name
}
