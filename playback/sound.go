// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"cmp"
	"fmt"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

// SoundOptions describe one sound request.
type SoundOptions struct {
	// Pitch overrides the type's randomised pitch when > 0.
	Pitch float64

	// Loop forces looping; continuous and persistent types always loop.
	Loop bool

	FadeIn  bool
	Channel int
	Bus     int

	// Attenuation in [0,1] is taken off the type's volume, typically from
	// the distance to the listener.
	Attenuation float64
}

// SoundPlayer plays sound effects with a per type voice cap.
type SoundPlayer struct {
	engine

	victims []*instance
}

func NewSoundPlayer(b backend.Backend, settings *Settings, opts ...Option) *SoundPlayer {
	p := &SoundPlayer{}
	p.init(catalog.KindSound, b, settings, opts)
	return p
}

// Play starts a voice of typ.
//
// A continuous type that is already playing is kept alive instead and the
// existing ID is returned. When typ is at its voice cap the configured
// VoicePolicy either makes room by stopping voices at once or fails with
// ErrVoiceLimit.
func (p *SoundPlayer) Play(typ *catalog.Type, opts SoundOptions) (ID, error) {
	if p.disposed {
		return 0, ErrDisposed
	}
	if typ == nil {
		return 0, ErrNoStream
	}

	if typ.Mode == catalog.ModeContinuous {
		if in := p.touch(typ, opts.Attenuation); in != nil {
			return in.id, nil
		}
	}

	voices := p.voices(typ)
	excess := 0
	if typ.Voices > 0 && voices >= typ.Voices {
		if p.settings.VoicePolicy == Reject {
			p.log.Debugf("Rejecting %v: %d of %d voices", typ, voices, typ.Voices)
			return 0, fmt.Errorf("%w: %v has %d voices", ErrVoiceLimit, typ, voices)
		}
		excess = voices - typ.Voices + 1
	}

	s, err := p.open(typ)
	if err != nil {
		return 0, err
	}
	if excess > 0 {
		p.evict(typ, excess)
	}

	pitch := opts.Pitch
	if pitch <= 0 {
		pitch = typ.Pitch + (2*p.rng.Float64()-1)*typ.PitchVariation
	}
	pitch = max(pitch, minPitch)

	in := p.pool.obtain()
	p.install(in, s, typ, opts.Channel, opts.Bus, opts.Loop || typ.Mode.Loops(), opts.FadeIn, pitch,
		p.targetVolume(typ, opts.Channel, opts.Attenuation))
	return in.id, nil
}

const minPitch = 0.01

// touch keeps a continuous sound alive and retargets it.
func (p *SoundPlayer) touch(typ *catalog.Type, attenuation float64) *instance {
	for in := range p.pool.match(byType(typ)) {
		if in.state.Live() {
			in.touched = 0
			in.target = p.targetVolume(typ, in.channel, attenuation)
			return in
		}
	}
	return nil
}

// voices counts the instances of typ that have not been asked to stop.
func (p *SoundPlayer) voices(typ *catalog.Type) int {
	n := 0
	for in := range p.pool.match(byType(typ)) {
		if in.state.Live() {
			n++
		}
	}
	return n
}

// evict stops n voices of typ at once, chosen by the voice policy.
func (p *SoundPlayer) evict(typ *catalog.Type, n int) {
	p.victims = p.victims[:0]
	for in := range p.pool.match(byType(typ)) {
		if in.state.Live() {
			p.victims = append(p.victims, in)
		}
	}

	quietest := p.settings.VoicePolicy == EvictQuietest
	for range n {
		best := -1
		for i, in := range p.victims {
			if in == nil {
				continue
			}
			if best < 0 || before(in, p.victims[best], quietest) {
				best = i
			}
		}
		if best < 0 {
			return
		}
		p.log.Debugf("Evicting %v (%v) for a new voice", typ, p.victims[best].id)
		p.stop(p.victims[best], false)
		p.victims[best] = nil
	}
}

func before(a, b *instance, quietest bool) bool {
	if quietest {
		if c := cmp.Compare(a.target, b.target); c != 0 {
			return c < 0
		}
	}
	return a.seq < b.seq
}

// StopTransient stops every sound except those of persistent types.
func (p *SoundPlayer) StopTransient(graceful bool) int {
	return p.stopMatching(func(in *instance) bool {
		return in.typ == nil || in.typ.Mode != catalog.ModePersistent
	}, graceful)
}

// Voices returns how many voices of typ have not been asked to stop.
func (p *SoundPlayer) Voices(typ *catalog.Type) int { return p.voices(typ) }
