// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

// MusicOptions describe one music request. The zero value plays once at
// full volume on channel 0 without a fade.
type MusicOptions struct {
	Loop    bool
	FadeIn  bool
	Channel int
	Bus     int

	// Attenuation in [0,1] is taken off the type's volume: 0 leaves it
	// untouched, 1 silences it.
	Attenuation float64
}

// MusicPlayer plays music. A channel has at most one owner: an instance
// on it that has not been asked to stop.
type MusicPlayer struct {
	engine
}

func NewMusicPlayer(b backend.Backend, settings *Settings, opts ...Option) *MusicPlayer {
	p := &MusicPlayer{}
	p.init(catalog.KindMusic, b, settings, opts)
	return p
}

// Play starts typ on opts.Channel, fading out the channel's current owner.
// An instance already bound to typ is restarted in place rather than
// duplicated. When typ resolves to no stream nothing changes and
// ErrNoStream is returned.
func (p *MusicPlayer) Play(typ *catalog.Type, opts MusicOptions) (ID, error) {
	if p.disposed {
		return 0, ErrDisposed
	}

	s, err := p.open(typ)
	if err != nil {
		return 0, err
	}

	in := p.pool.find(typ)
	for owner := range p.pool.match(byChannel(opts.Channel)) {
		if owner != in {
			p.stop(owner, true)
		}
	}

	if in != nil {
		p.log.Debugf("Restarting %v (%v) on channel %d", typ, in.id, opts.Channel)
		p.backend.Stop(in.stream)
		p.backend.Release(in.stream)
	} else {
		in = p.pool.obtain()
	}

	p.install(in, s, typ, opts.Channel, opts.Bus, opts.Loop, opts.FadeIn, typ.Pitch,
		p.targetVolume(typ, opts.Channel, opts.Attenuation))

	p.log.Debugf("Playing %v as %v on channel %d, target %.3f", typ, in.id, opts.Channel, in.target)
	return in.id, nil
}

// Owner returns the instance owning channel, if any.
func (p *MusicPlayer) Owner(channel int) (ID, bool) {
	for in := range p.pool.match(byChannel(channel)) {
		if in.state.Live() {
			return in.id, true
		}
	}
	return 0, false
}
