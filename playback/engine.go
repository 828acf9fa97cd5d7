// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"math"
	"math/rand/v2"

	"github.com/decred/slog"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
	"github.com/ik5/audmix/volume"
)

// Option configures a player.
type Option func(*engine)

// WithLogger sets the logger; the default discards everything.
func WithLogger(log slog.Logger) Option {
	return func(e *engine) {
		if log != nil {
			e.log = log
		}
	}
}

// WithRand sets the source used for clip choice and pitch variation.
func WithRand(r *rand.Rand) Option {
	return func(e *engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// engine is the part shared by MusicPlayer and SoundPlayer. It is not safe
// for concurrent use.
type engine struct {
	kind     catalog.Kind
	backend  backend.Backend
	settings *Settings
	volumes  *ChannelVolumes
	pool     Pool
	log      slog.Logger
	rng      *rand.Rand
	seq      uint64
	disposed bool
}

func (e *engine) init(kind catalog.Kind, b backend.Backend, settings *Settings, opts []Option) {
	if settings == nil {
		settings = DefaultSettings()
	}
	e.kind = kind
	e.backend = b
	e.settings = settings
	e.volumes = NewChannelVolumes(settings)
	e.log = slog.Disabled
	e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	for _, opt := range opts {
		opt(e)
	}
}

func (e *engine) fadeOutDuration() float64 {
	if e.kind == catalog.KindMusic {
		return e.settings.MusicFadeOut
	}
	return e.settings.SoundFadeOut
}

func (e *engine) fadeInDuration(typ *catalog.Type) float64 {
	if typ.FadeIn > 0 {
		return typ.FadeIn
	}
	if e.kind == catalog.KindMusic {
		return e.settings.MusicFadeIn
	}
	return e.settings.SoundFadeIn
}

// targetVolume multiplies every layer for a new instance. attenuation is
// the caller's share, in [0,1], taken off the top. The result never drops
// below volume.Floor, so an instance started under a muted layer comes back
// once that layer is raised.
func (e *engine) targetVolume(typ *catalog.Type, channel int, attenuation float64) float64 {
	return math.Max(volume.Floor, e.volumes.Gain(channel)*
		volume.Perceived(typ.Volume, e.settings.LoudnessExponent)*
		(1-volume.Clamp(attenuation, 0, 1)))
}

// open resolves typ to a fresh backend stream.
func (e *engine) open(typ *catalog.Type) (backend.Stream, error) {
	if typ == nil {
		return nil, ErrNoStream
	}
	clip := typ.Clip(e.rng)
	if clip == nil {
		return nil, ErrNoStream
	}
	s, err := e.backend.Open(clip)
	if err != nil {
		e.log.Warnf("Opening clip %q of %v: %v", clip.Name, typ, err)
		return nil, ErrNoStream
	}
	if s == nil {
		return nil, ErrNoStream
	}
	return s, nil
}

// install fills in a fresh or reused instance and leaves it SILENT.
func (e *engine) install(in *instance, s backend.Stream, typ *catalog.Type, channel, bus int, loop, fadeIn bool, pitch, target float64) {
	id := in.id
	in.reset()
	in.id = id
	in.stream = s
	in.typ = typ
	in.channel = channel
	in.bus = bus
	in.looping = loop
	in.fadeIn = fadeIn
	in.fadeInDur = e.fadeInDuration(typ)
	in.pitch = pitch
	in.target = target
	e.seq++
	in.seq = e.seq
}

func (e *engine) push(in *instance, v float64) {
	v = volume.Clamp(v, volume.Floor, 1)
	in.volume = v
	e.backend.SetVolume(in.stream, v)
}

func progress(timer, duration float64) float64 {
	if duration <= 0 {
		return 1
	}
	return volume.Clamp(timer/duration, 0, 1)
}

// step advances one instance by delta seconds.
func (e *engine) step(in *instance, delta float64) {
	if in.stream == nil {
		in.enter(StateDisposing)
		return
	}

	exp := e.settings.LoudnessExponent

	// Starting takes no time: delta goes to the state entered here.
	if in.state == StateSilent {
		e.push(in, volume.Floor)
		e.backend.SetLooping(in.stream, in.looping)
		e.backend.SetPitch(in.stream, in.pitch)
		e.backend.Play(in.stream, in.bus)
		if in.fadeIn {
			in.enter(StateFadingIn)
		} else {
			in.enter(StatePlaying)
		}
	}

	switch in.state {
	case StateFadingIn:
		in.timer += delta
		if e.lapsed(in, delta) {
			return
		}
		if in.timer <= in.fadeInDur {
			e.push(in, volume.Lerp(volume.Floor, in.target, volume.EaseIn(progress(in.timer, in.fadeInDur), exp)))
			return
		}
		in.enter(StatePlaying)
		delta = 0
		fallthrough

	case StatePlaying:
		in.timer += delta
		if e.lapsed(in, delta) {
			return
		}
		e.push(in, in.target)
		if !e.backend.IsPlaying(in.stream) {
			in.enter(StateDisposing)
		}

	case StateFadingOut:
		in.timer += delta
		dur := e.fadeOutDuration()
		if in.timer > dur {
			e.backend.Stop(in.stream)
			in.enter(StateDisposing)
			return
		}
		e.push(in, volume.Lerp(in.fadeFrom, volume.Floor, volume.EaseOut(progress(in.timer, dur), exp)))
	}
}

// lapsed ages a continuous sound and starts its fade out once nobody has
// played it for long enough.
func (e *engine) lapsed(in *instance, delta float64) bool {
	if !in.continuous() {
		return false
	}
	in.touched += delta
	if in.touched <= e.settings.SoundContinuousTimeout*in.typ.ContinuityFactor {
		return false
	}
	e.stop(in, true)
	return true
}

// stop starts a fade out. Instances never started are dropped outright;
// those already stopping are left alone.
func (e *engine) stop(in *instance, graceful bool) bool {
	switch in.state {
	case StateSilent:
		in.enter(StateDisposing)
		return true
	case StateFadingIn, StatePlaying:
		in.enter(StateFadingOut)
		in.fadeFrom = in.volume
		if !graceful {
			in.timer = math.MaxFloat64
		}
		return true
	}
	return false
}

func (e *engine) kill(in *instance) bool {
	if in.state == StateDisposing {
		return false
	}
	if in.stream != nil {
		e.backend.Stop(in.stream)
	}
	in.enter(StateDisposing)
	return true
}

func (e *engine) stopMatching(pred func(*instance) bool, graceful bool) int {
	if e.disposed {
		return 0
	}
	n := 0
	for in := range e.pool.match(pred) {
		if e.stop(in, graceful) {
			n++
		}
	}
	return n
}

func (e *engine) killMatching(pred func(*instance) bool) int {
	if e.disposed {
		return 0
	}
	n := 0
	for in := range e.pool.match(pred) {
		if e.kill(in) {
			n++
		}
	}
	return n
}

func (e *engine) shift(pred func(*instance) bool, deltaDB float64) {
	if deltaDB == 0 {
		return
	}
	for in := range e.pool.match(pred) {
		in.target = volume.Shift(in.target, deltaDB)
		if in.state == StateFadingOut {
			in.fadeFrom = volume.Shift(in.fadeFrom, deltaDB)
		}
	}
}

// powered reports whether the master fader lets anything through.
func (e *engine) powered() bool {
	return e.volumes.MasterPerceived() > volume.Floor
}

func (e *engine) isPlaying(pred func(*instance) bool) bool {
	if e.disposed || !e.powered() {
		return false
	}
	for in := range e.pool.match(pred) {
		if in.state.Audible() && e.backend.IsPlaying(in.stream) {
			return true
		}
	}
	return false
}

// SetMasterVolume sets the master fader and rescales every instance.
func (e *engine) SetMasterVolume(raw float64) {
	if e.disposed {
		return
	}
	e.shift(everything, e.volumes.SetMaster(raw))
}

func (e *engine) MasterVolume() float64 { return e.volumes.Master() }

// SetChannelVolume sets one channel fader and rescales the instances on it.
func (e *engine) SetChannelVolume(channel int, raw float64) {
	if e.disposed {
		return
	}
	e.shift(byChannel(channel), e.volumes.SetChannel(channel, raw))
}

func (e *engine) ChannelVolume(channel int) float64 { return e.volumes.Channel(channel) }

// Volumes exposes the fader registry.
func (e *engine) Volumes() *ChannelVolumes { return e.volumes }

func (e *engine) Settings() *Settings { return e.settings }

// StopType stops every instance of typ and returns how many were stopped.
func (e *engine) StopType(typ *catalog.Type, graceful bool) int {
	return e.stopMatching(byType(typ), graceful)
}

func (e *engine) StopCategory(c catalog.Category, graceful bool) int {
	return e.stopMatching(byCategory(c), graceful)
}

func (e *engine) StopChannel(channel int, graceful bool) int {
	return e.stopMatching(byChannel(channel), graceful)
}

func (e *engine) StopAll(graceful bool) int {
	return e.stopMatching(everything, graceful)
}

// StopInstance stops one instance. It reports false for unknown IDs and
// instances already stopping.
func (e *engine) StopInstance(id ID, graceful bool) bool {
	if e.disposed {
		return false
	}
	in := e.pool.get(id)
	return in != nil && e.stop(in, graceful)
}

// KillType halts every instance of typ without a fade. They are swept by
// the next Update.
func (e *engine) KillType(typ *catalog.Type) int {
	return e.killMatching(byType(typ))
}

func (e *engine) KillCategory(c catalog.Category) int {
	return e.killMatching(byCategory(c))
}

func (e *engine) KillAll() int {
	return e.killMatching(everything)
}

// Update advances every instance by delta seconds and sweeps those that
// finished. Call it once per frame.
func (e *engine) Update(delta float64) {
	if e.disposed {
		return
	}
	if !(delta >= 0) || math.IsInf(delta, 0) {
		delta = 0
	}

	e.pool.sweep(func(in *instance) bool {
		e.step(in, delta)
		if in.state != StateDisposing {
			return false
		}
		if in.stream != nil {
			e.backend.Release(in.stream)
		}
		return true
	})
}

// SetAttenuation retargets one instance that has not been asked to stop,
// as when its source moves relative to the listener. It reports whether id
// named such an instance.
func (e *engine) SetAttenuation(id ID, attenuation float64) bool {
	if e.disposed {
		return false
	}
	in := e.pool.get(id)
	if in == nil || !in.state.Live() {
		return false
	}
	in.target = e.targetVolume(in.typ, in.channel, attenuation)
	return true
}

// IsPlaying reports whether any instance is audible while the master fader
// is up.
func (e *engine) IsPlaying() bool { return e.isPlaying(everything) }

func (e *engine) IsPlayingType(typ *catalog.Type) bool { return e.isPlaying(byType(typ)) }

func (e *engine) IsPlayingCategory(c catalog.Category) bool { return e.isPlaying(byCategory(c)) }

func (e *engine) IsPlayingChannel(channel int) bool { return e.isPlaying(byChannel(channel)) }

func (e *engine) IsPlayingInstance(id ID) bool {
	if e.disposed || !e.powered() {
		return false
	}
	in := e.pool.get(id)
	return in != nil && in.state.Audible() && e.backend.IsPlaying(in.stream)
}

// Instance returns a snapshot of one instance.
func (e *engine) Instance(id ID) (Info, bool) {
	in := e.pool.get(id)
	if in == nil {
		return Info{}, false
	}
	return in.info(), true
}

// Instances returns a snapshot of every instance not yet swept.
func (e *engine) Instances() []Info {
	out := make([]Info, 0, e.pool.Len())
	for in := range e.pool.match(everything) {
		out = append(out, in.info())
	}
	return out
}

// Len returns the number of instances not yet swept.
func (e *engine) Len() int { return e.pool.Len() }

// Disposed reports whether Dispose has been called.
func (e *engine) Disposed() bool { return e.disposed }

// Dispose stops and releases every stream and empties the pool. Later
// calls do nothing; Play then fails with ErrDisposed.
func (e *engine) Dispose() {
	if e.disposed {
		return
	}
	n := e.pool.Len()
	e.pool.sweep(func(in *instance) bool {
		if in.stream != nil {
			e.backend.Stop(in.stream)
			e.backend.Release(in.stream)
		}
		return true
	})
	e.disposed = true
	e.log.Debugf("Disposed %v player with %d instances", e.kind, n)
}
