// SPDX-License-Identifier: EPL-2.0

package audmix

import (
	"fmt"
	"math/rand/v2"

	"github.com/decred/slog"
	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
	"github.com/ik5/audmix/playback"
)

type config struct {
	settings *playback.Settings
	log      slog.Logger
	rng      *rand.Rand
}

// Option configures a Mixer.
type Option func(*config)

// WithSettings shares s with both players. Later changes to s are seen
// live.
func WithSettings(s *playback.Settings) Option {
	return func(c *config) { c.settings = s }
}

func WithLogger(log slog.Logger) Option {
	return func(c *config) { c.log = log }
}

// WithRand seeds clip choice and pitch variation, mostly for tests.
func WithRand(r *rand.Rand) Option {
	return func(c *config) { c.rng = r }
}

// Mixer drives a music player and a sound player on one backend.
type Mixer struct {
	settings *playback.Settings
	music    *playback.MusicPlayer
	sound    *playback.SoundPlayer
	log      slog.Logger
}

// New returns a mixer on b. It fails only when the settings are invalid.
func New(b backend.Backend, opts ...Option) (*Mixer, error) {
	c := config{
		settings: playback.DefaultSettings(),
		log:      slog.Disabled,
	}
	for _, opt := range opts {
		opt(&c)
	}
	if c.settings == nil {
		c.settings = playback.DefaultSettings()
	}
	if c.log == nil {
		c.log = slog.Disabled
	}
	if err := c.settings.Validate(); err != nil {
		return nil, fmt.Errorf("audmix: %w", err)
	}

	popts := []playback.Option{playback.WithLogger(c.log)}
	if c.rng != nil {
		popts = append(popts, playback.WithRand(c.rng))
	}

	return &Mixer{
		settings: c.settings,
		music:    playback.NewMusicPlayer(b, c.settings, popts...),
		sound:    playback.NewSoundPlayer(b, c.settings, popts...),
		log:      c.log,
	}, nil
}

func (m *Mixer) Music() *playback.MusicPlayer { return m.music }
func (m *Mixer) Sound() *playback.SoundPlayer { return m.sound }
func (m *Mixer) Settings() *playback.Settings { return m.settings }

func (m *Mixer) SetMasterVolume(raw float64) {
	m.music.SetMasterVolume(raw)
	m.sound.SetMasterVolume(raw)
}

func (m *Mixer) MasterVolume() float64 { return m.music.MasterVolume() }

// SetChannelVolume sets the channel fader on both players.
func (m *Mixer) SetChannelVolume(channel int, raw float64) {
	m.music.SetChannelVolume(channel, raw)
	m.sound.SetChannelVolume(channel, raw)
}

func (m *Mixer) SetMusicChannelVolume(channel int, raw float64) {
	m.music.SetChannelVolume(channel, raw)
}

func (m *Mixer) SetSoundChannelVolume(channel int, raw float64) {
	m.sound.SetChannelVolume(channel, raw)
}

func (m *Mixer) PlayMusic(typ *catalog.Type, opts playback.MusicOptions) (playback.ID, error) {
	return m.music.Play(typ, opts)
}

func (m *Mixer) PlaySound(typ *catalog.Type, opts playback.SoundOptions) (playback.ID, error) {
	return m.sound.Play(typ, opts)
}

// Play starts typ on the player matching its kind. IDs from the two
// players are independent.
func (m *Mixer) Play(typ *catalog.Type, channel, bus int, loop, fadeIn bool) (playback.ID, error) {
	if typ == nil {
		return 0, playback.ErrNoStream
	}
	if typ.Kind == catalog.KindMusic {
		return m.music.Play(typ, playback.MusicOptions{Loop: loop, FadeIn: fadeIn, Channel: channel, Bus: bus})
	}
	return m.sound.Play(typ, playback.SoundOptions{Loop: loop, FadeIn: fadeIn, Channel: channel, Bus: bus})
}

// Stop stops every instance of typ and returns how many were stopped.
func (m *Mixer) Stop(typ *catalog.Type, graceful bool) int {
	return m.music.StopType(typ, graceful) + m.sound.StopType(typ, graceful)
}

func (m *Mixer) StopCategory(c catalog.Category, graceful bool) int {
	return m.music.StopCategory(c, graceful) + m.sound.StopCategory(c, graceful)
}

func (m *Mixer) StopChannel(channel int, graceful bool) int {
	return m.music.StopChannel(channel, graceful) + m.sound.StopChannel(channel, graceful)
}

// KillAll halts everything at once, without fades.
func (m *Mixer) KillAll() int {
	return m.music.KillAll() + m.sound.KillAll()
}

// SetMusicAttenuation retargets a music instance returned by PlayMusic.
func (m *Mixer) SetMusicAttenuation(id playback.ID, attenuation float64) bool {
	return m.music.SetAttenuation(id, attenuation)
}

// SetSoundAttenuation retargets a sound instance returned by PlaySound.
// Music and sound IDs come from separate pools, hence the two methods.
func (m *Mixer) SetSoundAttenuation(id playback.ID, attenuation float64) bool {
	return m.sound.SetAttenuation(id, attenuation)
}

func (m *Mixer) IsPlaying(typ *catalog.Type) bool {
	return m.music.IsPlayingType(typ) || m.sound.IsPlayingType(typ)
}

func (m *Mixer) IsPlayingChannel(channel int) bool {
	return m.music.IsPlayingChannel(channel) || m.sound.IsPlayingChannel(channel)
}

// Update advances both players by delta seconds.
func (m *Mixer) Update(delta float64) {
	m.music.Update(delta)
	m.sound.Update(delta)
}

// Dispose stops and releases every stream. It is safe to call more than
// once; afterwards Play fails with playback.ErrDisposed and every other
// method does nothing.
func (m *Mixer) Dispose() {
	m.music.Dispose()
	m.sound.Dispose()
	m.log.Debugf("Mixer disposed")
}
