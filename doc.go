// SPDX-License-Identifier: EPL-2.0

// Package audmix is a mixing and playback-lifecycle layer for games. It sits
// between gameplay code and an audio backend that can start, stop and loop
// streams and set their volume.
//
// A Mixer pairs a music player with a sound player. It handles layered
// volume (master, channel, type and per call), perceptual fades when
// starting and stopping, voice limits for sounds and channel exclusivity
// for music. Instances are pooled, so a running game does not allocate per
// frame.
//
// # Quick Start
//
//	out, _ := oto.New(48000, 2, nil)
//	mix, _ := audmix.New(out)
//	defer mix.Dispose()
//
//	loader := &catalog.Loader{Registry: formats.NewRegistry(), SampleRate: 48000, Channels: 2}
//	clip, _ := loader.Load("music/theme.ogg")
//	theme := catalog.NewMusicType("theme", "music", clip)
//
//	mix.Play(theme, 0, 0, true, true)
//
//	for running {
//		mix.Update(frameSeconds)
//	}
//
// Update must be called once per frame. Nothing plays until the first
// Update after a Play.
//
// # Packages
//
//   - volume: decibel conversion, loudness curve and fade easing
//   - playback: the players, their faders and the instance state machine
//   - catalog: sound and music types, clips and a file loader
//   - backend: the output contract, with oto and beep implementations
//   - audio and formats: the decoding pipeline used by the loader
//
// # Volume
//
// Faders take raw positions in [0,1], which go through raw^LoudnessExponent
// so that a linear slider sounds linear. Moving a fader shifts everything
// under it by the fader's change in decibels:
//
//	mix.SetMasterVolume(0.5)          // every instance, both players
//	mix.SetChannelVolume(2, 0.8)      // channel 2 on both players
//	mix.SetSoundChannelVolume(1, 0)   // mute sound channel 1
//
// # Concurrency
//
// A Mixer is not safe for concurrent use. Backends mix on their own
// goroutine, but every Mixer call must come from one goroutine, or be
// serialised by the caller.
package audmix
