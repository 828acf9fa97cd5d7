// SPDX-License-Identifier: EPL-2.0

// Package playback drives the lifecycle and volume of playing music and
// sounds on top of a backend.Backend.
//
// # Players
//
// A MusicPlayer and a SoundPlayer each own a pool of instances and a set of
// faders. Neither is safe for concurrent use: call Play, Stop, Kill and the
// volume setters from the thread that calls Update, or guard all of them
// with one mutex.
//
//	music := playback.NewMusicPlayer(b, settings)
//	id, err := music.Play(theme, playback.MusicOptions{Loop: true, FadeIn: true})
//
//	for range frames {
//		music.Update(dt)
//	}
//
// # Lifecycle
//
// Every instance moves through
//
//	silent -> fading-in -> playing -> fading-out -> disposing
//
// Play only registers a silent instance; the backend stream is started by
// the next Update, which also spends that frame's delta on the fade in.
// Instances without a fade skip straight to playing. A playing instance
// whose stream stops on its own is disposed. Stop fades an instance out
// over the configured duration, or in a single frame when not graceful.
// Kill halts the stream at once. Disposing instances are swept, their
// streams released and their slots recycled at the end of the Update
// that saw them disposing.
//
// # Volume
//
// The volume of an instance is the product of the master fader, its
// channel fader, the loudness curve applied to its type's volume, and the
// caller's attenuation. Faders are raw positions in [0,1] mapped through
// raw^LoudnessExponent.
//
// That product is computed at Play, floored at volume.Floor, and again by
// SetAttenuation when a source moves. When a fader moves, the change is
// applied as a decibel shift to every instance under it:
//
//	delta := ToDB(oldPerceived) - ToDB(newPerceived)
//	target = FromDB(ToDB(target) - delta)
//
// which equals multiplying by the fader's ratio without having to remember
// the other layers. Both logs floor at volume.Floor, so an instance
// silenced by a muted fader is audible again once the fader comes back up,
// and nothing reports playing while the master fader is at zero. Fades are
// always recomputed from the state timer and
// the current target, so a fader moving mid-fade never causes a jump.
//
// # Music and sounds
//
// Music channels are exclusive: playing on a channel fades out whatever
// owned it. Sound types may cap their voices; at the cap the VoicePolicy in
// Settings evicts the oldest or quietest voice, or rejects the request.
// Continuous sound types keep a single looping voice alive for as long as
// they keep being played.
package playback
