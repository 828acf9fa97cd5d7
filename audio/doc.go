// SPDX-License-Identifier: EPL-2.0

// Package audio provides the PCM pipeline that turns decoded assets into
// clips a playback backend can use.
//
// # Building Blocks
//
//   - Source, the pull-based interface every decoder returns
//   - Decoder, which opens a Source from an encoded input
//   - Registry, which maps file extensions to decoders
//   - Resampler, which converts to the output sample rate
//   - ChannelMixer, which converts to the output channel count
//   - ReadAll, which drains a pipeline into memory
//
// Every Source produces interleaved float32 samples in [-1.0, 1.0]. A read
// returns the number of float32 values written, not frames, and ends the
// stream with n == 0 and io.EOF.
//
// # Loading a Clip
//
// A typical load chains them:
//
//	reg := formats.NewRegistry()
//	dec, ok := reg.ForPath("hit.ogg")
//	if !ok {
//	    // Unknown extension
//	}
//	src, err := dec.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	defer src.Close()
//
//	pcm, err := audio.ReadAll(
//	    audio.NewChannelMixer(audio.NewResampler(src, 48000), 2),
//	    4096,
//	)
//
// catalog.Loader does exactly this for every file named in a manifest.
//
// # Resampling
//
// Resampler uses cubic interpolation over four frames per channel. The
// edges are padded by repeating the first and last frame, so a constant
// signal stays constant. A non-positive target rate keeps the source rate.
//
// # Channel Mapping
//
// ChannelMixer handles any channel count in either direction:
//   - to mono: every source channel is averaged
//   - from mono: the sample is copied to every output channel
//   - otherwise: output channel c takes source channel c modulo the source
//     count, so stereo to 5.1 repeats left/right
//
// When the counts already match, reads pass straight through.
//
// # Registry
//
// Extensions are matched case-insensitively with or without the leading
// dot. Registry is safe for concurrent use; Sources are not.
//
// # Errors
//
//   - ErrInvalidDstSize: a destination is not a whole number of frames
//   - ErrInvalidChannels: a channel count is not positive
//   - ErrInvalidRate: a sample rate is not positive
package audio
