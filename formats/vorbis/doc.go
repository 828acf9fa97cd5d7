// SPDX-License-Identifier: EPL-2.0

// Package vorbis decodes Ogg Vorbis streams through
// github.com/jfreymuth/oggvorbis.
//
// # Output
//
// Vorbis decodes straight to float32, so samples pass through without
// conversion. Channel count and sample rate come from the identification
// header.
//
// ReadSamples only ever fills whole frames: a destination whose length is
// not a multiple of the channel count is trimmed, and one shorter than a
// frame reads nothing.
//
// # Decoding Ogg Files
//
//	file, _ := os.Open("rain.ogg")
//	defer file.Close()
//
//	src, err := vorbis.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 2*1024)
//	n, err := src.ReadSamples(buf)
//
// The registry from formats.NewRegistry maps ".ogg" and ".oga" here.
//
// # Error Handling
//
// ErrInvalidStream wraps every failure to open a stream, including headers
// that report no channels.
package vorbis
