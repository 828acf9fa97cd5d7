// SPDX-License-Identifier: EPL-2.0

// Package aiff decodes Audio Interchange File Format files through
// github.com/go-audio/aiff.
//
// # Supported Formats
//
// Integer PCM AIFF is supported:
//   - 8-bit, 16-bit, 24-bit and 32-bit signed samples
//   - any channel count and any sample rate
//
// AIFF stores samples big-endian and, unlike WAV, keeps 8-bit samples
// signed; the decoder handles both. Compressed AIFF-C variants are not
// decoded.
//
// # Decoding AIFF Files
//
//	file, _ := os.Open("ambience.aiff")
//	defer file.Close()
//
//	src, err := aiff.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	pcm, err := audio.ReadAll(src, 4096)
//
// The Source yields interleaved float32 samples in [-1.0, 1.0). The
// registry from formats.NewRegistry maps ".aiff" and ".aif" here.
//
// # Error Handling
//
//   - ErrNotAiffFile: the input has no FORM/AIFF header
//   - ErrUnsupportedBitDepth: the sample size has no integer scaling
//   - ErrUnsupportedAiffLayout: the COMM chunk describes no usable format
//
// Compare with errors.Is; depth errors carry the offending size.
package aiff
