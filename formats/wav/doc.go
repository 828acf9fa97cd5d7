// SPDX-License-Identifier: EPL-2.0

// Package wav decodes and writes RIFF/WAVE files.
//
// Decoding is done by github.com/go-audio/wav. Encoding is a small
// canonical writer that needs no seeking.
//
// # Supported Formats
//
// The decoder accepts integer PCM (format tag 1):
//   - 8-bit unsigned, re-centred around zero
//   - 16-bit, 24-bit and 32-bit signed
//   - any channel count and any sample rate
//
// Float (format tag 3), A-law, mu-law and compressed WAV are rejected.
//
// # Decoding WAV Files
//
//	file, _ := os.Open("hit.wav")
//	defer file.Close()
//
//	src, err := wav.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//
//	buf := make([]float32, 4096)
//	n, err := src.ReadSamples(buf)
//
// The Source yields interleaved float32 samples in [-1.0, 1.0). Inputs that
// cannot seek, such as an HTTP body, are buffered in memory first, because
// the go-audio decoder seeks between chunks.
//
// Most callers do not use the Decoder directly; catalog.Loader picks it
// from the registry built by formats.NewRegistry for ".wav" and ".wave".
//
// # Writing WAV Files
//
// Encode writes interleaved float samples as 16-bit PCM with a complete
// 44-byte header. Samples are clipped to [-1, 1]:
//
//	var buf bytes.Buffer
//	err := wav.Encode(&buf, 48000, 2, samples)
//
// Tests in this module use it to produce fixtures without shipping binary
// files.
//
// # Error Handling
//
// The package defines these errors:
//   - ErrNotWavFile: the input has no RIFF/WAVE header
//   - ErrOnlyPCMSupported: the format tag is not integer PCM
//   - ErrUnsupportedBitDepth: the sample size has no integer scaling
//   - ErrInvalidChannels: Encode was given a non-positive channel count
//
// Format and depth errors are wrapped with the offending value, so compare
// with errors.Is:
//
//	if errors.Is(err, wav.ErrUnsupportedBitDepth) {
//	    fmt.Println("re-export the file as 16-bit PCM")
//	}
//
// # File Format
//
// A canonical WAV file consists of:
//   - RIFF header (12 bytes)
//   - fmt chunk (24 bytes): format tag, channels, sample rate, bit depth
//   - data chunk: interleaved little-endian samples
//
// Extra chunks (LIST, fact, cue) are skipped by the decoder.
package wav
