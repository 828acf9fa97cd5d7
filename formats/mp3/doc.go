// SPDX-License-Identifier: EPL-2.0

// Package mp3 decodes MPEG-1/2 Layer III streams through
// github.com/hajimehoshi/go-mp3.
//
// # Output
//
// go-mp3 always produces 16-bit little-endian stereo at the stream's sample
// rate, so the Source reports two channels even for mono files. Mono assets
// are mixed back down by audio.ChannelMixer when the output wants one
// channel.
//
// The decoder hands out bytes, not samples, and may split a sample across
// two reads. The Source keeps the odd byte for the next call and keeps
// reading until at least one whole sample is available, so a short read is
// never mistaken for the end of the stream.
//
// # Decoding MP3 Files
//
//	file, _ := os.Open("theme.mp3")
//	defer file.Close()
//
//	src, err := mp3.Decoder{}.Decode(file)
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(src.SampleRate(), src.Channels()) // e.g. 44100 2
//
// # Error Handling
//
// ErrInvalidStream wraps every failure to open a stream, with the decoder's
// own error kept in the chain. Read errors other than io.EOF are returned
// wrapped as well.
package mp3
