// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

// ReadAll drains src into one interleaved slice, reading bufferSize samples
// at a time. io.EOF is not returned as an error. A source reporting no
// channels or no sample rate fails before anything is read.
func ReadAll(src Source, bufferSize int) ([]float32, error) {
	channels := src.Channels()
	if channels <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if rate := src.SampleRate(); rate <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRate, rate)
	}
	bufferSize = max(bufferSize-bufferSize%channels, channels)

	buf := make([]float32, bufferSize)
	out := make([]float32, 0, src.SampleRate()*channels)

	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)

		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("%w", err)
		}
		if n == 0 {
			// A source that returns nothing without EOF is treated as done.
			return out, nil
		}
	}
}
