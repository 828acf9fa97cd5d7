// SPDX-License-Identifier: EPL-2.0

package catalog

import "time"

// Clip is a fully decoded piece of audio: interleaved float32 PCM in [-1,1].
type Clip struct {
	Name       string
	SampleRate int
	Channels   int
	Samples    []float32
}

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Channels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Channels
}

func (c *Clip) Duration() time.Duration {
	if c.SampleRate <= 0 {
		return 0
	}
	return time.Duration(c.Frames()) * time.Second / time.Duration(c.SampleRate)
}
