// SPDX-License-Identifier: EPL-2.0

package beep

import "github.com/ik5/audmix/catalog"

// clipStreamer streams a clip as stereo. Mono clips are duplicated to both
// sides; clips with more channels keep the first two. loop is only touched
// under the speaker lock.
type clipStreamer struct {
	samples  []float32
	channels int
	frames   int
	pos      int
	loop     bool
}

func newClipStreamer(clip *catalog.Clip) *clipStreamer {
	return &clipStreamer{
		samples:  clip.Samples,
		channels: clip.Channels,
		frames:   clip.Frames(),
	}
}

func (s *clipStreamer) Stream(samples [][2]float64) (int, bool) {
	n := 0
	for n < len(samples) {
		if s.pos >= s.frames {
			if !s.loop || s.frames == 0 {
				break
			}
			s.pos = 0
		}

		frame := s.samples[s.pos*s.channels:]
		left := float64(frame[0])
		right := left
		if s.channels > 1 {
			right = float64(frame[1])
		}
		samples[n] = [2]float64{left, right}
		n++
		s.pos++
	}
	return n, n > 0
}

func (s *clipStreamer) Err() error { return nil }

func (s *clipStreamer) Len() int      { return s.frames }
func (s *clipStreamer) Position() int { return s.pos }
