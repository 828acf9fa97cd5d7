// SPDX-License-Identifier: EPL-2.0

package audio

import "fmt"

// ChannelMixer changes the channel count of a source. Mixing down to mono
// averages every source channel; mono is duplicated to every output
// channel; otherwise output channel c takes source channel c modulo the
// source count.
type ChannelMixer struct {
	src      Source
	channels int
	tmp      []float32
}

func NewChannelMixer(src Source, channels int) *ChannelMixer {
	return &ChannelMixer{
		src:      src,
		channels: max(channels, 1),
		tmp:      make([]float32, 4096),
	}
}

func (m *ChannelMixer) SampleRate() int { return m.src.SampleRate() }
func (m *ChannelMixer) Channels() int   { return m.channels }

func (m *ChannelMixer) Close() error {
	if err := m.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

func (m *ChannelMixer) ReadSamples(dst []float32) (int, error) {
	srcCh := m.src.Channels()
	if srcCh == m.channels {
		return m.src.ReadSamples(dst)
	}
	if len(dst)%m.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) / m.channels * srcCh
	if cap(m.tmp) < need {
		m.tmp = make([]float32, need)
	}

	n, err := m.src.ReadSamples(m.tmp[:need])
	frames := n / srcCh
	if frames == 0 {
		return 0, err
	}

	in := m.tmp[:frames*srcCh]
	switch {
	case m.channels == 1:
		inv := 1 / float32(srcCh)
		for f := range frames {
			var sum float32
			for _, v := range in[f*srcCh : (f+1)*srcCh] {
				sum += v
			}
			dst[f] = sum * inv
		}
	case srcCh == 1:
		for f, v := range in {
			for c := range m.channels {
				dst[f*m.channels+c] = v
			}
		}
	default:
		for f := range frames {
			for c := range m.channels {
				dst[f*m.channels+c] = in[f*srcCh+c%srcCh]
			}
		}
	}

	return frames * m.channels, err
}
