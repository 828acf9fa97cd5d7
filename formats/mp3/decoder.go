// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"
	"github.com/ik5/audmix/audio"
)

const channels = 2

// ErrInvalidStream wraps every failure reported while opening a stream.
var ErrInvalidStream = errors.New("invalid MP3 stream")

// pcmReader is the part of gomp3.Decoder that the source needs.
type pcmReader interface {
	Read([]byte) (int, error)
	SampleRate() int
}

type source struct {
	dec  pcmReader
	buf  []byte
	odd  []byte // trailing half sample from the previous Read
	rate int
}

func newSource(dec pcmReader) *source {
	return &source{dec: dec, rate: dec.SampleRate(), odd: make([]byte, 0, 1)}
}

func (s *source) SampleRate() int { return s.rate }
func (s *source) Channels() int   { return channels }
func (s *source) Close() error    { return nil }

func (s *source) ReadSamples(dst []float32) (int, error) {
	if len(dst) == 0 {
		return 0, nil
	}

	need := len(dst) * 2
	if cap(s.buf) < need {
		s.buf = make([]byte, need)
	}
	s.buf = s.buf[:need]

	n := copy(s.buf, s.odd)
	s.odd = s.odd[:0]

	// Keep reading until at least one whole sample is available so a
	// short read is never mistaken for the end of the stream.
	var err error
	for n < 2 && err == nil {
		var m int
		m, err = s.dec.Read(s.buf[n:])
		n += m
		if m == 0 {
			break
		}
	}

	samples := n / 2
	for i := range samples {
		dst[i] = float32(int16(binary.LittleEndian.Uint16(s.buf[2*i:]))) / 32768
	}
	if n%2 == 1 {
		s.odd = append(s.odd, s.buf[n-1])
	}

	switch {
	case err == nil:
		return samples, nil
	case errors.Is(err, io.EOF):
		if samples == 0 {
			return 0, io.EOF
		}
		return samples, io.EOF
	default:
		return samples, fmt.Errorf("%w", err)
	}
}

type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	dec, err := gomp3.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidStream, err)
	}
	return newSource(dec), nil
}
