// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/ik5/audmix/utils"
)

// Resampler converts src to another sample rate with cubic interpolation.
// It works on interleaved samples and preserves the channel count.
type Resampler struct {
	src      Source
	dstRate  int
	step     float64 // source frames advanced per output frame
	channels int

	// hist holds frames t-1, t0, t+1, t+2 around the read position;
	// real marks which of them came from src rather than edge padding.
	hist    [4][]float32
	real    [4]bool
	pos     float64
	started bool

	in     []float32
	inPos  int
	inLen  int
	srcEOF bool
	err    error
}

// NewResampler wraps src so that it reads at dstRate. A non-positive
// dstRate keeps the source rate.
func NewResampler(src Source, dstRate int) *Resampler {
	if dstRate <= 0 {
		dstRate = src.SampleRate()
	}
	channels := max(src.Channels(), 1)

	r := &Resampler{
		src:      src,
		dstRate:  dstRate,
		step:     float64(src.SampleRate()) / float64(dstRate),
		channels: channels,
		in:       make([]float32, 1024*channels),
	}
	for i := range r.hist {
		r.hist[i] = make([]float32, channels)
	}

	return r
}

func (r *Resampler) SampleRate() int { return r.dstRate }
func (r *Resampler) Channels() int   { return r.channels }

func (r *Resampler) Close() error {
	if err := r.src.Close(); err != nil {
		return fmt.Errorf("%w", err)
	}
	return nil
}

// nextFrame copies the next source frame into dst and reports whether one
// was available.
func (r *Resampler) nextFrame(dst []float32) bool {
	for r.inPos+r.channels > r.inLen {
		if r.srcEOF || r.err != nil {
			return false
		}
		n, err := r.src.ReadSamples(r.in)
		r.inPos, r.inLen = 0, n-n%r.channels
		if err == io.EOF || (n == 0 && err == nil) {
			r.srcEOF = true
		} else if err != nil {
			r.err = fmt.Errorf("%w", err)
		}
	}

	copy(dst, r.in[r.inPos:r.inPos+r.channels])
	r.inPos += r.channels
	return true
}

// shift drops the oldest frame and pulls a new t+2 frame, repeating the
// previous one as padding once src is exhausted.
func (r *Resampler) shift() {
	first := r.hist[0]
	copy(r.hist[:], r.hist[1:])
	copy(r.real[:], r.real[1:])
	r.hist[3] = first

	if r.nextFrame(r.hist[3]) {
		r.real[3] = true
		return
	}
	copy(r.hist[3], r.hist[2])
	r.real[3] = false
}

func (r *Resampler) start() {
	r.started = true
	if !r.nextFrame(r.hist[1]) {
		return
	}
	r.real[1] = true
	copy(r.hist[0], r.hist[1])

	for i := 2; i < 4; i++ {
		if r.nextFrame(r.hist[i]) {
			r.real[i] = true
			continue
		}
		copy(r.hist[i], r.hist[i-1])
	}
}

// ReadSamples produces interleaved samples at the destination rate.
// len(dst) must be a multiple of Channels().
func (r *Resampler) ReadSamples(dst []float32) (int, error) {
	if len(dst)%r.channels != 0 {
		return 0, ErrInvalidDstSize
	}
	if !r.started {
		r.start()
	}

	frames := len(dst) / r.channels
	written := 0

	for written < frames {
		if !r.real[1] {
			break
		}

		x := float32(r.pos)
		out := dst[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.hist[0][c], r.hist[1][c], r.hist[2][c], r.hist[3][c], x)
		}
		written++

		r.pos += r.step
		for r.pos >= 1 {
			r.pos--
			r.shift()
		}
	}

	if r.err != nil && written == 0 {
		return 0, r.err
	}
	if written == 0 {
		return 0, io.EOF
	}
	return written * r.channels, nil
}
