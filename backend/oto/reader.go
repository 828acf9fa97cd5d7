// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"io"
	"math"
	"sync"

	"github.com/ik5/audmix/catalog"
	"github.com/ik5/audmix/utils"
)

// reader plays a clip as signed 16-bit little endian PCM. Pitch and the
// clip/output rate ratio both move the read cursor; samples between frames
// are cubic interpolated. It is read by the oto goroutine and controlled
// from the game loop, hence the mutex.
type reader struct {
	mtx sync.Mutex

	samples  []float32
	channels int
	frames   int

	pos   float64
	step  float64 // clip frames per output frame at pitch 1
	pitch float64
	loop  bool
	done  bool

	buf []float32
}

func newReader(clip *catalog.Clip, outRate int) *reader {
	step := 1.0
	if outRate > 0 && clip.SampleRate > 0 {
		step = float64(clip.SampleRate) / float64(outRate)
	}
	return &reader{
		samples:  clip.Samples,
		channels: clip.Channels,
		frames:   clip.Frames(),
		step:     step,
		pitch:    1,
	}
}

func (r *reader) Read(p []byte) (int, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if r.done {
		return 0, io.EOF
	}

	frames := len(p) / (2 * r.channels)
	if frames == 0 {
		return 0, nil
	}
	if need := frames * r.channels; cap(r.buf) < need {
		r.buf = make([]float32, need)
	}
	buf := r.buf[:frames*r.channels]

	step := r.step * r.pitch
	written := 0
	for written < frames {
		if r.pos >= float64(r.frames) {
			if !r.loop {
				r.done = true
				break
			}
			r.pos = math.Mod(r.pos, float64(r.frames))
		}

		i := int(r.pos)
		x := float32(r.pos - float64(i))
		out := buf[written*r.channels:]
		for c := range r.channels {
			out[c] = utils.CubicInterpolate(r.at(i-1, c), r.at(i, c), r.at(i+1, c), r.at(i+2, c), x)
		}
		written++
		r.pos += step
	}

	if written == 0 {
		return 0, io.EOF
	}
	return utils.PutInt16LE(p, buf[:written*r.channels]), nil
}

// at returns sample c of frame i, wrapping when looping and clamping to the
// clip edges otherwise.
func (r *reader) at(i, c int) float32 {
	if r.loop {
		i = ((i % r.frames) + r.frames) % r.frames
	} else {
		i = min(max(i, 0), r.frames-1)
	}
	return r.samples[i*r.channels+c]
}

func (r *reader) setLoop(loop bool) {
	r.mtx.Lock()
	r.loop = loop
	r.mtx.Unlock()
}

func (r *reader) setPitch(pitch float64) {
	if pitch <= 0 || math.IsNaN(pitch) || math.IsInf(pitch, 0) {
		return
	}
	r.mtx.Lock()
	r.pitch = pitch
	r.mtx.Unlock()
}

func (r *reader) stop() {
	r.mtx.Lock()
	r.done = true
	r.mtx.Unlock()
}
