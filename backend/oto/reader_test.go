// SPDX-License-Identifier: EPL-2.0

package oto

import (
	"encoding/binary"
	"errors"
	"io"
	"testing"

	"github.com/ik5/audmix/catalog"
)

func rampClip(rate, channels, frames int) *catalog.Clip {
	samples := make([]float32, frames*channels)
	for i := range frames {
		for c := range channels {
			samples[i*channels+c] = float32(i) / float32(frames)
		}
	}
	return &catalog.Clip{Name: "ramp", SampleRate: rate, Channels: channels, Samples: samples}
}

// drain reads r in chunks of chunk bytes until EOF or limit bytes.
func drain(t *testing.T, r io.Reader, chunk, limit int) []int16 {
	t.Helper()

	var out []int16
	buf := make([]byte, chunk)
	for len(out)*2 < limit {
		n, err := r.Read(buf)
		for i := 0; i+1 < n; i += 2 {
			out = append(out, int16(binary.LittleEndian.Uint16(buf[i:])))
		}
		if errors.Is(err, io.EOF) {
			return out
		}
		if err != nil {
			t.Fatalf("Read() error = %v", err)
		}
	}
	return out
}

func TestReader_PlaysOnce(t *testing.T) {
	t.Parallel()

	r := newReader(rampClip(48000, 2, 100), 48000)
	out := drain(t, r, 64, 1<<20)

	if len(out) != 200 {
		t.Fatalf("samples = %d, want 200", len(out))
	}
	// At pitch 1 and equal rates every frame lands on a source frame.
	for i := range 100 {
		want := int16(float32(i) / 100 * 32767)
		if out[2*i] != want || out[2*i+1] != want {
			t.Fatalf("frame %d = %d/%d, want %d", i, out[2*i], out[2*i+1], want)
		}
	}

	if n, err := r.Read(make([]byte, 8)); n != 0 || !errors.Is(err, io.EOF) {
		t.Errorf("Read() after end = %d, %v; want 0, EOF", n, err)
	}
}

func TestReader_RateAndPitch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    int
		outRate int
		pitch   float64
		want    int // output frames
	}{
		{"upsample", 24000, 48000, 1, 200},
		{"downsample", 48000, 24000, 1, 50},
		{"octave up", 48000, 48000, 2, 50},
		{"octave down", 48000, 48000, 0.5, 200},
		{"invalid pitch ignored", 48000, 48000, -1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := newReader(rampClip(tt.rate, 1, 100), tt.outRate)
			r.setPitch(tt.pitch)
			if got := len(drain(t, r, 32, 1<<20)); got != tt.want {
				t.Errorf("frames = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReader_Loop(t *testing.T) {
	t.Parallel()

	r := newReader(rampClip(48000, 1, 10), 48000)
	r.setLoop(true)

	out := drain(t, r, 20, 60)
	if len(out) < 30 {
		t.Fatalf("looping reader ended after %d samples", len(out))
	}
	if out[10] != out[0] || out[25] != out[5] {
		t.Errorf("loop did not wrap: %v", out[:30])
	}

	r.stop()
	if _, err := r.Read(make([]byte, 4)); !errors.Is(err, io.EOF) {
		t.Errorf("Read() after stop error = %v, want EOF", err)
	}
}

func TestReader_ShortBuffer(t *testing.T) {
	t.Parallel()

	r := newReader(rampClip(48000, 2, 10), 48000)
	n, err := r.Read(make([]byte, 3))
	if n != 0 || err != nil {
		t.Errorf("Read(3 bytes) = %d, %v; want 0, nil", n, err)
	}
}
