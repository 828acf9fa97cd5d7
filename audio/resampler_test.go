// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"io"
	"math"
	"testing"

	"github.com/ik5/audmix/internal/audiotest"
)

func drain(t *testing.T, src Source, bufSize int) []float32 {
	t.Helper()

	buf := make([]float32, bufSize)
	var out []float32
	for {
		n, err := src.ReadSamples(buf)
		out = append(out, buf[:n]...)
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("ReadSamples() error = %v", err)
		}
	}
}

func TestResampler_Metadata(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(44100, 2, 100), 48000)
	if r.SampleRate() != 48000 {
		t.Errorf("SampleRate() = %d, want 48000", r.SampleRate())
	}
	if r.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", r.Channels())
	}
}

func TestResampler_FrameCounts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name             string
		srcRate, dstRate int
		frames           int
		want             int
		slack            int
	}{
		{"same rate", 8000, 8000, 1000, 1000, 0},
		{"downsample", 44100, 8000, 44100, 8000, 2},
		{"upsample", 22050, 44100, 22050, 44100, 2},
		{"non-positive rate keeps source", 16000, 0, 500, 500, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			src := audiotest.NewSineSource(tt.srcRate, 1, tt.frames, 220)
			got := len(drain(t, NewResampler(src, tt.dstRate), 1000))
			if got < tt.want-tt.slack || got > tt.want+tt.slack {
				t.Errorf("frames = %d, want %d±%d", got, tt.want, tt.slack)
			}
		})
	}
}

func TestResampler_PreservesConstant(t *testing.T) {
	t.Parallel()

	src := audiotest.NewConstantSource(44100, 2, 4410, 0.5)
	out := drain(t, NewResampler(src, 48000), 512)

	for i, v := range out {
		if math.Abs(float64(v-0.5)) > 1e-5 {
			t.Fatalf("out[%d] = %v, want 0.5", i, v)
		}
	}
}

func TestResampler_InvalidDstSize(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 2, 10), 8000)
	if _, err := r.ReadSamples(make([]float32, 3)); !errors.Is(err, ErrInvalidDstSize) {
		t.Errorf("ReadSamples() error = %v, want ErrInvalidDstSize", err)
	}
}

func TestResampler_EmptySource(t *testing.T) {
	t.Parallel()

	r := NewResampler(audiotest.NewSilentSource(8000, 1, 0), 16000)
	n, err := r.ReadSamples(make([]float32, 16))
	if n != 0 || err != io.EOF {
		t.Errorf("ReadSamples() = %d, %v; want 0, io.EOF", n, err)
	}
}

func TestResampler_SourceError(t *testing.T) {
	t.Parallel()

	src := audiotest.NewBrokenSource(8000, 1, 100, 0)
	_, err := NewResampler(src, 8000).ReadSamples(make([]float32, 16))
	if !errors.Is(err, audiotest.ErrBroken) {
		t.Errorf("ReadSamples() error = %v, want ErrBroken", err)
	}
}

func TestResampler_Close(t *testing.T) {
	t.Parallel()

	src := audiotest.NewSilentSource(8000, 1, 10)
	if err := NewResampler(src, 16000).Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !src.Closed() {
		t.Error("Close() did not close the source")
	}
}

func BenchmarkResampler_44100To48000(b *testing.B) {
	buf := make([]float32, 4096)
	b.ReportAllocs()

	for b.Loop() {
		r := NewResampler(audiotest.NewSineSource(44100, 2, 44100, 440), 48000)
		for {
			if _, err := r.ReadSamples(buf); err != nil {
				break
			}
		}
	}
}
