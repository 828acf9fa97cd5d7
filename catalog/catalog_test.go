// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"bytes"
	"errors"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/ik5/audmix/audio"
	"github.com/ik5/audmix/formats"
	"github.com/ik5/audmix/formats/wav"
	"github.com/ik5/audmix/internal/audiotest"
)

// constDecoder ignores its input and produces a constant mono tone.
type constDecoder struct {
	rate, channels, frames int
}

func (d constDecoder) Decode(io.Reader) (audio.Source, error) {
	return audiotest.NewConstantSource(d.rate, d.channels, d.frames, 0.5), nil
}

type failDecoder struct{}

var errDecode = errors.New("decode failed")

func (failDecoder) Decode(io.Reader) (audio.Source, error) { return nil, errDecode }

func writeWAV(t *testing.T, dir, name string, rate, channels, frames int) {
	t.Helper()

	samples := make([]float32, frames*channels)
	for i := range samples {
		samples[i] = 0.25
	}
	var buf bytes.Buffer
	if err := wav.Encode(&buf, rate, channels, samples); err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}
}

func TestLoader_Decode(t *testing.T) {
	t.Parallel()

	reg := audio.NewRegistry()
	reg.Register(constDecoder{rate: 24000, channels: 1, frames: 2400}, "tone")
	reg.Register(failDecoder{}, "bad")
	reg.Register(constDecoder{rate: 48000, channels: 2}, "empty")

	tests := []struct {
		name       string
		format     string
		rate, ch   int
		wantErr    error
		wantRate   int
		wantCh     int
		wantFrames int
	}{
		{name: "native format", format: "tone", wantRate: 24000, wantCh: 1, wantFrames: 2400},
		{name: "remixed", format: "tone", ch: 2, wantRate: 24000, wantCh: 2, wantFrames: 2400},
		{name: "resampled and remixed", format: ".TONE", rate: 48000, ch: 2, wantRate: 48000, wantCh: 2, wantFrames: 4800},
		{name: "unknown format", format: "flac", wantErr: ErrUnknownFormat},
		{name: "decoder failure", format: "bad", wantErr: errDecode},
		{name: "no samples", format: "empty", wantErr: ErrEmptyClip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			l := &Loader{Registry: reg, SampleRate: tt.rate, Channels: tt.ch, BufferSize: 300}
			clip, err := l.Decode("clip", tt.format, strings.NewReader(""))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Decode() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}

			if clip.SampleRate != tt.wantRate || clip.Channels != tt.wantCh {
				t.Errorf("format = %d/%d, want %d/%d", clip.SampleRate, clip.Channels, tt.wantRate, tt.wantCh)
			}
			if diff := clip.Frames() - tt.wantFrames; diff < -4 || diff > 4 {
				t.Errorf("Frames() = %d, want about %d", clip.Frames(), tt.wantFrames)
			}
			mid := clip.Samples[len(clip.Samples)/2]
			if math.Abs(float64(mid)-0.5) > 1e-3 {
				t.Errorf("mid sample = %v, want 0.5", mid)
			}
		})
	}
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "click.wav", 22050, 1, 2205)

	l := &Loader{Registry: formats.NewRegistry(), SampleRate: 44100, Channels: 2}
	clip, err := l.Load(filepath.Join(dir, "click.wav"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if clip.Name != "click" {
		t.Errorf("Name = %q, want click", clip.Name)
	}
	if clip.SampleRate != 44100 || clip.Channels != 2 {
		t.Errorf("format = %d/%d, want 44100/2", clip.SampleRate, clip.Channels)
	}
	if d := clip.Duration(); d < 95*time.Millisecond || d > 105*time.Millisecond {
		t.Errorf("Duration() = %v, want about 100ms", d)
	}

	if _, err := l.Load(filepath.Join(dir, "missing.wav")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Load(missing) error = %v, want ErrNotExist", err)
	}
}

func TestCatalog_LoadManifest(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writeWAV(t, dir, "theme.wav", 8000, 2, 800)
	writeWAV(t, dir, "step1.wav", 8000, 1, 80)
	writeWAV(t, dir, "step2.wav", 8000, 1, 80)

	const doc = `{
	  "types": [
	    {"name": "theme", "kind": "music", "category": "music", "volume": 0.8, "files": ["theme.wav"]},
	    {"name": "step", "kind": "sound", "category": "sfx", "voices": 3,
	     "pitchVariation": 0, "mode": "continuous", "continuityFactor": 2.5,
	     "files": ["step1.wav", "step2.wav"]},
	    {"name": "rain", "category": "ambient", "mode": "persistent", "fadeIn": 1.5}
	  ]
	}`

	c := New()
	l := &Loader{Registry: formats.NewRegistry(), SampleRate: 8000, Channels: 2}
	if err := c.LoadManifest(strings.NewReader(doc), dir, l); err != nil {
		t.Fatalf("LoadManifest() error = %v", err)
	}

	theme, err := c.Lookup("theme")
	if err != nil {
		t.Fatalf("Lookup(theme) error = %v", err)
	}
	if theme.Kind != KindMusic || theme.Volume != 0.8 || theme.Pitch != 1 || len(theme.Clips) != 1 {
		t.Errorf("theme = %+v", theme)
	}

	step, _ := c.Lookup("step")
	if step.Kind != KindSound || step.Voices != 3 || step.Mode != ModeContinuous {
		t.Errorf("step = %+v", step)
	}
	if step.PitchVariation != 0 || step.ContinuityFactor != 2.5 || step.Volume != 1 {
		t.Errorf("step numbers = %v %v %v", step.PitchVariation, step.ContinuityFactor, step.Volume)
	}
	if len(step.Clips) != 2 || step.Clips[0].Channels != 2 {
		t.Errorf("step clips = %d", len(step.Clips))
	}

	rain, _ := c.Lookup("rain")
	if rain.Mode != ModePersistent || rain.FadeIn != 1.5 || rain.PitchVariation != 0.05 {
		t.Errorf("rain = %+v", rain)
	}

	var names []string
	for _, typ := range c.Types() {
		names = append(names, typ.Name)
	}
	if got := strings.Join(names, ","); got != "rain,step,theme" {
		t.Errorf("Types() = %s", got)
	}

	if _, err := c.Lookup("nope"); !errors.Is(err, ErrUnknownType) {
		t.Errorf("Lookup(nope) error = %v, want ErrUnknownType", err)
	}
}

func TestCatalog_LoadManifest_Invalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		doc     string
		wantErr error
	}{
		{"syntax", `{"types": [`, ErrInvalidManifest},
		{"unknown field", `{"types": [{"name": "a", "loud": true}]}`, ErrInvalidManifest},
		{"bad kind", `{"types": [{"name": "a", "kind": "video"}]}`, ErrInvalidManifest},
		{"bad mode", `{"types": [{"name": "a", "mode": "forever"}]}`, ErrInvalidManifest},
		{"no name", `{"types": [{"kind": "sound"}]}`, ErrInvalidManifest},
		{"missing file", `{"types": [{"name": "a", "files": ["gone.wav"]}]}`, os.ErrNotExist},
		{"unknown format", `{"types": [{"name": "a", "files": ["a.flac"]}]}`, ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := New()
			l := &Loader{Registry: formats.NewRegistry()}
			err := c.LoadManifest(strings.NewReader(tt.doc), t.TempDir(), l)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("LoadManifest() error = %v, want %v", err, tt.wantErr)
			}
			if n := len(c.Types()); n != 0 {
				t.Errorf("len(Types()) = %d after failure, want 0", n)
			}
		})
	}
}

func TestType_Clip(t *testing.T) {
	t.Parallel()

	a, b := &Clip{Name: "a"}, &Clip{Name: "b"}

	if got := NewSoundType("none", "sfx").Clip(nil); got != nil {
		t.Errorf("Clip() on empty type = %v, want nil", got)
	}
	if got := NewSoundType("one", "sfx", a).Clip(nil); got != a {
		t.Errorf("Clip() = %v, want a", got)
	}

	r := rand.New(rand.NewPCG(1, 2))
	typ := NewSoundType("two", "sfx", a, b)
	seen := map[string]int{}
	for range 200 {
		seen[typ.Clip(r).Name]++
	}
	if seen["a"] == 0 || seen["b"] == 0 {
		t.Errorf("Clip() distribution = %v, want both clips", seen)
	}
}

func TestKindAndModeStrings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		got, want string
	}{
		{KindSound.String(), "sound"},
		{KindMusic.String(), "music"},
		{Kind(7).String(), "Kind(7)"},
		{ModeNormal.String(), "normal"},
		{ModeContinuous.String(), "continuous"},
		{ModePersistent.String(), "persistent"},
		{Mode(9).String(), "Mode(9)"},
		{NewMusicType("theme", "music").String(), "music:theme"},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}

	if ModeNormal.Loops() || !ModeContinuous.Loops() || !ModePersistent.Loops() {
		t.Error("Loops() mismatch")
	}
}
