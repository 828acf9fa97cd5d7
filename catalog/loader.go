// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/decred/slog"
	"github.com/ik5/audmix/audio"
)

const defaultBufferSize = 4096

// Loader decodes files into clips in one output format.
type Loader struct {
	Registry *audio.Registry

	// SampleRate and Channels of the produced clips. Zero keeps the format
	// of each file.
	SampleRate int
	Channels   int

	// BufferSize is the number of samples read per pass; 0 picks a default.
	BufferSize int

	Log slog.Logger
}

// Load decodes the file at path. The clip is named after the file without
// its extension.
func (l *Loader) Load(path string) (*Clip, error) {
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	if _, ok := l.Registry.Get(ext); !ok {
		return nil, fmt.Errorf("%s: %w: %q", path, ErrUnknownFormat, ext)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}
	defer f.Close()

	clip, err := l.Decode(strings.TrimSuffix(base, ext), ext, f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Decode reads an encoded stream of the given format ("wav", ".ogg", ...).
func (l *Loader) Decode(name, format string, r io.Reader) (*Clip, error) {
	dec, ok := l.Registry.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	src, err := dec.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	var s audio.Source = src
	if l.SampleRate > 0 && s.SampleRate() != l.SampleRate {
		s = audio.NewResampler(s, l.SampleRate)
	}
	if l.Channels > 0 && s.Channels() != l.Channels {
		s = audio.NewChannelMixer(s, l.Channels)
	}
	defer s.Close()

	bufSize := l.BufferSize
	if bufSize <= 0 {
		bufSize = defaultBufferSize
	}

	samples, err := audio.ReadAll(s, bufSize)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, ErrEmptyClip
	}

	clip := &Clip{
		Name:       name,
		SampleRate: s.SampleRate(),
		Channels:   s.Channels(),
		Samples:    samples,
	}
	if l.Log != nil {
		l.Log.Debugf("Loaded clip %q: %d frames, %d Hz, %d ch (%s)",
			name, clip.Frames(), clip.SampleRate, clip.Channels, clip.Duration())
	}
	return clip, nil
}
