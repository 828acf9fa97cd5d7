// SPDX-License-Identifier: EPL-2.0

package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"sync"
)

// Catalog is a set of types indexed by name.
type Catalog struct {
	mtx   sync.RWMutex
	types map[string]*Type
}

func New() *Catalog {
	return &Catalog{types: make(map[string]*Type)}
}

// Add registers t, replacing any type with the same name.
func (c *Catalog) Add(t *Type) {
	c.mtx.Lock()
	defer c.mtx.Unlock()

	c.types[t.Name] = t
}

func (c *Catalog) Lookup(name string) (*Type, error) {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	t, ok := c.types[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t, nil
}

// Types returns every type sorted by name.
func (c *Catalog) Types() []*Type {
	c.mtx.RLock()
	defer c.mtx.RUnlock()

	out := make([]*Type, 0, len(c.types))
	for _, t := range c.types {
		out = append(out, t)
	}
	slices.SortFunc(out, func(a, b *Type) int {
		switch {
		case a.Name < b.Name:
			return -1
		case a.Name > b.Name:
			return 1
		}
		return 0
	})
	return out
}

type manifest struct {
	Types []manifestType `json:"types"`
}

// manifestType leaves optional numbers as pointers so that an explicit zero
// can be told apart from a missing field.
type manifestType struct {
	Name             string   `json:"name"`
	Kind             Kind     `json:"kind"`
	Category         Category `json:"category"`
	Voices           int      `json:"voices"`
	Volume           *float64 `json:"volume"`
	Pitch            *float64 `json:"pitch"`
	PitchVariation   *float64 `json:"pitchVariation"`
	Mode             Mode     `json:"mode"`
	ContinuityFactor *float64 `json:"continuityFactor"`
	FadeIn           float64  `json:"fadeIn"`
	Files            []string `json:"files"`
}

// LoadManifest reads a JSON manifest and adds every type in it, decoding
// files through l. Relative file names are resolved against dir. Nothing
// is added when any entry fails.
func (c *Catalog) LoadManifest(r io.Reader, dir string, l *Loader) error {
	var m manifest
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&m); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	types := make([]*Type, 0, len(m.Types))
	for i, mt := range m.Types {
		if mt.Name == "" {
			return fmt.Errorf("%w: entry %d has no name", ErrInvalidManifest, i)
		}

		var t *Type
		if mt.Kind == KindMusic {
			t = NewMusicType(mt.Name, mt.Category)
		} else {
			t = NewSoundType(mt.Name, mt.Category)
		}
		t.Voices = mt.Voices
		t.Mode = mt.Mode
		t.FadeIn = mt.FadeIn
		setIf(&t.Volume, mt.Volume)
		setIf(&t.Pitch, mt.Pitch)
		setIf(&t.PitchVariation, mt.PitchVariation)
		setIf(&t.ContinuityFactor, mt.ContinuityFactor)

		for _, file := range mt.Files {
			if !filepath.IsAbs(file) {
				file = filepath.Join(dir, file)
			}
			clip, err := l.Load(file)
			if err != nil {
				return fmt.Errorf("type %q: %w", mt.Name, err)
			}
			t.Clips = append(t.Clips, clip)
		}
		types = append(types, t)
	}

	for _, t := range types {
		c.Add(t)
	}
	return nil
}

func setIf(dst *float64, v *float64) {
	if v != nil {
		*dst = *v
	}
}
