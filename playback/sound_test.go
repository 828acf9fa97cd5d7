// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"errors"
	"testing"

	"github.com/ik5/audmix/catalog"
)

func TestSoundPlayer_VoiceLimit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		policy  VoicePolicy
		wantErr error
		// wantFirst reports whether the first voice survives.
		wantFirst bool
	}{
		{"evict oldest", EvictOldest, nil, false},
		{"evict quietest", EvictQuietest, nil, false},
		{"reject", Reject, ErrVoiceLimit, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newSound(t, tt.policy)
			typ := soundType("zap", 1)

			first, err := p.Play(typ, SoundOptions{})
			if err != nil {
				t.Fatalf("first Play() error = %v", err)
			}
			p.Update(0.01)

			second, err := p.Play(typ, SoundOptions{})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("second Play() error = %v, want %v", err, tt.wantErr)
			}
			if p.Voices(typ) != 1 {
				t.Errorf("Voices() = %d, want 1", p.Voices(typ))
			}

			p.Update(0.01)
			if p.Len() != 1 {
				t.Fatalf("Len() = %d after sweep, want exactly 1", p.Len())
			}
			_, firstAlive := p.Instance(first)
			if firstAlive != tt.wantFirst {
				t.Errorf("first alive = %v, want %v", firstAlive, tt.wantFirst)
			}
			if tt.wantErr == nil {
				if _, ok := p.Instance(second); !ok {
					t.Error("second voice missing")
				}
			}
		})
	}
}

func TestSoundPlayer_EvictionChoice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		policy VoicePolicy
		victim int
	}{
		{"oldest", EvictOldest, 0},
		{"quietest", EvictQuietest, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			p, _ := newSound(t, tt.policy)
			typ := soundType("step", 3)

			var ids []ID
			for _, att := range []float64{0.2, 0.9, 0.5} {
				id, err := p.Play(typ, SoundOptions{Attenuation: att})
				if err != nil {
					t.Fatal(err)
				}
				ids = append(ids, id)
				p.Update(0.01)
			}

			if _, err := p.Play(typ, SoundOptions{}); err != nil {
				t.Fatal(err)
			}
			for i, id := range ids {
				state := mustInfo(t, &p.engine, id).State
				if want := i == tt.victim; want != (state == StateFadingOut) {
					t.Errorf("voice %d state = %v, victim = %v", i, state, want)
				}
			}
			if got := p.Voices(typ); got != 3 {
				t.Errorf("Voices() = %d, want 3", got)
			}
		})
	}
}

func TestSoundPlayer_UnlimitedVoices(t *testing.T) {
	t.Parallel()

	p, fake := newSound(t, Reject)
	typ := soundType("rain", 0)
	for range 20 {
		if _, err := p.Play(typ, SoundOptions{}); err != nil {
			t.Fatal(err)
		}
	}
	p.Update(0.1)
	if p.Voices(typ) != 20 || fake.Playing() != 20 {
		t.Errorf("Voices() = %d, playing = %d; want 20", p.Voices(typ), fake.Playing())
	}
}

func TestSoundPlayer_Pitch(t *testing.T) {
	t.Parallel()

	p, _ := newSound(t, EvictOldest)
	typ := soundType("blip", 0)
	typ.PitchVariation = 0.05

	fixed, _ := p.Play(typ, SoundOptions{Pitch: 1.5})
	p.Update(0.01)
	if got := streamOf(t, &p.engine, fixed).Pitch; got != 1.5 {
		t.Errorf("pitch = %v, want 1.5", got)
	}

	for range 50 {
		id, _ := p.Play(typ, SoundOptions{})
		pitch := mustInfo(t, &p.engine, id).Pitch
		if pitch < 0.95 || pitch > 1.05 {
			t.Fatalf("pitch = %v, want within 1±0.05", pitch)
		}
	}
}

func TestSoundPlayer_Continuous(t *testing.T) {
	t.Parallel()

	p, _ := newSound(t, EvictOldest)
	engineHum := soundType("engine", 1)
	engineHum.Mode = catalog.ModeContinuous

	id, _ := p.Play(engineHum, SoundOptions{})
	p.Update(0.05)
	if !streamOf(t, &p.engine, id).Looping {
		t.Error("continuous sound not looping")
	}

	again, err := p.Play(engineHum, SoundOptions{Attenuation: 0.5})
	if err != nil || again != id {
		t.Fatalf("replay = %v, %v; want %v", again, err, id)
	}
	if got := mustInfo(t, &p.engine, id).Target; !near(got, 0.5, 1e-12) {
		t.Errorf("retargeted volume = %v, want 0.5", got)
	}

	p.Update(0.05)
	if got := mustInfo(t, &p.engine, id).State; got != StatePlaying {
		t.Fatalf("state = %v, want playing while touched", got)
	}
	p.Update(0.06)
	if got := mustInfo(t, &p.engine, id).State; got != StateFadingOut {
		t.Fatalf("state = %v, want fading-out once untouched", got)
	}
	p.Update(0.3)
	if p.Len() != 0 {
		t.Errorf("Len() = %d, want 0", p.Len())
	}
}

func TestSoundPlayer_ContinuityFactor(t *testing.T) {
	t.Parallel()

	p, _ := newSound(t, EvictOldest)
	hum := soundType("hum", 1)
	hum.Mode = catalog.ModeContinuous
	hum.ContinuityFactor = 3

	id, _ := p.Play(hum, SoundOptions{})
	p.Update(0.25)
	if got := mustInfo(t, &p.engine, id).State; got != StatePlaying {
		t.Errorf("state = %v, want playing within 0.3s", got)
	}
	p.Update(0.1)
	if got := mustInfo(t, &p.engine, id).State; got != StateFadingOut {
		t.Errorf("state = %v, want fading-out after 0.3s", got)
	}
}

func TestSoundPlayer_StopTransient(t *testing.T) {
	t.Parallel()

	p, _ := newSound(t, EvictOldest)
	wind := soundType("wind", 0)
	wind.Mode = catalog.ModePersistent
	click := soundType("click", 0)

	windID, _ := p.Play(wind, SoundOptions{})
	clickID, _ := p.Play(click, SoundOptions{})
	p.Update(0.01)

	if n := p.StopTransient(false); n != 1 {
		t.Errorf("StopTransient() = %d, want 1", n)
	}
	p.Update(0.01)

	if _, ok := p.Instance(clickID); ok {
		t.Error("transient sound survived")
	}
	info := mustInfo(t, &p.engine, windID)
	if info.State != StatePlaying || !info.Looping {
		t.Errorf("persistent sound = %+v, want looping and playing", info)
	}
}
