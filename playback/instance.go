// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"fmt"

	"github.com/ik5/audmix/backend"
	"github.com/ik5/audmix/catalog"
)

// State is the lifecycle stage of a playing instance.
type State int

const (
	// StateSilent instances are waiting for the next Update to start.
	StateSilent State = iota
	StateFadingIn
	StatePlaying
	StateFadingOut
	// StateDisposing instances are removed at the end of the current
	// Update.
	StateDisposing
)

var stateNames = [...]string{"silent", "fading-in", "playing", "fading-out", "disposing"}

func (s State) String() string {
	if s >= 0 && int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// Live reports whether an instance in s still holds its place: it has not
// been asked to stop.
func (s State) Live() bool {
	return s == StateSilent || s == StateFadingIn || s == StatePlaying
}

// Audible reports whether the backend has been started for s.
func (s State) Audible() bool {
	return s == StateFadingIn || s == StatePlaying || s == StateFadingOut
}

// ID identifies one instance. It packs the pool slot with the slot's
// generation so IDs of swept instances never resolve again. Zero is never
// a valid ID.
type ID uint64

func makeID(gen uint32, slot int) ID { return ID(gen)<<32 | ID(uint32(slot)) }

func (id ID) slot() int   { return int(uint32(id)) }
func (id ID) gen() uint32 { return uint32(id >> 32) }

func (id ID) String() string {
	return fmt.Sprintf("%d.%d", id.slot(), id.gen())
}

type instance struct {
	id    ID
	state State
	timer float64 // seconds in state

	stream  backend.Stream
	typ     *catalog.Type
	channel int
	bus     int

	looping   bool
	fadeIn    bool
	fadeInDur float64
	pitch     float64

	target   float64 // linear volume once fully audible
	volume   float64 // last value pushed to the backend
	fadeFrom float64 // volume when the fade out began

	touched float64 // seconds since the last Play of a continuous sound
	seq     uint64  // start order
}

func (in *instance) enter(s State) {
	in.state = s
	in.timer = 0
}

func (in *instance) reset() {
	*in = instance{}
}

func (in *instance) continuous() bool {
	return in.typ != nil && in.typ.Mode == catalog.ModeContinuous
}

// Info is a snapshot of one instance.
type Info struct {
	ID      ID
	Type    *catalog.Type
	Channel int
	Bus     int
	State   State
	Timer   float64
	Looping bool
	Pitch   float64
	Target  float64
	Volume  float64
}

func (in *instance) info() Info {
	return Info{
		ID:      in.id,
		Type:    in.typ,
		Channel: in.channel,
		Bus:     in.bus,
		State:   in.state,
		Timer:   in.timer,
		Looping: in.looping,
		Pitch:   in.pitch,
		Target:  in.target,
		Volume:  in.volume,
	}
}
