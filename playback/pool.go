// SPDX-License-Identifier: EPL-2.0

package playback

import (
	"iter"

	"github.com/ik5/audmix/catalog"
)

// Pool is an arena of instance slots. Released slots go on a free list and
// are reset on reuse, so a player that has reached its peak voice count
// stops allocating.
type Pool struct {
	slots []*instance
	gens  []uint32
	free  []int
	live  []int // unordered
}

// Len returns the number of instances not yet swept.
func (p *Pool) Len() int { return len(p.live) }

// Cap returns the number of slots ever allocated.
func (p *Pool) Cap() int { return len(p.slots) }

func (p *Pool) obtain() *instance {
	var slot int
	if n := len(p.free); n > 0 {
		slot = p.free[n-1]
		p.free = p.free[:n-1]
		p.slots[slot].reset()
	} else {
		slot = len(p.slots)
		p.slots = append(p.slots, &instance{})
		p.gens = append(p.gens, 1)
	}

	in := p.slots[slot]
	in.id = makeID(p.gens[slot], slot)
	p.live = append(p.live, slot)
	return in
}

func (p *Pool) release(slot int) {
	p.slots[slot].reset()
	p.gens[slot]++
	if p.gens[slot] == 0 {
		p.gens[slot] = 1
	}
	p.free = append(p.free, slot)
}

// get resolves id, or returns nil for swept or unknown instances.
func (p *Pool) get(id ID) *instance {
	slot := id.slot()
	if slot >= len(p.slots) || p.gens[slot] != id.gen() {
		return nil
	}
	in := p.slots[slot]
	if in.id != id {
		return nil
	}
	return in
}

// find returns the first instance bound to typ that is not disposing.
func (p *Pool) find(typ *catalog.Type) *instance {
	for _, slot := range p.live {
		if in := p.slots[slot]; in.typ == typ && in.state != StateDisposing {
			return in
		}
	}
	return nil
}

// match yields live instances accepted by pred, newest slot first.
func (p *Pool) match(pred func(*instance) bool) iter.Seq[*instance] {
	return func(yield func(*instance) bool) {
		for i := len(p.live) - 1; i >= 0; i-- {
			if in := p.slots[p.live[i]]; pred(in) && !yield(in) {
				return
			}
		}
	}
}

// sweep calls fn on every instance in reverse order and releases those for
// which it returns true. Removal swaps the last entry into place, which the
// reverse walk has already visited.
func (p *Pool) sweep(fn func(*instance) bool) {
	for i := len(p.live) - 1; i >= 0; i-- {
		slot := p.live[i]
		if !fn(p.slots[slot]) {
			continue
		}
		last := len(p.live) - 1
		p.live[i] = p.live[last]
		p.live = p.live[:last]
		p.release(slot)
	}
}

func byType(typ *catalog.Type) func(*instance) bool {
	return func(in *instance) bool { return in.typ == typ }
}

func byCategory(c catalog.Category) func(*instance) bool {
	return func(in *instance) bool { return in.typ != nil && in.typ.Category == c }
}

func byChannel(ch int) func(*instance) bool {
	return func(in *instance) bool { return in.channel == ch }
}

func everything(*instance) bool { return true }
