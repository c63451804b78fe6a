package planner

import "math/rand"

// ShufflePool is a shuffled-queue-with-refill over recipe ids. It backs the
// no-repeat guarantee of manual replacement: consecutive swaps on a meal
// type walk through every current candidate once before any recipe is
// offered again.
type ShufflePool struct {
	queue []string
	rnd   *rand.Rand
}

// NewShufflePool creates an empty pool drawing shuffles from rnd.
func NewShufflePool(rnd *rand.Rand) *ShufflePool {
	return &ShufflePool{rnd: rnd}
}

// Next pops the next recipe id for the given ranked candidate list.
// The pool is refilled (re-shuffled from candidates) whenever it is empty or
// no longer intersects the candidate set; ids that have dropped out of the
// candidate set are discarded as they surface.
func (p *ShufflePool) Next(candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", false
	}

	set := make(map[string]struct{}, len(candidates))
	for _, id := range candidates {
		set[id] = struct{}{}
	}

	if !p.intersects(set) {
		p.refill(candidates)
	}

	for len(p.queue) > 0 {
		id := p.queue[0]
		p.queue = p.queue[1:]
		if _, ok := set[id]; ok {
			return id, true
		}
	}

	// Stale ids exhausted the queue; start a fresh cycle.
	p.refill(candidates)
	id := p.queue[0]
	p.queue = p.queue[1:]
	return id, true
}

func (p *ShufflePool) intersects(set map[string]struct{}) bool {
	for _, id := range p.queue {
		if _, ok := set[id]; ok {
			return true
		}
	}
	return false
}

func (p *ShufflePool) refill(candidates []string) {
	p.queue = make([]string, len(candidates))
	copy(p.queue, candidates)
	p.rnd.Shuffle(len(p.queue), func(i, j int) {
		p.queue[i], p.queue[j] = p.queue[j], p.queue[i]
	})
}
