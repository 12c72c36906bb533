package compiler

import (
	"github.com/dagforge/dagforge/internal/ir"
)

// producerIndex maps a value name to the positions of the records that
// produce it, in ascending order. This is the "last producer" index the
// pending log implies: later producers shadow earlier ones.
type producerIndex map[string][]int

func buildProducerIndex(records []ir.OpRecord) producerIndex {
	idx := make(producerIndex)
	for _, r := range records {
		for _, out := range r.Outputs {
			idx[out] = append(idx[out], r.Pos)
		}
	}
	return idx
}

// last returns the position of the most recent producer of name, or -1.
func (idx producerIndex) last(name string) int {
	ps := idx[name]
	if len(ps) == 0 {
		return -1
	}
	return ps[len(ps)-1]
}

// latestBefore returns the position of the most recent producer of name
// strictly before pos, or -1. This is how a consumer resolves a shadowed
// name: it sees the producer that was current when it was recorded, not
// one appended later.
func (idx producerIndex) latestBefore(name string, pos int) int {
	best := -1
	for _, p := range idx[name] {
		if p >= pos {
			break
		}
		best = p
	}
	return best
}

// liveRecords computes the positions of all live records via backward
// reachability over the value/operation dependency graph.
//
// Roots: every placeholder and every user-declared (non-anonymous)
// output is externally observable. A root name is attributed to its most
// recent producer only — earlier producers of the same name are
// shadowed, not merged.
//
// Propagation: a live record makes all of its inputs live; each live
// input marks its positionally-resolved producer live. The live set only
// grows and positional resolution always points strictly backward, so
// the worklist terminates.
func liveRecords(snap ir.Snapshot) map[int]bool {
	idx := buildProducerIndex(snap.Records)
	live := make(map[int]bool)
	var work []int

	mark := func(pos int) {
		if pos >= 0 && !live[pos] {
			live[pos] = true
			work = append(work, pos)
		}
	}

	seenRoot := make(map[string]struct{})
	for _, r := range snap.Records {
		for _, out := range r.Outputs {
			if ir.IsAnon(out) {
				continue
			}
			if _, done := seenRoot[out]; done {
				continue
			}
			seenRoot[out] = struct{}{}
			mark(idx.last(out))
		}
	}

	for len(work) > 0 {
		pos := work[len(work)-1]
		work = work[:len(work)-1]
		for _, in := range snap.Records[pos].Inputs {
			// -1 means no producer before this point: either a
			// placeholder (fine, always live, no node to keep) or an
			// unknown name, which Validate reports separately.
			mark(idx.latestBefore(in, pos))
		}
	}

	return live
}
