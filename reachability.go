package dfamin

import (
	"github.com/bits-and-blooms/bitset"
)

// Reachable returns the set of states reachable from the initial state
// by breadth-first traversal of the declared transitions. Absent
// transitions simply do not extend the frontier; destinations outside
// the declared state set are ignored. If the initial state is not
// declared the result is empty. The set is computed fresh on every
// call and never cached on the DFA.
func Reachable(d *DFA) *StateSet {
	reachable := NewStateSet()
	if !d.HasState(d.Initial()) {
		return reachable
	}

	states := d.States()
	index := make(map[string]int, len(states))
	for i, s := range states {
		index[s.Key()] = i
	}

	seen := bitset.New(uint(len(states)))
	workList := make([]int, 0, len(states))

	start := index[d.Initial().Key()]
	seen.Set(uint(start))
	workList = append(workList, start)
	reachable.Add(states[start])

	symbols := d.Alphabet()
	for len(workList) > 0 {
		cur := workList[0]
		workList = workList[1:]

		for _, sym := range symbols {
			next, ok := d.Step(states[cur], sym)
			if !ok {
				continue
			}
			ni, declared := index[next.Key()]
			if !declared || seen.Test(uint(ni)) {
				continue
			}
			seen.Set(uint(ni))
			workList = append(workList, ni)
			reachable.Add(states[ni])
		}
	}

	return reachable
}
