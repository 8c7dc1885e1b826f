package dfamin

import (
	"errors"
	"fmt"
)

var (
	// ErrNoReachableStates means no state is reachable from initial,
	// usually because the initial state is undeclared.
	ErrNoReachableStates = errors.New("no reachable states")
	// ErrInitialUnreachable means the reachable set does not contain
	// the initial state.
	ErrInitialUnreachable = errors.New("initial state is not reachable")
	// ErrNoClasses means partitioning produced zero equivalence
	// classes. It cannot occur once the reachability guard has passed.
	ErrNoClasses = errors.New("no equivalence classes found")
)

// Minimize computes the minimal-state DFA language-equivalent to d
// using the table-filling algorithm: mark accepting/non-accepting
// pairs, propagate markings to a fixed point, merge unmarked pairs
// with a disjoint-set, and rebuild the automaton over the equivalence
// classes. Unreachable states are dropped; d itself is never mutated.
//
// The caller is expected to have validated d (see Validate). An
// incomplete automaton is still minimized: a pair with a missing
// transition on some symbol is simply not compared on that symbol,
// never marked because of it.
//
// Observers receive the ordered step trace and exactly one terminal
// event, the result or an error. A fatal condition halts the trace
// immediately; no partial result is ever delivered as a success.
func Minimize(d *DFA, observers ...Observer) (*DFA, error) {
	emit := func(e Event) {
		for _, o := range observers {
			o(e)
		}
	}
	info := func(format string, args ...any) {
		emit(Event{Kind: EventInfo, Message: fmt.Sprintf(format, args...)})
	}
	fail := func(err error) error {
		emit(Event{Kind: EventError, Message: err.Error()})
		return err
	}

	info("finding reachable states")
	reach := Reachable(d)
	if reach.Len() == 0 {
		return nil, fail(fmt.Errorf("cannot minimize: %w", ErrNoReachableStates))
	}
	if !reach.Contains(d.Initial()) {
		return nil, fail(fmt.Errorf("cannot minimize: %w (initial state %q)", ErrInitialUnreachable, d.Initial()))
	}

	states := reach.Sorted()
	n := len(states)
	index := make(map[string]int, n)
	for i, s := range states {
		index[s.Key()] = i
	}

	info("working with %d reachable states: {%s}", n, joinStates(states))
	if n < d.NumStates() {
		var dropped []State
		for _, s := range d.States() {
			if !reach.Contains(s) {
				dropped = append(dropped, s)
			}
		}
		info("ignoring unreachable states: {%s}", joinStates(dropped))
	}

	accepting := make([]bool, n)
	for i, s := range states {
		accepting[i] = d.IsAccepting(s)
	}
	symbols := d.Alphabet()

	// Initial marking: exactly one of the pair accepts.
	marked := newPairTable(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if accepting[i] != accepting[j] {
				marked.mark(i, j)
			}
		}
	}
	emit(Event{Kind: EventStepTable, Pass: 0, Table: formatMarkTable(0, markedPairs(states, marked))})

	// Fixed-point iteration. Each pass sweeps the unmarked pairs and
	// consults only the markings that existed before the pass; new
	// markings take effect on the next pass. Termination: the marked
	// set only grows and is bounded by C(n,2).
	for pass := 1; ; pass++ {
		type ij struct{ i, j int }
		var newly []ij

		for i := 0; i < n; i++ {
		pair:
			for j := i + 1; j < n; j++ {
				if marked.marked(i, j) {
					continue
				}
				for _, sym := range symbols {
					nextP, okP := d.Step(states[i], sym)
					nextQ, okQ := d.Step(states[j], sym)
					if !okP || !okQ {
						// Missing transition: this symbol cannot
						// distinguish the pair.
						continue
					}
					pi, okP := index[nextP.Key()]
					qi, okQ := index[nextQ.Key()]
					if !okP || !okQ || pi == qi {
						continue
					}
					if marked.marked(pi, qi) {
						newly = append(newly, ij{i, j})
						continue pair
					}
				}
			}
		}

		if len(newly) == 0 {
			info("pass %d: no new markings, marking complete", pass)
			break
		}

		newlyPairs := make([]Pair, len(newly))
		for k, p := range newly {
			newlyPairs[k] = newPair(states[p.i], states[p.j])
		}
		emit(Event{Kind: EventStepUpdate, Pass: pass, Pairs: newlyPairs,
			Table: formatNewlyMarked(pass, newlyPairs)})

		for _, p := range newly {
			marked.mark(p.i, p.j)
		}
		emit(Event{Kind: EventStepTable, Pass: pass, Table: formatMarkTable(pass, markedPairs(states, marked))})
	}

	info("constructing minimized DFA")

	// Merge every pair that stayed unmarked at the fixed point.
	uf := newUnionFind(n)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if !marked.marked(i, j) {
				uf.union(i, j)
			}
		}
	}

	// Group by root into equivalence classes; the representative is the
	// smallest member index so construction is deterministic.
	groups := make(map[int][]int)
	for i := 0; i < n; i++ {
		root := uf.find(i)
		groups[root] = append(groups[root], i)
	}
	if len(groups) == 0 {
		return nil, fail(fmt.Errorf("cannot construct minimized automaton: %w", ErrNoClasses))
	}

	classOf := make([]State, n)
	for _, members := range groups {
		labels := make([]string, len(members))
		for k, m := range members {
			labels[k] = states[m].String()
		}
		class := ClassOf(labels...)
		for _, m := range members {
			classOf[m] = class
		}
	}

	classSet := NewStateSet(classOf...)
	newStates := classSet.Sorted()

	var newAccepting []State
	for _, members := range groups {
		for _, m := range members {
			if accepting[m] {
				newAccepting = append(newAccepting, classOf[m])
				break
			}
		}
	}
	sortStates(newAccepting)

	var newTransitions []Transition
	for _, members := range groups {
		rep := members[0]
		for _, m := range members[1:] {
			if m < rep {
				rep = m
			}
		}
		for _, sym := range symbols {
			dest, ok := d.Step(states[rep], sym)
			if !ok {
				continue
			}
			di, reachable := index[dest.Key()]
			if !reachable {
				continue
			}
			newTransitions = append(newTransitions, Transition{
				From:  classOf[rep],
				Input: sym,
				To:    classOf[di],
			})
		}
	}

	result := New(symbols, newStates, classOf[index[d.Initial().Key()]], newAccepting, newTransitions)
	info("minimized DFA construction complete")
	emit(Event{Kind: EventResult, Result: result})
	return result, nil
}

// markedPairs snapshots the marked set in canonical pair order.
func markedPairs(states []State, marked *pairTable) []Pair {
	var out []Pair
	for i := 0; i < len(states); i++ {
		for j := i + 1; j < len(states); j++ {
			if marked.marked(i, j) {
				out = append(out, newPair(states[i], states[j]))
			}
		}
	}
	return out
}
