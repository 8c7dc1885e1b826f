package dfamin

import (
	"fmt"
	"sort"
	"strings"
)

// State identifies a state of an automaton. It is either an atomic label
// (states of an original automaton) or an equivalence class of labels
// (states of a minimized automaton). The two forms never compare equal,
// even when a class holds a single label: identity goes through Key,
// which encodes the tag.
type State struct {
	label   string
	members []string // sorted member labels; non-nil iff this is a class
}

// StateOf returns the atomic state with the given label.
func StateOf(label string) State {
	return State{label: label}
}

// ClassOf returns the equivalence-class state holding the given member
// labels. Members are deduplicated; their order is irrelevant.
func ClassOf(labels ...string) State {
	members := make([]string, 0, len(labels))
	seen := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		if _, ok := seen[l]; ok {
			continue
		}
		seen[l] = struct{}{}
		members = append(members, l)
	}
	sort.Strings(members)
	return State{members: members}
}

// IsClass reports whether this state is an equivalence class.
func (s State) IsClass() bool {
	return s.members != nil
}

// IsZero reports whether this is the zero State, which denotes "no state".
func (s State) IsZero() bool {
	return s.label == "" && s.members == nil
}

// Members returns a copy of the member labels of a class state, or the
// single label for an atomic state.
func (s State) Members() []string {
	if s.members == nil {
		return []string{s.label}
	}
	out := make([]string, len(s.members))
	copy(out, s.members)
	return out
}

// Key returns the canonical identity of the state, usable as a map key
// and as a total order for pair canonicalization. Atomic and class
// states never share a key.
func (s State) Key() string {
	if s.members == nil {
		return "s\x00" + s.label
	}
	return "c\x00" + strings.Join(s.members, "\x00")
}

// Equal reports whether two states denote the same state, tag included.
func (s State) Equal(other State) bool {
	return s.Key() == other.Key()
}

// String returns the display form of the state. Class states render as
// their sorted, comma-joined member labels; renderers must use this
// canonical form rather than invent their own.
func (s State) String() string {
	if s.members == nil {
		return s.label
	}
	return strings.Join(s.members, ",")
}

// Transition is one entry of the transition function: reading Input in
// From moves the automaton to To.
type Transition struct {
	From  State
	Input string
	To    State
}

type transKey struct {
	state  string // State.Key of the source
	symbol string
}

// DFA is a deterministic finite automaton over string symbols. A DFA
// value is built once by New and is read-only afterwards; every
// accessor returns copies. The transition function may be partial —
// completeness is a property the Validator reports, not one the type
// enforces.
type DFA struct {
	alphabet  map[string]struct{}
	states    map[string]State
	initial   State
	accepting map[string]State
	trans     map[transKey]State
}

// New builds a DFA from its five components. All collections are copied
// in; the caller keeps no aliases into the value. New performs no
// validation: inconsistent input yields a DFA whose defects Validate
// will report.
func New(alphabet []string, states []State, initial State, accepting []State, transitions []Transition) *DFA {
	d := &DFA{
		alphabet:  make(map[string]struct{}, len(alphabet)),
		states:    make(map[string]State, len(states)),
		initial:   initial,
		accepting: make(map[string]State, len(accepting)),
		trans:     make(map[transKey]State, len(transitions)),
	}
	for _, sym := range alphabet {
		d.alphabet[sym] = struct{}{}
	}
	for _, s := range states {
		d.states[s.Key()] = s
	}
	for _, s := range accepting {
		d.accepting[s.Key()] = s
	}
	for _, t := range transitions {
		d.trans[transKey{state: t.From.Key(), symbol: t.Input}] = t.To
	}
	return d
}

// Alphabet returns the symbols in sorted order.
func (d *DFA) Alphabet() []string {
	out := make([]string, 0, len(d.alphabet))
	for sym := range d.alphabet {
		out = append(out, sym)
	}
	sort.Strings(out)
	return out
}

// States returns the declared states sorted by canonical key.
func (d *DFA) States() []State {
	out := make([]State, 0, len(d.states))
	for _, s := range d.states {
		out = append(out, s)
	}
	sortStates(out)
	return out
}

// NumStates How many states this automaton declares.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// Initial returns the initial state.
func (d *DFA) Initial() State {
	return d.initial
}

// Accepting returns the accepting states sorted by canonical key.
func (d *DFA) Accepting() []State {
	out := make([]State, 0, len(d.accepting))
	for _, s := range d.accepting {
		out = append(out, s)
	}
	sortStates(out)
	return out
}

// IsAccepting reports whether s is an accepting state.
func (d *DFA) IsAccepting(s State) bool {
	_, ok := d.accepting[s.Key()]
	return ok
}

// HasState reports whether s is a declared state.
func (d *DFA) HasState(s State) bool {
	_, ok := d.states[s.Key()]
	return ok
}

// HasSymbol reports whether sym belongs to the alphabet.
func (d *DFA) HasSymbol(sym string) bool {
	_, ok := d.alphabet[sym]
	return ok
}

// Step performs a lookup in the transition function. The second return
// is false when no transition is defined for (s, symbol); that absence
// is distinct from any declared destination.
func (d *DFA) Step(s State, symbol string) (State, bool) {
	to, ok := d.trans[transKey{state: s.Key(), symbol: symbol}]
	return to, ok
}

// Transitions returns every defined transition, sorted by source key
// then symbol.
func (d *DFA) Transitions() []Transition {
	out := make([]Transition, 0, len(d.trans))
	for k, to := range d.trans {
		out = append(out, Transition{From: d.stateForKey(k.state), Input: k.symbol, To: to})
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].From.Key(), out[j].From.Key()
		if ki != kj {
			return ki < kj
		}
		return out[i].Input < out[j].Input
	})
	return out
}

// NumTransitions How many transitions this automaton defines.
func (d *DFA) NumTransitions() int {
	return len(d.trans)
}

func (d *DFA) stateForKey(key string) State {
	if s, ok := d.states[key]; ok {
		return s
	}
	// Undeclared source in an inconsistent automaton; reconstruct it
	// from its key so Transitions still enumerates the entry.
	return stateFromKey(key)
}

func stateFromKey(key string) State {
	parts := strings.Split(key, "\x00")
	if parts[0] == "c" {
		return ClassOf(parts[1:]...)
	}
	return StateOf(strings.Join(parts[1:], "\x00"))
}

func (d *DFA) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "DFA(alphabet={%s}, initial=%s, finals={%s})",
		strings.Join(d.Alphabet(), ","), d.initial, joinStates(d.Accepting()))
	for _, t := range d.Transitions() {
		fmt.Fprintf(&b, "\n  %s --%s--> %s", t.From, t.Input, t.To)
	}
	return b.String()
}

func sortStates(states []State) {
	sort.Slice(states, func(i, j int) bool {
		return states[i].Key() < states[j].Key()
	})
}

func joinStates(states []State) string {
	parts := make([]string, len(states))
	for i, s := range states {
		parts[i] = s.String()
	}
	return strings.Join(parts, " ")
}
