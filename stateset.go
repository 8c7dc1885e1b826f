package dfamin

// StateSet is a set of states keyed by their canonical identity.
// Enumeration is always sorted so callers get deterministic output.
type StateSet struct {
	inner map[string]State
}

func NewStateSet(states ...State) *StateSet {
	s := &StateSet{inner: make(map[string]State, len(states))}
	for _, st := range states {
		s.Add(st)
	}
	return s
}

func (s *StateSet) Add(st State) {
	s.inner[st.Key()] = st
}

func (s *StateSet) Contains(st State) bool {
	_, ok := s.inner[st.Key()]
	return ok
}

func (s *StateSet) Len() int {
	return len(s.inner)
}

// Sorted returns the members ordered by canonical key.
func (s *StateSet) Sorted() []State {
	out := make([]State, 0, len(s.inner))
	for _, st := range s.inner {
		out = append(out, st)
	}
	sortStates(out)
	return out
}
