package dfamin

// Run steps d over the given input symbols starting from the initial
// state and reports whether the walk ends in an accepting state. A
// missing transition rejects immediately.
func Run(d *DFA, input ...string) bool {
	state := d.Initial()
	for _, sym := range input {
		next, ok := d.Step(state, sym)
		if !ok {
			return false
		}
		state = next
	}
	return d.IsAccepting(state)
}
