package dfamin

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT writes d as a Graphviz directed graph: one node per state
// (doublecircle for accepting states), one labeled edge per transition,
// and an invisible synthetic start node pointing at the initial state.
// Class states render with their canonical comma-joined label, so a
// minimized automaton and its original share the same visual grammar.
func WriteDOT(w io.Writer, d *DFA) error {
	var b strings.Builder
	b.WriteString("digraph dfa {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  __start__ [shape=point, style=invis];\n")
	fmt.Fprintf(&b, "  __start__ -> %s;\n", quoteDOT(d.Initial().String()))

	for _, s := range d.States() {
		shape := "circle"
		if d.IsAccepting(s) {
			shape = "doublecircle"
		}
		fmt.Fprintf(&b, "  %s [shape=%s];\n", quoteDOT(s.String()), shape)
	}

	for _, t := range d.Transitions() {
		fmt.Fprintf(&b, "  %s -> %s [label=%s];\n",
			quoteDOT(t.From.String()), quoteDOT(t.To.String()), quoteDOT(t.Input))
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func quoteDOT(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `\"`) + `"`
}
