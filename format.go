package dfamin

import (
	"fmt"
	"strings"
)

// formatMarkTable renders the snapshot of all pairs marked so far.
// Pairs must already be in canonical order.
func formatMarkTable(pass int, marked []Pair) string {
	var b strings.Builder
	if pass == 0 {
		b.WriteString("pass 0: initial marking (accepting vs non-accepting)\n")
	} else {
		fmt.Fprintf(&b, "table state after pass %d:\n", pass)
	}
	b.WriteString(" marked pairs (distinguishable):\n")
	if len(marked) == 0 {
		b.WriteString("  none")
		return b.String()
	}
	parts := make([]string, len(marked))
	for i, p := range marked {
		parts[i] = p.String()
	}
	b.WriteString("  " + strings.Join(parts, ", "))
	return b.String()
}

// formatNewlyMarked renders the pairs a single pass marked.
func formatNewlyMarked(pass int, newly []Pair) string {
	var b strings.Builder
	fmt.Fprintf(&b, "pass %d: newly marked as distinguishable", pass)
	if len(newly) == 0 {
		b.WriteString("\n  none")
		return b.String()
	}
	for _, p := range newly {
		b.WriteString("\n  - " + p.String())
	}
	return b.String()
}
