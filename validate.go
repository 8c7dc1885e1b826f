package dfamin

import (
	"fmt"
)

// Severity tags a diagnostic as fatal for validity or merely advisory.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "ERROR"
	case SeverityWarning:
		return "WARNING"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Diagnostic is one validation finding, intended for direct display.
type Diagnostic struct {
	Severity Severity
	Message  string
}

func (d Diagnostic) String() string {
	return d.Severity.String() + ": " + d.Message
}

// Validation is the full report of Validate. Valid is true iff no
// Error-severity diagnostic was produced; warnings do not affect it.
// Reachable is nil when the initial state is undeclared or the
// empty-automaton guard fired.
type Validation struct {
	Valid       bool
	Diagnostics []Diagnostic
	Reachable   *StateSet
}

// Validate checks d for structural consistency, completeness and
// reachability. It never stops at the first defect: all three checks
// run and every finding is appended, in order, so the caller sees the
// whole report in one pass. The input is never mutated.
func Validate(d *DFA) Validation {
	v := Validation{Valid: true}

	if len(d.alphabet) == 0 || len(d.states) == 0 || d.initial.IsZero() {
		v.Valid = false
		v.Diagnostics = append(v.Diagnostics, Diagnostic{
			Severity: SeverityError,
			Message:  "automaton is empty or incomplete (no states, no alphabet, or no initial state)",
		})
		return v
	}

	checkConsistency(d, &v)
	checkCompleteness(d, &v)
	checkReachability(d, &v)

	return v
}

func (v *Validation) errorf(format string, args ...any) {
	v.Valid = false
	v.Diagnostics = append(v.Diagnostics, Diagnostic{Severity: SeverityError, Message: fmt.Sprintf(format, args...)})
}

func (v *Validation) warnf(format string, args ...any) {
	v.Diagnostics = append(v.Diagnostics, Diagnostic{Severity: SeverityWarning, Message: fmt.Sprintf(format, args...)})
}

// checkConsistency verifies that the initial state, the accepting set
// and every transition endpoint reference only declared states and
// symbols.
func checkConsistency(d *DFA, v *Validation) {
	if !d.HasState(d.Initial()) {
		v.errorf("initial state %q is not in the state set", d.Initial())
	}

	for _, s := range d.Accepting() {
		if !d.HasState(s) {
			v.errorf("accepting state %q is not in the state set", s)
		}
	}

	for _, t := range d.Transitions() {
		if !d.HasState(t.From) {
			v.errorf("transition source %q is not in the state set", t.From)
		}
		if !d.HasSymbol(t.Input) {
			v.errorf("symbol %q in transition %s -> %s is not in the alphabet", t.Input, t.From, t.To)
		}
		if !d.HasState(t.To) {
			v.errorf("transition destination %q (from %q on %q) is not in the state set", t.To, t.From, t.Input)
		}
	}
}

// checkCompleteness verifies totality: every (state, symbol) pair must
// have a transition for the automaton to be a complete DFA.
func checkCompleteness(d *DFA, v *Validation) {
	for _, s := range d.States() {
		for _, sym := range d.Alphabet() {
			if _, ok := d.Step(s, sym); !ok {
				v.errorf("missing transition for state %q on symbol %q: automaton is not complete", s, sym)
			}
		}
	}
}

// checkReachability runs the analyzer and reports unreachable states.
// Unreachability is advisory only; the minimizer drops such states.
func checkReachability(d *DFA, v *Validation) {
	if !d.HasState(d.Initial()) {
		return
	}
	v.Reachable = Reachable(d)

	var unreachable []State
	for _, s := range d.States() {
		if !v.Reachable.Contains(s) {
			unreachable = append(unreachable, s)
		}
	}
	if len(unreachable) > 0 {
		v.warnf("states {%s} are unreachable from initial state %q", joinStates(unreachable), d.Initial())
	}
}
