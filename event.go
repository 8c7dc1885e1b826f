package dfamin

import "fmt"

// EventKind discriminates the trace events emitted by Minimize.
type EventKind int

const (
	// EventInfo carries a human-readable progress message.
	EventInfo EventKind = iota
	// EventStepTable carries a formatted snapshot of every pair marked
	// so far, after the given pass.
	EventStepTable
	// EventStepUpdate carries the pairs newly marked during one pass.
	EventStepUpdate
	// EventResult carries the minimized DFA. Terminal: nothing follows.
	EventResult
	// EventError carries a fatal message. Terminal: nothing follows.
	EventError
)

func (k EventKind) String() string {
	switch k {
	case EventInfo:
		return "info"
	case EventStepTable:
		return "step_table"
	case EventStepUpdate:
		return "step_update"
	case EventResult:
		return "result"
	case EventError:
		return "error"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Pair is an unordered pair of states, held in canonical order
// (P.Key() < Q.Key()) so equal pairs always print and compare alike.
type Pair struct {
	P, Q State
}

func newPair(p, q State) Pair {
	if q.Key() < p.Key() {
		p, q = q, p
	}
	return Pair{P: p, Q: q}
}

func (p Pair) String() string {
	return fmt.Sprintf("{%s,%s}", p.P, p.Q)
}

// Event is one entry of the ordered minimization trace. Which fields
// are populated depends on Kind: Message for info and error, Pass and
// Table for step_table, Pass, Pairs and Table for step_update, Result
// for result. DFA values carried by events are never mutated afterwards.
type Event struct {
	Kind    EventKind
	Pass    int
	Message string
	Table   string
	Pairs   []Pair
	Result  *DFA
}

// Observer receives trace events synchronously, in production order.
// After a terminal event (result or error) no further calls are made.
type Observer func(Event)

// TraceCollector is an Observer that materializes the whole trace for
// callers that prefer a list over callbacks.
type TraceCollector struct {
	Events []Event
}

func (c *TraceCollector) Observe(e Event) {
	c.Events = append(c.Events, e)
}
