package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sixStateDFA is the classic table-filling example: C/D and E/F are
// indistinguishable, so the 6-state automaton minimizes to 4 states.
func sixStateDFA() *DFA {
	return New(
		[]string{"a", "b"},
		[]State{StateOf("A"), StateOf("B"), StateOf("C"), StateOf("D"), StateOf("E"), StateOf("F")},
		StateOf("A"),
		[]State{StateOf("C"), StateOf("D")},
		[]Transition{
			{From: StateOf("A"), Input: "a", To: StateOf("B")},
			{From: StateOf("A"), Input: "b", To: StateOf("F")},
			{From: StateOf("B"), Input: "a", To: StateOf("E")},
			{From: StateOf("B"), Input: "b", To: StateOf("C")},
			{From: StateOf("C"), Input: "a", To: StateOf("E")},
			{From: StateOf("C"), Input: "b", To: StateOf("C")},
			{From: StateOf("D"), Input: "a", To: StateOf("E")},
			{From: StateOf("D"), Input: "b", To: StateOf("D")},
			{From: StateOf("E"), Input: "a", To: StateOf("E")},
			{From: StateOf("E"), Input: "b", To: StateOf("F")},
			{From: StateOf("F"), Input: "a", To: StateOf("F")},
			{From: StateOf("F"), Input: "b", To: StateOf("F")},
		},
	)
}

// assertSameLanguage exhaustively compares acceptance of a and b over
// every string up to maxLen symbols drawn from a's alphabet.
func assertSameLanguage(t *testing.T, a, b *DFA, maxLen int) {
	t.Helper()
	symbols := a.Alphabet()

	var walk func(prefix []string)
	walk = func(prefix []string) {
		if !assert.Equal(t, Run(a, prefix...), Run(b, prefix...), "input %v", prefix) {
			return
		}
		if len(prefix) == maxLen {
			return
		}
		for _, sym := range symbols {
			walk(append(prefix, sym))
		}
	}
	walk(nil)
}

func TestMinimize(t *testing.T) {
	t.Run("sixStateExample", func(t *testing.T) {
		minimized, err := Minimize(sixStateDFA())
		require.NoError(t, err)

		assert.Equal(t, 4, minimized.NumStates())
		assert.True(t, minimized.HasState(ClassOf("A")))
		assert.True(t, minimized.HasState(ClassOf("B")))
		assert.True(t, minimized.HasState(ClassOf("C", "D")))
		assert.True(t, minimized.HasState(ClassOf("E", "F")))

		assert.True(t, minimized.Initial().Equal(ClassOf("A")))
		require.Len(t, minimized.Accepting(), 1)
		assert.True(t, minimized.Accepting()[0].Equal(ClassOf("C", "D")))

		// A --b--> F in the original, so {A} --b--> {E,F}.
		dest, ok := minimized.Step(ClassOf("A"), "b")
		require.True(t, ok)
		assert.True(t, dest.Equal(ClassOf("E", "F")))
	})

	t.Run("languagePreserved", func(t *testing.T) {
		original := sixStateDFA()
		minimized, err := Minimize(original)
		require.NoError(t, err)
		assertSameLanguage(t, original, minimized, 7)
	})

	t.Run("unreachableStateSilentlyExcluded", func(t *testing.T) {
		// q2 is declared but unreachable and must vanish from the result.
		d := New(
			[]string{"0"},
			[]State{StateOf("q0"), StateOf("q1"), StateOf("q2")},
			StateOf("q0"),
			[]State{StateOf("q1")},
			[]Transition{
				{From: StateOf("q0"), Input: "0", To: StateOf("q1")},
				{From: StateOf("q1"), Input: "0", To: StateOf("q0")},
				{From: StateOf("q2"), Input: "0", To: StateOf("q2")},
			},
		)
		minimized, err := Minimize(d)
		require.NoError(t, err)
		assert.Equal(t, 2, minimized.NumStates())
		for _, s := range minimized.States() {
			assert.NotContains(t, s.Members(), "q2")
		}
	})

	t.Run("equivalentStatesCollapse", func(t *testing.T) {
		// Two accepting states agreeing on every target collapse to one.
		d := New(
			[]string{"a"},
			[]State{StateOf("X"), StateOf("Y")},
			StateOf("X"),
			[]State{StateOf("X"), StateOf("Y")},
			[]Transition{
				{From: StateOf("X"), Input: "a", To: StateOf("Y")},
				{From: StateOf("Y"), Input: "a", To: StateOf("Y")},
			},
		)
		minimized, err := Minimize(d)
		require.NoError(t, err)
		assert.Equal(t, 1, minimized.NumStates())
		assert.True(t, minimized.IsAccepting(ClassOf("X", "Y")))
	})

	t.Run("equivalentNonAcceptingStatesCollapse", func(t *testing.T) {
		d := New(
			[]string{"a"},
			[]State{StateOf("X"), StateOf("Y")},
			StateOf("X"),
			nil,
			[]Transition{
				{From: StateOf("X"), Input: "a", To: StateOf("Y")},
				{From: StateOf("Y"), Input: "a", To: StateOf("Y")},
			},
		)
		minimized, err := Minimize(d)
		require.NoError(t, err)
		assert.Equal(t, 1, minimized.NumStates())
		assert.Empty(t, minimized.Accepting())
	})

	t.Run("alreadyMinimalIsIsomorphic", func(t *testing.T) {
		minimal, err := Minimize(sixStateDFA())
		require.NoError(t, err)

		again, err := Minimize(minimal)
		require.NoError(t, err)
		assert.Equal(t, minimal.NumStates(), again.NumStates())
		assert.Equal(t, minimal.NumTransitions(), again.NumTransitions())
		assert.Len(t, again.Accepting(), len(minimal.Accepting()))
		assertSameLanguage(t, minimal, again, 7)
	})

	t.Run("noDeadStatesInResult", func(t *testing.T) {
		minimized, err := Minimize(sixStateDFA())
		require.NoError(t, err)
		assert.Equal(t, minimized.NumStates(), Reachable(minimized).Len())
	})

	t.Run("missingTransitionNeverDistinguishes", func(t *testing.T) {
		// Y has no transition on "a"; the pair {X, Y} is only compared
		// on "b", where both loop into Y, so X and Y merge even though
		// "a" would separate them in a completed automaton.
		d := New(
			[]string{"a", "b"},
			[]State{StateOf("X"), StateOf("Y"), StateOf("Z")},
			StateOf("X"),
			[]State{StateOf("Z")},
			[]Transition{
				{From: StateOf("X"), Input: "a", To: StateOf("Z")},
				{From: StateOf("X"), Input: "b", To: StateOf("Y")},
				{From: StateOf("Y"), Input: "b", To: StateOf("Y")},
				{From: StateOf("Z"), Input: "a", To: StateOf("Z")},
				{From: StateOf("Z"), Input: "b", To: StateOf("Z")},
			},
		)
		minimized, err := Minimize(d)
		require.NoError(t, err)
		assert.Equal(t, 2, minimized.NumStates())
		assert.True(t, minimized.HasState(ClassOf("X", "Y")))
		assert.True(t, minimized.HasState(ClassOf("Z")))
	})

	t.Run("undeclaredInitialFailsFast", func(t *testing.T) {
		d := New(
			[]string{"a"},
			[]State{StateOf("A")},
			StateOf("missing"),
			nil,
			nil,
		)
		var trace TraceCollector
		result, err := Minimize(d, trace.Observe)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, ErrNoReachableStates)

		require.NotEmpty(t, trace.Events)
		last := trace.Events[len(trace.Events)-1]
		assert.Equal(t, EventError, last.Kind)
		for _, e := range trace.Events {
			assert.NotEqual(t, EventResult, e.Kind)
		}
	})
}

func TestMinimizeTrace(t *testing.T) {
	var trace TraceCollector
	minimized, err := Minimize(sixStateDFA(), trace.Observe)
	require.NoError(t, err)
	require.NotEmpty(t, trace.Events)

	t.Run("terminalEventIsLastAndUnique", func(t *testing.T) {
		terminals := 0
		for _, e := range trace.Events {
			if e.Kind == EventResult || e.Kind == EventError {
				terminals++
			}
		}
		assert.Equal(t, 1, terminals)

		last := trace.Events[len(trace.Events)-1]
		assert.Equal(t, EventResult, last.Kind)
		assert.Same(t, minimized, last.Result)
	})

	t.Run("initialTableSnapshotBeforeUpdates", func(t *testing.T) {
		firstTable, firstUpdate := -1, -1
		for i, e := range trace.Events {
			if e.Kind == EventStepTable && firstTable == -1 {
				firstTable = i
				assert.Equal(t, 0, e.Pass)
				assert.NotEmpty(t, e.Table)
			}
			if e.Kind == EventStepUpdate && firstUpdate == -1 {
				firstUpdate = i
			}
		}
		require.NotEqual(t, -1, firstTable)
		require.NotEqual(t, -1, firstUpdate)
		assert.Less(t, firstTable, firstUpdate)
	})

	t.Run("updatesCarryOrderedPairs", func(t *testing.T) {
		for _, e := range trace.Events {
			if e.Kind != EventStepUpdate {
				continue
			}
			assert.Greater(t, e.Pass, 0)
			require.NotEmpty(t, e.Pairs)
			for _, p := range e.Pairs {
				assert.Less(t, p.P.Key(), p.Q.Key())
			}
		}
	})

	t.Run("passCountBounded", func(t *testing.T) {
		// The marking loop finishes in at most |R|-1 marking passes.
		updates := 0
		for _, e := range trace.Events {
			if e.Kind == EventStepUpdate {
				updates++
			}
		}
		assert.LessOrEqual(t, updates, 5)
	})
}
