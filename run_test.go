package dfamin

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRun(t *testing.T) {
	// Accepts strings over {a,b} ending in "b".
	d := New(
		[]string{"a", "b"},
		[]State{StateOf("S"), StateOf("T")},
		StateOf("S"),
		[]State{StateOf("T")},
		[]Transition{
			{From: StateOf("S"), Input: "a", To: StateOf("S")},
			{From: StateOf("S"), Input: "b", To: StateOf("T")},
			{From: StateOf("T"), Input: "a", To: StateOf("S")},
			{From: StateOf("T"), Input: "b", To: StateOf("T")},
		},
	)

	assert.False(t, Run(d))
	assert.True(t, Run(d, "b"))
	assert.True(t, Run(d, "a", "a", "b"))
	assert.False(t, Run(d, "b", "a"))
	assert.False(t, Run(d, "c"), "unknown symbol rejects")
}

func TestRunMissingTransitionRejects(t *testing.T) {
	d := New(
		[]string{"a"},
		[]State{StateOf("S")},
		StateOf("S"),
		[]State{StateOf("S")},
		nil,
	)
	assert.True(t, Run(d))
	assert.False(t, Run(d, "a"))
}
