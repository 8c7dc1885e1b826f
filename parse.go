package dfamin

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// rawTransition is a parsed "from, to, symbol" entry before the
// transition function is assembled.
type rawTransition struct {
	from, to, symbol string
}

// definition accumulates the pieces of an automaton description from
// either input format; build turns it into a DFA.
type definition struct {
	alphabet    []string
	states      []string
	initial     string
	finals      []string
	finalsSeen  bool
	transitions []rawTransition
}

// build assembles a DFA from the collected sections. States mentioned
// only in transitions are added to the state set; a duplicate
// (state, symbol) entry is overridden by the last occurrence.
func (def *definition) build() (*DFA, error) {
	if len(def.alphabet) == 0 {
		return nil, fmt.Errorf("definition has no %q section", "alphabet")
	}
	if def.initial == "" {
		return nil, fmt.Errorf("definition has no %q section", "initial")
	}
	if !def.finalsSeen {
		slog.Warn("no finals section found, assuming no accepting states")
	}

	stateSet := make(map[string]struct{})
	for _, s := range def.states {
		stateSet[s] = struct{}{}
	}
	for _, t := range def.transitions {
		stateSet[t.from] = struct{}{}
		stateSet[t.to] = struct{}{}
	}
	if len(stateSet) == 0 {
		return nil, fmt.Errorf("definition declares no states")
	}
	if _, ok := stateSet[def.initial]; !ok {
		return nil, fmt.Errorf("initial state %q is not among the defined states", def.initial)
	}
	for _, f := range def.finals {
		if _, ok := stateSet[f]; !ok {
			return nil, fmt.Errorf("final state %q is not among the defined states", f)
		}
	}

	alphabetSet := make(map[string]struct{}, len(def.alphabet))
	for _, sym := range def.alphabet {
		alphabetSet[sym] = struct{}{}
	}

	states := make([]State, 0, len(stateSet))
	for s := range stateSet {
		states = append(states, StateOf(s))
	}

	finals := make([]State, 0, len(def.finals))
	for _, f := range def.finals {
		finals = append(finals, StateOf(f))
	}

	type fromSym struct{ from, sym string }
	dest := make(map[fromSym]string, len(def.transitions))
	order := make([]fromSym, 0, len(def.transitions))
	for _, t := range def.transitions {
		if _, ok := alphabetSet[t.symbol]; !ok {
			slog.Warn("transition symbol is not in the declared alphabet",
				slog.String("symbol", t.symbol),
				slog.String("from", t.from),
				slog.String("to", t.to))
		}
		key := fromSym{from: t.from, sym: t.symbol}
		if prev, ok := dest[key]; ok {
			if prev != t.to {
				slog.Warn("duplicate transition redefined, keeping the last one",
					slog.String("state", t.from),
					slog.String("symbol", t.symbol),
					slog.String("previous", prev),
					slog.String("now", t.to))
			}
			dest[key] = t.to
			continue
		}
		dest[key] = t.to
		order = append(order, key)
	}

	transitions := make([]Transition, 0, len(order))
	for _, key := range order {
		transitions = append(transitions, Transition{
			From:  StateOf(key.from),
			Input: key.sym,
			To:    StateOf(dest[key]),
		})
	}

	return New(def.alphabet, states, StateOf(def.initial), finals, transitions), nil
}

// ParseText reads the section-based plain-text automaton format:
//
//	# comment, inline allowed
//	alphabet: a, b
//	states: A, B, C
//	initial: A
//	finals: C
//	transitions
//	A, B, a   # from, to, symbol
//
// Malformed lines are skipped with a warning; missing alphabet or
// initial sections are errors.
func ParseText(r io.Reader) (*DFA, error) {
	var def definition
	inTransitions := false

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text, _, _ := strings.Cut(scanner.Text(), "#")
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		lower := strings.ToLower(text)

		switch {
		case strings.HasPrefix(lower, "alphabet:"):
			if def.alphabet != nil {
				slog.Warn("alphabet section redefined", slog.Int("line", line))
			}
			def.alphabet = splitList(text)
			inTransitions = false

		case strings.HasPrefix(lower, "states:"):
			def.states = append(def.states, splitList(text)...)
			inTransitions = false

		case strings.HasPrefix(lower, "initial:"):
			if def.initial != "" {
				slog.Warn("initial state redefined", slog.Int("line", line))
			}
			_, value, _ := strings.Cut(text, ":")
			def.initial = strings.TrimSpace(value)
			inTransitions = false

		case strings.HasPrefix(lower, "finals:"):
			if def.finalsSeen {
				slog.Warn("finals section redefined", slog.Int("line", line))
			}
			def.finals = splitList(text)
			def.finalsSeen = true
			inTransitions = false

		case lower == "transitions":
			inTransitions = true

		case inTransitions:
			parts := strings.Split(text, ",")
			if len(parts) != 3 {
				slog.Warn("skipping malformed transition line, want from, to, symbol",
					slog.Int("line", line), slog.String("text", text))
				continue
			}
			from := strings.TrimSpace(parts[0])
			to := strings.TrimSpace(parts[1])
			symbol := strings.TrimSpace(parts[2])
			if from == "" || to == "" || symbol == "" {
				slog.Warn("skipping transition line with empty fields",
					slog.Int("line", line), slog.String("text", text))
				continue
			}
			def.transitions = append(def.transitions, rawTransition{from: from, to: to, symbol: symbol})

		default:
			slog.Warn("skipping line outside any known section",
				slog.Int("line", line), slog.String("text", text))
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading definition: %w", err)
	}

	return def.build()
}

// splitList splits the value part of a "name: a, b, c" line into its
// trimmed, non-empty items.
func splitList(text string) []string {
	_, value, _ := strings.Cut(text, ":")
	items := make([]string, 0)
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

type yamlTransition struct {
	From   string `yaml:"from"`
	Symbol string `yaml:"symbol"`
	To     string `yaml:"to"`
}

type yamlDefinition struct {
	Alphabet    []string         `yaml:"alphabet"`
	States      []string         `yaml:"states"`
	Initial     string           `yaml:"initial"`
	Finals      []string         `yaml:"finals"`
	Transitions []yamlTransition `yaml:"transitions"`
}

// ParseYAML reads the YAML automaton format:
//
//	alphabet: [a, b]
//	states: [A, B, C]
//	initial: A
//	finals: [C]
//	transitions:
//	  - {from: A, symbol: a, to: B}
func ParseYAML(data []byte) (*DFA, error) {
	var doc yamlDefinition
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing yaml definition: %w", err)
	}

	def := definition{
		alphabet:   doc.Alphabet,
		states:     doc.States,
		initial:    doc.Initial,
		finals:     doc.Finals,
		finalsSeen: doc.Finals != nil,
	}
	for _, t := range doc.Transitions {
		def.transitions = append(def.transitions, rawTransition{from: t.From, to: t.To, symbol: t.Symbol})
	}
	return def.build()
}

// ParseFile loads an automaton definition from path, choosing the
// format by extension: .yaml and .yml parse as YAML, anything else as
// the plain-text format.
func ParseFile(path string) (*DFA, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ParseYAML(data)
	default:
		return ParseText(strings.NewReader(string(data)))
	}
}
