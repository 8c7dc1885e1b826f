package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dfatools/dfamin"
)

var (
	verbose    bool
	formatFlag string // input format override: text or yaml
	quiet      bool   // suppress the step-by-step minimization trace
	dotPath    string // write the minimized automaton as DOT to this path
	outPath    string // render output path, stdout when empty

	rootCmd = &cobra.Command{
		Use:   "dfamin",
		Short: "Validate and minimize deterministic finite automata",
		Long: `dfamin reads a DFA definition (plain text or YAML), validates its
structure, and computes the language-equivalent minimal DFA with the
table-filling algorithm, printing the marking trace step by step.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	validateCmd = &cobra.Command{
		Use:   "validate <file>",
		Short: "Check a DFA definition for consistency, completeness and reachability",
		Args:  cobra.ExactArgs(1),
		RunE:  runValidate,
	}

	minimizeCmd = &cobra.Command{
		Use:   "minimize <file>",
		Short: "Validate a DFA and compute its minimal equivalent",
		Args:  cobra.ExactArgs(1),
		RunE:  runMinimize,
	}

	renderCmd = &cobra.Command{
		Use:   "render <file>",
		Short: "Render a DFA definition as a Graphviz DOT graph",
		Args:  cobra.ExactArgs(1),
		RunE:  runRender,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&formatFlag, "format", "", "input format: text or yaml (default: by file extension)")
	minimizeCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "suppress the step-by-step trace")
	minimizeCmd.Flags().StringVar(&dotPath, "dot", "", "write the minimized DFA as DOT to this file")
	renderCmd.Flags().StringVarP(&outPath, "out", "o", "", "write DOT to this file instead of stdout")

	rootCmd.AddCommand(validateCmd, minimizeCmd, renderCmd)
}

func loadDFA(path string) (*dfamin.DFA, error) {
	switch formatFlag {
	case "":
		return dfamin.ParseFile(path)
	case "text":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return dfamin.ParseText(strings.NewReader(string(data)))
	case "yaml":
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		return dfamin.ParseYAML(data)
	default:
		return nil, fmt.Errorf("unknown format %q, want text or yaml", formatFlag)
	}
}

func runValidate(cmd *cobra.Command, args []string) error {
	d, err := loadDFA(args[0])
	if err != nil {
		return err
	}

	report := dfamin.Validate(d)
	for _, diag := range report.Diagnostics {
		fmt.Println(diag)
	}
	if !report.Valid {
		return fmt.Errorf("automaton is invalid")
	}
	fmt.Printf("automaton is valid: %d states, %d reachable\n", d.NumStates(), report.Reachable.Len())
	return nil
}

func runMinimize(cmd *cobra.Command, args []string) error {
	d, err := loadDFA(args[0])
	if err != nil {
		return err
	}

	report := dfamin.Validate(d)
	for _, diag := range report.Diagnostics {
		fmt.Println(diag)
	}
	if !report.Valid {
		return fmt.Errorf("automaton is invalid, refusing to minimize")
	}

	var observers []dfamin.Observer
	if !quiet {
		observers = append(observers, printEvent)
	}

	minimized, err := dfamin.Minimize(d, observers...)
	if err != nil {
		return err
	}

	fmt.Println("\nminimized automaton:")
	fmt.Println(minimized)

	if dotPath != "" {
		f, err := os.Create(dotPath)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := dfamin.WriteDOT(f, minimized); err != nil {
			return err
		}
		fmt.Printf("\nDOT diagram written to %s\n", dotPath)
	}
	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	d, err := loadDFA(args[0])
	if err != nil {
		return err
	}

	if outPath == "" {
		return dfamin.WriteDOT(os.Stdout, d)
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return dfamin.WriteDOT(f, d)
}

func printEvent(e dfamin.Event) {
	switch e.Kind {
	case dfamin.EventInfo:
		fmt.Println("INFO:", e.Message)
	case dfamin.EventStepTable, dfamin.EventStepUpdate:
		fmt.Println(e.Table)
	case dfamin.EventError:
		fmt.Fprintln(os.Stderr, "ERROR:", e.Message)
	case dfamin.EventResult:
		// The caller prints the result itself.
	}
}
