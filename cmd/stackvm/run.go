package main

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/spf13/cobra"

	"github.com/eth2030/stackvm/core/vm"
	"github.com/eth2030/stackvm/log"
	"github.com/eth2030/stackvm/metrics"
)

// DefaultGas is the budget given to each program unless --gas is set.
const DefaultGas uint64 = 1_000_000

type runFlags struct {
	gas        uint64
	stackLimit int
	maxMemory  uint64
	trace      bool
	memory     bool
	json       bool
	workers    int
	metrics    bool
}

func newRunCmd(stdout, stderr io.Writer) *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run [flags] <hex>...",
		Short: "Execute one or more programs.",
		Long: `Execute each program with its own stack, memory and gas budget and print
the outcome. Several programs run concurrently on --workers goroutines. The
exit status is 2 when any program fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPrograms(cmd, args, f, stdout, stderr)
		},
	}
	fs := cmd.Flags()
	fs.Uint64Var(&f.gas, "gas", DefaultGas, "gas budget per program")
	fs.IntVar(&f.stackLimit, "stack-limit", vm.DefaultStackLimit, "maximum stack depth")
	fs.Uint64Var(&f.maxMemory, "max-memory", vm.DefaultMaxMemory, "maximum memory size in bytes")
	fs.BoolVar(&f.trace, "trace", false, "print every executed step")
	fs.BoolVar(&f.memory, "trace.memory", false, "include memory in --trace output")
	fs.BoolVar(&f.json, "json", false, "print outcomes as JSON")
	fs.IntVar(&f.workers, "workers", 0, "concurrent programs (0 = number of CPUs)")
	fs.BoolVar(&f.metrics, "metrics", false, "print interpreter metrics to stderr when done")
	return cmd
}

func runPrograms(cmd *cobra.Command, args []string, f runFlags, stdout, stderr io.Writer) error {
	programs := make([]vm.Program, len(args))
	for i, arg := range args {
		code, err := decodeProgram(arg)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(1)
		}
		programs[i] = vm.Program{Code: code, Gas: f.gas}
	}
	cfg := vm.Config{
		StackLimit: f.stackLimit,
		MaxMemory:  f.maxMemory,
		MemoryGas:  vm.QuadraticMemoryGas,
		Logger:     log.Default().Module("vm"),
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return exitCode(1)
	}

	var (
		outcomes []*vm.Outcome
		traces   []*vm.StructLogTracer
	)
	if f.trace {
		// Tracers collect per-run state, so traced programs run one by one.
		for _, p := range programs {
			tracer := vm.NewStructLogTracer(vm.StructLogTracerConfig{EnableMemory: f.memory})
			c := cfg
			c.Tracer = tracer
			out, err := vm.Execute(p.Code, p.Gas, c)
			if err != nil {
				fmt.Fprintln(stderr, err)
				return exitCode(1)
			}
			outcomes = append(outcomes, out)
			traces = append(traces, tracer)
		}
	} else {
		var err error
		outcomes, err = vm.RunAll(cmd.Context(), programs, cfg, f.workers)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(1)
		}
	}

	if f.json {
		if err := writeJSON(stdout, outcomes, traces); err != nil {
			fmt.Fprintln(stderr, err)
			return exitCode(1)
		}
	} else {
		for i, out := range outcomes {
			if len(outcomes) > 1 {
				fmt.Fprintf(stdout, "program %d:\n", i)
			}
			if traces != nil {
				if logs := vm.FormatLogs(traces[i].Logs()); logs != "" {
					fmt.Fprintln(stdout, logs)
				}
			}
			writeText(stdout, out)
		}
	}
	if f.metrics {
		writeMetrics(stderr)
	}
	for _, out := range outcomes {
		if out.Failed() {
			return exitCode(2)
		}
	}
	return nil
}

// outcomeJSON is the JSON rendering of an Outcome. Words are hex strings.
type outcomeJSON struct {
	Status  string         `json:"status"`
	Failure string         `json:"failure,omitempty"`
	Error   string         `json:"error,omitempty"`
	Stack   []string       `json:"stack"`
	Memory  hexutil.Bytes  `json:"memory"`
	GasUsed uint64         `json:"gasUsed"`
	GasLeft uint64         `json:"gasLeft"`
	PC      uint64         `json:"pc"`
	Steps   uint64         `json:"steps"`
	Trace   []vm.StructLog `json:"trace,omitempty"`
}

func newOutcomeJSON(out *vm.Outcome) outcomeJSON {
	j := outcomeJSON{
		Status:  out.Status.String(),
		Stack:   make([]string, len(out.Stack)),
		Memory:  out.Memory,
		GasUsed: out.GasUsed,
		GasLeft: out.GasLeft,
		PC:      out.PC,
		Steps:   out.Steps,
	}
	for i := range out.Stack {
		j.Stack[i] = out.Stack[i].Hex()
	}
	if out.Failed() {
		j.Failure = out.Kind.String()
		j.Error = out.Err.Error()
	}
	return j
}

func writeJSON(w io.Writer, outcomes []*vm.Outcome, traces []*vm.StructLogTracer) error {
	res := make([]outcomeJSON, len(outcomes))
	for i, out := range outcomes {
		res[i] = newOutcomeJSON(out)
		if traces != nil {
			res[i].Trace = traces[i].Logs()
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if len(res) == 1 {
		return enc.Encode(res[0])
	}
	return enc.Encode(res)
}

func writeText(w io.Writer, out *vm.Outcome) {
	if out.Failed() {
		fmt.Fprintf(w, "status:   %v (%v)\n", out.Status, out.Kind)
		fmt.Fprintf(w, "error:    %v\n", out.Err)
		fmt.Fprintf(w, "pc:       %d\n", out.PC)
	} else {
		fmt.Fprintf(w, "status:   %v\n", out.Status)
	}
	fmt.Fprintf(w, "gas used: %d\n", out.GasUsed)
	fmt.Fprintf(w, "gas left: %d\n", out.GasLeft)
	if out.Failed() {
		return
	}
	fmt.Fprintln(w, "stack:")
	for i := len(out.Stack) - 1; i >= 0; i-- {
		fmt.Fprintf(w, "  %d: %s\n", len(out.Stack)-1-i, out.Stack[i].Hex())
	}
	fmt.Fprintf(w, "memory:   %s\n", hexutil.Encode(out.Memory))
}

func writeMetrics(w io.Writer) {
	snap := metrics.DefaultRegistry.Snapshot()
	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		switch v := snap[name].(type) {
		case metrics.HistogramSnapshot:
			fmt.Fprintf(w, "%s count=%d mean=%.3f max=%.3f\n", name, v.Count, v.Mean, v.Max)
		default:
			fmt.Fprintf(w, "%s %v\n", name, v)
		}
	}
}
