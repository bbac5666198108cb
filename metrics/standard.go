package metrics

// Interpreter metrics, updated once per finished run.
var (
	// VMExecutions counts finished runs, successful or not.
	VMExecutions = DefaultRegistry.Counter("vm.executions")
	// VMFailures counts runs that halted with a failure.
	VMFailures = DefaultRegistry.Counter("vm.failures")
	// VMSteps counts executed instructions across all runs.
	VMSteps = DefaultRegistry.Counter("vm.steps")
	// VMGasUsed counts gas consumed across all runs.
	VMGasUsed = DefaultRegistry.Counter("vm.gas_used")
	// VMActiveRuns tracks runs currently in progress.
	VMActiveRuns = DefaultRegistry.Gauge("vm.active_runs")
	// VMRunTime records run duration in milliseconds.
	VMRunTime = DefaultRegistry.Histogram("vm.run_ms")
)
