// Package bench is a small multi-threaded throughput harness for a compiled
// program: N worker goroutines each allocate their own Memory and hammer
// Run in a tight loop for a fixed duration, reporting aggregate throughput.
// It exists to demonstrate pkg/program's concurrency model -- one Memory per
// goroutine, no locking -- not to assert correctness; pkg/program's own
// tests are the correctness oracle.
package bench

import (
	"runtime"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/sixpack-lang/sixpack/pkg/program"
)

// Backend selects which interpreter a benchmark run drives.
type Backend int

const (
	// Scalar drives program.RunScalar.
	Scalar Backend = iota
	// Vector drives program.RunVector, lanes all holding the same inputs.
	Vector
)

// Options configures a benchmark run.
type Options struct {
	// Workers is the number of goroutines hammering Run concurrently. A
	// value <= 0 defaults to runtime.NumCPU().
	Workers int
	// Duration is how long each worker keeps looping.
	Duration time.Duration
	// Inputs supplies a value for every input the program declares; an
	// input absent from this map is left at zero.
	Inputs map[string]float64
	// Backend chooses the interpreter.
	Backend Backend
}

// workerResult is one worker's contribution to a benchmark run.
type workerResult struct {
	runs uint64
}

// Result is the aggregate outcome of a benchmark run.
type Result struct {
	Workers       int
	Duration      time.Duration
	TotalRuns     uint64
	RunsPerSecond float64
}

// Run drives prog with opts.Workers concurrent goroutines for opts.Duration,
// returning the aggregate throughput. Workers report back over a channel
// rather than a sync.WaitGroup plus shared counter, the same fan-out/fan-in
// shape the compiler's own parallel passes use elsewhere in the corpus this
// was grounded on.
func Run(prog *program.Program, opts Options) Result {
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	log.Debugf("bench: starting %d workers for %s", workers, opts.Duration)

	results := make(chan workerResult, workers)
	deadline := time.Now().Add(opts.Duration)

	for i := 0; i < workers; i++ {
		go func(id int) {
			var runs uint64

			switch opts.Backend {
			case Vector:
				runs = runVectorWorker(prog, opts.Inputs, deadline)
			default:
				runs = runScalarWorker(prog, opts.Inputs, deadline)
			}

			log.Debugf("bench: worker %d completed %d runs", id, runs)
			results <- workerResult{runs: runs}
		}(i)
	}

	var total uint64
	for i := 0; i < workers; i++ {
		total += (<-results).runs
	}

	elapsed := opts.Duration

	return Result{
		Workers:       workers,
		Duration:      elapsed,
		TotalRuns:     total,
		RunsPerSecond: float64(total) / elapsed.Seconds(),
	}
}

func runScalarWorker(prog *program.Program, inputs map[string]float64, deadline time.Time) uint64 {
	mem := prog.AllocateScalarMemory()
	for name, value := range inputs {
		if addr, err := prog.GetInputAddress(name); err == nil {
			mem[addr] = value
		}
	}

	var runs uint64
	for time.Now().Before(deadline) {
		prog.RunScalar(mem)
		runs++
	}

	return runs
}

func runVectorWorker(prog *program.Program, inputs map[string]float64, deadline time.Time) uint64 {
	mem := prog.AllocateVectorMemory()
	for name, value := range inputs {
		if addr, err := prog.GetInputAddress(name); err == nil {
			mem[addr] = program.Splat(value)
		}
	}

	var runs uint64
	for time.Now().Before(deadline) {
		prog.RunVector(mem)
		runs++
	}

	return runs
}
