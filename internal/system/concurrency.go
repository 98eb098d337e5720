package system

import (
	"runtime"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
)

// Concurrency is the suggested size of the render worker pool.
type Concurrency struct {
	Workers   int
	BatchSize int // frames in flight per batch
}

// framesPerJob estimates live buffers per in-flight frame: decoded source,
// canvas and encoder scratch.
const framesPerJob = 3

// SuggestConcurrency sizes the worker pool from the logical CPU count and
// the memory currently available. frameBytes is one decoded RGBA frame.
func SuggestConcurrency(frameBytes int) Concurrency {
	workers, err := cpu.Counts(true)
	if err != nil || workers < 1 {
		workers = runtime.NumCPU()
	}

	batch := workers * 4
	if vm, err := mem.VirtualMemory(); err == nil && frameBytes > 0 {
		// keep a batch under a quarter of free memory
		budget := vm.Available / 4
		perFrame := uint64(frameBytes) * framesPerJob
		batch = int(budget / perFrame)
	}
	return clampConcurrency(workers, batch)
}

func clampConcurrency(workers, batch int) Concurrency {
	if workers < 1 {
		workers = 1
	}
	if batch > workers*8 {
		batch = workers * 8
	}
	if batch < workers {
		batch = workers
	}
	return Concurrency{Workers: workers, BatchSize: batch}
}
