package guda

import (
	"runtime"
	"sync"
)

// launchInternal implements the core kernel execution logic
func (ctx *Context) launchInternal(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	stream *Stream,
	args ...interface{},
) error {
	// Calculate total work items
	gridSize := grid.Size()
	blockSize := block.Size()
	
	// Handle edge case where grid size is zero
	if gridSize == 0 {
		// Submit an empty task to maintain stream ordering
		stream.Submit(func() {})
		return nil
	}
	
	// Determine parallelism strategy
	numWorkers := runtime.NumCPU()
	if gridSize < numWorkers {
		numWorkers = gridSize
	}
	
	// Cache-aware scheduling: each worker processes multiple blocks
	// to maximize cache reuse
	blocksPerWorker := (gridSize + numWorkers - 1) / numWorkers
	
	// Submit work to stream
	stream.Submit(func() {
		var wg sync.WaitGroup
		wg.Add(numWorkers)
		
		for workerID := 0; workerID < numWorkers; workerID++ {
			// Capture loop variable
			wID := workerID
			startBlock := wID * blocksPerWorker
			endBlock := startBlock + blocksPerWorker
			if endBlock > gridSize {
				endBlock = gridSize
			}
			
			// Launch worker goroutine
			go func() {
				defer wg.Done()
				
				// Process assigned blocks
				for blockID := startBlock; blockID < endBlock; blockID++ {
					// Convert linear block ID to 3D
					blockIdx := linearTo3D(blockID, grid)
					
					// Execute all threads in this block
					// For CPU, we execute threads sequentially within a block
					// This maximizes cache reuse and minimizes synchronization
					for threadID := 0; threadID < blockSize; threadID++ {
						// Convert linear thread ID to 3D
						threadIdx := linearTo3D(threadID, block)
						
						// Create thread identification
						tid := ThreadID{
							BlockIdx:  blockIdx,
							ThreadIdx: threadIdx,
							BlockDim:  block,
							GridDim:   grid,
						}
						
						// Execute kernel for this thread
						kernelFunc(tid, args...)
					}
				}
			}()
		}
		
		wg.Wait()
	})
	
	return nil
}

// linearTo3D converts a linear index to 3D coordinates
func linearTo3D(linear int, dim Dim3) Dim3 {
	z := linear / (dim.X * dim.Y)
	y := (linear % (dim.X * dim.Y)) / dim.X
	x := linear % dim.X
	return Dim3{X: x, Y: y, Z: z}
}

// WorkerPool manages a pool of worker goroutines for kernel execution
type WorkerPool struct {
	workers int
	tasks   chan func()
	wg      sync.WaitGroup
}

// NewWorkerPool creates a new worker pool
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	
	pool := &WorkerPool{
		workers: workers,
		tasks:   make(chan func(), workers*2),
	}
	
	// Start workers
	for i := 0; i < workers; i++ {
		pool.wg.Add(1)
		go pool.worker()
	}
	
	return pool
}

// worker processes tasks from the queue
func (wp *WorkerPool) worker() {
	defer wp.wg.Done()
	for task := range wp.tasks {
		task()
	}
}

// Submit adds a task to the pool
func (wp *WorkerPool) Submit(task func()) {
	wp.tasks <- task
}

// Close shuts down the worker pool
func (wp *WorkerPool) Close() {
	close(wp.tasks)
	wp.wg.Wait()
}

// Execution strategies for different kernel patterns

// executeCoalesced handles kernels with coalesced memory access
// Groups threads by cache lines for better memory bandwidth
func executeCoalesced(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	args ...interface{},
) {
	// Implementation optimized for sequential memory access
	// Threads in same warp access contiguous memory
	const cacheLineSize = 64
	const elemsPerCacheLine = cacheLineSize / 4 // for float32
	
	// Process threads in groups that access same cache lines
	// This is where we'd apply menthar's memory bandwidth optimizations
}

// executeTiled handles kernels with shared memory usage
// Maps shared memory to stack arrays for cache efficiency
func executeTiled(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	tileSize int,
	args ...interface{},
) {
	// Implementation for tiled algorithms like matrix multiply
	// Each goroutine gets its own tile in stack memory
	// Tiles sized to fit in L1/L2 cache
}

// executeReduction handles reduction kernels
// Uses tree reduction with SIMD operations where possible
func executeReduction(
	kernelFunc func(ThreadID, ...interface{}),
	grid, block Dim3,
	args ...interface{},
) {
	// Implementation for reduction patterns
	// Would integrate with menthar's SIMD reduction kernels
}

// Helper functions for common patterns

// ForEach applies a function to each element in parallel
func ForEach(data DevicePtr, size int, fn func(idx int, val *float32)) error {
	grid := Dim3{X: (size + 255) / 256, Y: 1, Z: 1}
	block := Dim3{X: 256, Y: 1, Z: 1}
	
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < size {
			slice := data.Float32()
			fn(idx, &slice[idx])
		}
	})
	
	return Launch(kernel, grid, block, data, size)
}

// Map applies a transformation function to create a new array
func Map(input, output DevicePtr, size int, fn func(float32) float32) error {
	grid := Dim3{X: (size + 255) / 256, Y: 1, Z: 1}
	block := Dim3{X: 256, Y: 1, Z: 1}
	
	kernel := KernelFunc(func(tid ThreadID, args ...interface{}) {
		idx := tid.Global()
		if idx < size {
			in := input.Float32()
			out := output.Float32()
			out[idx] = fn(in[idx])
		}
	})
	
	return Launch(kernel, grid, block, input, output, size)
}

// Reduce performs a parallel reduction
func Reduce(data DevicePtr, size int, op func(a, b float32) float32) (float32, error) {
	// This would integrate with menthar's SIMD reduction kernels
	// For now, simple implementation
	slice := data.Float32()[:size]
	result := slice[0]
	for i := 1; i < size; i++ {
		result = op(result, slice[i])
	}
	return result, nil
}