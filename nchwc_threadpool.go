package guda

import (
	"runtime"
	"sync"
)

// NchwcThreadPool is the thread-pool contract of §6: "execute(routine,
// context, T)" becomes Execute(routine, T) here since Go closures carry
// their own context; MaxThreads reports the T a dispatch should use.
// The engine treats this purely as a collaborator — Conv and Pool accept
// one, never construct the default implicitly for a caller who supplies
// their own.
type NchwcThreadPool interface {
	MaxThreads() int
	Execute(routine func(index int), threadCount int)
}

// defaultNchwcThreadPool fans indexed callbacks out over execution.go's
// WorkerPool and blocks until all have run — the same worker/task-queue
// collaborator Context.launchInternal submits kernel blocks to, reused
// here with a flat 1-D index space since the NCHWc work partitioner only
// ever needs [0, T). A fresh WorkerPool is spun up per Execute call and
// closed once every task has drained, since a dispatch's threadCount can
// vary call to call while WorkerPool is sized at construction.
type defaultNchwcThreadPool struct {
	maxThreads int
}

// NewNchwcThreadPool returns the default thread-pool collaborator, sized
// to the host's logical CPU count.
func NewNchwcThreadPool() NchwcThreadPool {
	n := runtime.NumCPU()
	if n < 1 {
		n = 1
	}
	return &defaultNchwcThreadPool{maxThreads: n}
}

func (p *defaultNchwcThreadPool) MaxThreads() int {
	if p.maxThreads < 1 {
		return 1
	}
	return p.maxThreads
}

func (p *defaultNchwcThreadPool) Execute(routine func(index int), threadCount int) {
	if threadCount <= 1 {
		if threadCount == 1 {
			routine(0)
		}
		return
	}

	workers := NewWorkerPool(threadCount)

	var wg sync.WaitGroup
	wg.Add(threadCount)
	for i := 0; i < threadCount; i++ {
		index := i
		workers.Submit(func() {
			defer wg.Done()
			routine(index)
		})
	}
	wg.Wait()
	workers.Close()
}
