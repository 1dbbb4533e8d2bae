package world

import (
	"context"
	"sync"

	"pixeldig/internal/profiling"
)

// refreshPool rebuilds chunks on a fixed set of goroutines. Chunks share no
// mesher state, so any number of distinct chunks can rebuild at once.
type refreshPool struct {
	jobs chan *Chunk
	wg   sync.WaitGroup
}

func newRefreshPool(workers int) *refreshPool {
	p := &refreshPool{jobs: make(chan *Chunk, workers)}
	for range workers {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

func (p *refreshPool) worker() {
	defer p.wg.Done()
	for c := range p.jobs {
		c.Refresh()
	}
}

// submit queues c, giving up when ctx is done.
func (p *refreshPool) submit(ctx context.Context, c *Chunk) bool {
	select {
	case p.jobs <- c:
		return true
	case <-ctx.Done():
		return false
	}
}

// shutdown waits for queued chunks to finish.
func (p *refreshPool) shutdown() {
	close(p.jobs)
	p.wg.Wait()
}

// refreshChunks rebuilds chunks on up to workers goroutines. With one worker
// or less it runs inline. Chunks not yet queued when ctx ends are skipped.
func refreshChunks(ctx context.Context, chunks []*Chunk, workers int) error {
	defer profiling.Track("world.refreshChunks")()
	if workers <= 1 || len(chunks) <= 1 {
		for _, c := range chunks {
			if err := ctx.Err(); err != nil {
				return err
			}
			c.Refresh()
		}
		return nil
	}

	p := newRefreshPool(min(workers, len(chunks)))
	for _, c := range chunks {
		if !p.submit(ctx, c) {
			break
		}
	}
	p.shutdown()
	return ctx.Err()
}
