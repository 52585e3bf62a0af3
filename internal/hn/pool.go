package hn

import (
	"context"
	"runtime"
	"sync"

	"github.com/bentzi-tabak/hncollector/internal/models"
)

// FetchFunc fetches one item by ID.
type FetchFunc func(ctx context.Context, id int) (*models.Item, error)

// RetrieveAll fetches every ID through a fixed-size worker pool and returns
// the results in input order regardless of completion order. A failed fetch
// leaves a nil placeholder at its position instead of aborting sibling
// fetches; the second return value counts those placeholders. All
// dispatched fetches are awaited before the call returns.
func RetrieveAll(ctx context.Context, ids []int, workers int, fetch FetchFunc) ([]*models.Item, int) {
	results := make([]*models.Item, len(ids))
	if len(ids) == 0 {
		return results, 0
	}

	if workers <= 0 {
		workers = DefaultWorkers()
	}
	if workers > len(ids) {
		workers = len(ids)
	}

	type task struct {
		idx int
		id  int
	}

	tasks := make(chan task)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		skipped int
	)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range tasks {
				item, err := fetch(ctx, t.id)
				if err != nil || item == nil {
					mu.Lock()
					skipped++
					mu.Unlock()
					continue
				}
				// each worker writes a distinct index
				results[t.idx] = item
			}
		}()
	}

	for i, id := range ids {
		tasks <- task{idx: i, id: id}
	}
	close(tasks)
	wg.Wait()

	return results, skipped
}

// DefaultWorkers mirrors the usual thread-pool sizing for IO-bound work.
func DefaultWorkers() int {
	return runtime.NumCPU() + 4
}
